package intake

import (
	"archive/zip"
	"bytes"
	"testing"

	"docushield-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected models.FileCategory
	}{
		{"refusal letter", "Refusal_Letter_2023.pdf", models.FileCategoryRefusal},
		{"bank statement", "bank_statement_march.pdf", models.FileCategoryCurrent},
		{"cover letter falls through", "cover_letter.pdf", models.FileCategorySupporting},
		{"refusal beats letter", "refusal_explanation_letter.pdf", models.FileCategoryRefusal},
		{"refusal beats passport", "passport_rejection_notice.pdf", models.FileCategoryRefusal},
		{"procedural fairness letter", "Procedural-Fairness-Letter.PDF", models.FileCategoryRefusal},
		{"immigration history", "immigration_history.pdf", models.FileCategoryRefusal},
		{"travel history", "travel_history.pdf", models.FileCategoryRefusal},
		{"application form", "IMM5257_signed.pdf", models.FileCategoryCurrent},
		{"family information", "imm 5645 family info.pdf", models.FileCategoryCurrent},
		{"passport", "Passport Bio Page.jpg", models.FileCategoryCurrent},
		{"payslip", "payslip_jan.pdf", models.FileCategoryCurrent},
		{"employment letter", "EmploymentLetter.pdf", models.FileCategoryCurrent},
		{"itinerary", "trip_itinerary.docx", models.FileCategoryCurrent},
		{"language test", "IELTS_TRF.pdf", models.FileCategoryCurrent},
		{"police certificate", "pcc_india.pdf", models.FileCategoryCurrent},
		{"no extension", "README", models.FileCategorySupporting},
		{"no keyword", "affidavit_notarized.pdf", models.FileCategorySupporting},
		{"id is a whole word only", "video_walkthrough.mp4", models.FileCategorySupporting},
		{"path is flattened", "docs/2024/bank.pdf", models.FileCategoryCurrent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.filename))
		})
	}
}

func TestClassify_RefusalPriority(t *testing.T) {
	others := []string{"bank", "passport", "imm5257", "offer_letter", "itinerary", "ielts", "photo", "tax"}
	refusals := []string{"refusal", "rejected", "denial", "adverse_decision", "procedural_fairness", "immigration_history"}

	for _, r := range refusals {
		for _, o := range others {
			assert.Equal(t, models.FileCategoryRefusal, Classify(o+"_"+r+".pdf"), "%s + %s", o, r)
			assert.Equal(t, models.FileCategoryRefusal, Classify(r+"_"+o+".pdf"), "%s + %s", r, o)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	names := []string{"bank.pdf", "refusal.pdf", "notes.txt", "passport.png"}
	first := make([]models.FileCategory, len(names))
	for i, n := range names {
		first[i] = Classify(n)
	}
	for i := len(names) - 1; i >= 0; i-- {
		assert.Equal(t, first[i], Classify(names[i]))
	}
}

func TestMatch_ReportsRule(t *testing.T) {
	category, rule := Match("bank_statement.pdf")
	assert.Equal(t, models.FileCategoryCurrent, category)
	assert.Equal(t, "financials", rule)

	category, rule = Match("misc.pdf")
	assert.Equal(t, models.FileCategorySupporting, category)
	assert.Empty(t, rule)
}

func TestRules_RefusalFirst(t *testing.T) {
	require.NotEmpty(t, Rules)
	assert.Equal(t, models.FileCategoryRefusal, Rules[0].Category)
	for _, r := range Rules[1:] {
		assert.Equal(t, models.FileCategoryCurrent, r.Category, r.Name)
	}
}

func TestIsSystemEntry(t *testing.T) {
	tests := []struct {
		entry    string
		expected bool
	}{
		{"folder/", true},
		{".DS_Store", true},
		{"docs/.hidden.pdf", true},
		{"__MACOSX/._bank.pdf", true},
		{"__init__.txt", true},
		{"docs/Thumbs.db", true},
		{"", true},
		{"docs/bank.pdf", false},
		{"passport.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSystemEntry(tt.entry))
		})
	}
}

func TestClassifyAll(t *testing.T) {
	entries := []string{
		"pkg/",
		"pkg/Refusal_Letter_2023.pdf",
		"pkg/bank_statement_march.pdf",
		"pkg/cover_letter.pdf",
		"pkg/.secret",
		"__MACOSX/pkg/._bank_statement_march.pdf",
		"pkg/passport.jpg",
		"other/bank_statement_march.pdf",
	}

	set, scanned := ClassifyAll(entries)

	assert.Equal(t, 5, scanned)
	assert.Equal(t, []string{"Refusal_Letter_2023.pdf"}, set.Refusal)
	assert.Equal(t, []string{"bank_statement_march.pdf", "passport.jpg", "bank_statement_march.pdf"}, set.Current)
	assert.Equal(t, []string{"cover_letter.pdf"}, set.Supporting)
	assert.Equal(t, scanned, set.Total())
}

func TestClassifyAll_Empty(t *testing.T) {
	set, scanned := ClassifyAll(nil)
	assert.Equal(t, 0, scanned)
	assert.NotNil(t, set.Current)
	assert.NotNil(t, set.Refusal)
	assert.NotNil(t, set.Supporting)
}

func TestListArchive(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"docs/", "docs/bank.pdf", "docs/refusal.pdf"} {
		_, err := zw.Create(name)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	names, err := ListArchive(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/", "docs/bank.pdf", "docs/refusal.pdf"}, names)

	set, scanned := ClassifyAll(names)
	assert.Equal(t, 2, scanned)
	assert.Equal(t, []string{"bank.pdf"}, set.Current)
	assert.Equal(t, []string{"refusal.pdf"}, set.Refusal)
}

func TestListArchive_Invalid(t *testing.T) {
	_, err := ListArchive([]byte("not a zip"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArchiveRead)
}
