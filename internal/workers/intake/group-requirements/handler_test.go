// internal/workers/intake/group-requirements/handler_test.go
package grouprequirements

import (
	"context"
	"testing"

	"docushield-workers/internal/audit/checklist"
	"docushield-workers/internal/common/logger"
	"docushield-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name          string
		caseType      string
		wantCaseType  models.CaseType
		wantRequired  int
		wantGroups    []string
		wantEntryRoot string
	}{
		{
			name:          "visitor has a single archive upload",
			caseType:      "Visitor Visa",
			wantCaseType:  models.CaseTypeVisitor,
			wantRequired:  1,
			wantEntryRoot: checklist.ZIPUploadID,
		},
		{
			name:          "study groups proof of funds",
			caseType:      "study",
			wantCaseType:  models.CaseTypeStudy,
			wantRequired:  8,
			wantGroups:    []string{checklist.GroupProofOfFunds},
			wantEntryRoot: "s_form_app",
		},
		{
			name:          "express entry alias",
			caseType:      "EE",
			wantCaseType:  models.CaseTypeExpressEntry,
			wantEntryRoot: "e_form_app",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(LoadConfig(), &testLogger{t: t})
			output, err := h.Execute(context.Background(), &Input{CaseType: tt.caseType})
			require.NoError(t, err)

			assert.Equal(t, tt.wantCaseType, output.CaseType)
			if tt.wantRequired > 0 {
				assert.Equal(t, tt.wantRequired, output.RequiredCount)
			}
			assert.Len(t, output.MissingRequired, output.RequiredCount)
			assert.False(t, output.ChecklistComplete)

			require.NotEmpty(t, output.Entries)
			if output.Entries[0].Single != nil {
				assert.Equal(t, tt.wantEntryRoot, output.Entries[0].Single.ID)
			}

			var groups []string
			for _, e := range output.Entries {
				if e.IsGroup() {
					groups = append(groups, e.Group.Name)
				}
			}
			for _, g := range tt.wantGroups {
				assert.Contains(t, groups, g)
			}

			// every requirement appears exactly once across the entries
			assert.ElementsMatch(t, idsOf(output.Requirements), checklist.RequirementIDs(output.Entries))
		})
	}
}

func TestHandler_Execute_TracksUploadedRequirements(t *testing.T) {
	h := NewHandler(LoadConfig(), &testLogger{t: t})

	output, err := h.Execute(context.Background(), &Input{
		CaseType:    "Visitor Visa",
		UploadedIDs: []string{checklist.ZIPUploadID},
	})

	require.NoError(t, err)
	assert.Empty(t, output.MissingRequired)
	assert.True(t, output.ChecklistComplete)
}

func TestHandler_Execute_UnknownCaseType(t *testing.T) {
	h := NewHandler(LoadConfig(), &testLogger{t: t})

	for _, ct := range []string{"Super Visa", ""} {
		_, err := h.Execute(context.Background(), &Input{CaseType: ct})
		assert.ErrorIs(t, err, models.ErrUnknownCaseType, ct)
	}
}

func idsOf(reqs []models.DocumentRequirement) []string {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	return ids
}
