package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docushield-workers/internal/models"
)

func req(id, group string) models.DocumentRequirement {
	return models.DocumentRequirement{ID: id, Label: id, Group: group}
}

func TestGroupRequirements_PlacesGroupAtFirstMember(t *testing.T) {
	reqs := []models.DocumentRequirement{
		req("r1", ""),
		req("r2", ""),
		req("r3", "Proof of Funds"),
		req("r4", ""),
		req("r5", ""),
		req("r6", ""),
		req("r7", "Proof of Funds"),
	}

	entries := GroupRequirements(reqs)
	require.Len(t, entries, 6)

	assert.False(t, entries[0].IsGroup())
	assert.Equal(t, "r1", entries[0].Single.ID)
	assert.Equal(t, "r2", entries[1].Single.ID)

	require.True(t, entries[2].IsGroup())
	assert.Equal(t, "Proof of Funds", entries[2].Group.Name)
	require.Len(t, entries[2].Group.Items, 2)
	assert.Equal(t, "r3", entries[2].Group.Items[0].ID)
	assert.Equal(t, "r7", entries[2].Group.Items[1].ID)

	assert.Equal(t, "r4", entries[3].Single.ID)
	assert.Equal(t, "r6", entries[5].Single.ID)
}

func TestGroupRequirements_NoGroups(t *testing.T) {
	reqs := []models.DocumentRequirement{req("a", ""), req("b", ""), req("c", "")}

	entries := GroupRequirements(reqs)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.False(t, e.IsGroup())
		assert.Equal(t, reqs[i].ID, e.Single.ID)
	}
}

func TestGroupRequirements_Empty(t *testing.T) {
	assert.Empty(t, GroupRequirements(nil))
}

func TestGroupRequirements_EveryRequirementOnce(t *testing.T) {
	for _, ct := range models.AllCaseTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			reqs, err := ForCaseType(ct)
			require.NoError(t, err)

			ids := RequirementIDs(GroupRequirements(reqs))
			require.Len(t, ids, len(reqs))

			seen := make(map[string]int)
			for _, id := range ids {
				seen[id]++
			}
			for _, r := range reqs {
				assert.Equal(t, 1, seen[r.ID], "requirement %s", r.ID)
			}
		})
	}
}

func TestGroupRequirements_ExpressEntryGroups(t *testing.T) {
	reqs, err := ForCaseType(models.CaseTypeExpressEntry)
	require.NoError(t, err)

	var groups []*Group
	for _, e := range GroupRequirements(reqs) {
		if e.IsGroup() {
			groups = append(groups, e.Group)
		}
	}

	require.Len(t, groups, 2)
	assert.Equal(t, GroupStreamSpecific, groups[0].Name)
	assert.Equal(t, []string{"e_funds", "e_pnp", "e_trade_cert"}, itemIDs(groups[0]))
	assert.Equal(t, GroupCivilStatus, groups[1].Name)
	assert.Equal(t, []string{"e_marriage", "e_divorce", "e_dep_docs"}, itemIDs(groups[1]))
}

func itemIDs(g *Group) []string {
	ids := make([]string, 0, len(g.Items))
	for _, item := range g.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestForCaseType(t *testing.T) {
	tests := []struct {
		caseType models.CaseType
		firstID  string
		size     int
	}{
		{models.CaseTypeVisitor, ZIPUploadID, 1},
		{models.CaseTypeStudy, "s_form_app", 17},
		{models.CaseTypeWork, "w_form_app", 16},
		{models.CaseTypeExpressEntry, "e_form_app", 27},
	}

	for _, tt := range tests {
		t.Run(tt.caseType.String(), func(t *testing.T) {
			reqs, err := ForCaseType(tt.caseType)
			require.NoError(t, err)
			assert.Len(t, reqs, tt.size)
			assert.Equal(t, tt.firstID, reqs[0].ID)
		})
	}
}

func TestForCaseType_ReturnsCopy(t *testing.T) {
	reqs, err := ForCaseType(models.CaseTypeStudy)
	require.NoError(t, err)
	reqs[0].Label = "mutated"

	again, err := ForCaseType(models.CaseTypeStudy)
	require.NoError(t, err)
	assert.Equal(t, "IMM 1294 (Application)", again[0].Label)
}

func TestForCaseType_Unknown(t *testing.T) {
	_, err := ForCaseType(models.CaseType("Super Visa"))
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	r, ok := Lookup(models.CaseTypeWork, "w_lmia")
	require.True(t, ok)
	assert.Equal(t, "LMIA / Exemption", r.Label)

	_, ok = Lookup(models.CaseTypeWork, "s_loa")
	assert.False(t, ok)
}
