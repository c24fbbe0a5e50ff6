package checklist

import "docushield-workers/internal/models"

// Group is a named set of requirements rendered together.
type Group struct {
	Name  string                       `json:"name"`
	Items []models.DocumentRequirement `json:"items"`
}

// Entry is either a single requirement or a group; exactly one field is set.
type Entry struct {
	Single *models.DocumentRequirement `json:"single,omitempty"`
	Group  *Group                      `json:"group,omitempty"`
}

func (e Entry) IsGroup() bool {
	return e.Group != nil
}

// GroupRequirements walks the checklist once. An ungrouped requirement
// stays at its position; the first member of a group emits the whole group
// (every requirement in the list with that name, in list order) and later
// members are skipped.
func GroupRequirements(reqs []models.DocumentRequirement) []Entry {
	entries := make([]Entry, 0, len(reqs))
	seen := make(map[string]bool)

	for i := range reqs {
		req := reqs[i]
		if req.Group == "" {
			entries = append(entries, Entry{Single: &req})
			continue
		}
		if seen[req.Group] {
			continue
		}
		seen[req.Group] = true

		g := &Group{Name: req.Group}
		for _, other := range reqs {
			if other.Group == req.Group {
				g.Items = append(g.Items, other)
			}
		}
		entries = append(entries, Entry{Group: g})
	}
	return entries
}

// RequirementIDs flattens entries back to requirement ids in display order.
func RequirementIDs(entries []Entry) []string {
	var ids []string
	for _, e := range entries {
		if e.Group != nil {
			for _, item := range e.Group.Items {
				ids = append(ids, item.ID)
			}
			continue
		}
		ids = append(ids, e.Single.ID)
	}
	return ids
}
