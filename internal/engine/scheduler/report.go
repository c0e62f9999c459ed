package scheduler

import (
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
)

// Report is the outcome of one build session.
type Report struct {
	Platform string
	// Results holds every resource of the session: the requests and their requirement closure.
	Results     map[domain.ResourceID]*domain.CompileResult
	Diagnostics []domain.Diagnostic
}

// State returns the terminal state of id, or "" if id was not part of the session.
func (r *Report) State(id domain.ResourceID) domain.ResourceState {
	if res, ok := r.Results[id]; ok {
		return res.State
	}
	return ""
}

// Sorted returns the results ordered by resource.
func (r *Report) Sorted() []*domain.CompileResult {
	out := make([]*domain.CompileResult, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, res)
	}
	slices.SortFunc(out, func(a, b *domain.CompileResult) int {
		return a.Request.ID.Compare(b.Request.ID)
	})
	return out
}

// Count returns how many resources ended in st.
func (r *Report) Count(st domain.ResourceState) int {
	n := 0
	for _, res := range r.Results {
		if res.State == st {
			n++
		}
	}
	return n
}
