package depot

import (
	"github.com/mesh-intelligence/warehouse/internal/query"
	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// SearchOptions scope a model search.
type SearchOptions struct {
	// Project restricts candidates to one project's member models, in
	// stored member order. Nil scans the whole model index in key order.
	Project *Ref

	// ViewOnly returns display strings instead of raw records.
	ViewOnly bool
}

// SearchHit is one search result: the model's identity paired with either
// the raw record or its display form, per SearchOptions.ViewOnly.
type SearchHit struct {
	ID      int32
	Model   *types.Model
	Display string
}

// Search returns the models matching every filter expression, as ordered
// (identity, value) pairs. filters maps field name to an expression like
// ">=0.95" or "==supervised"; the set is conjunctive and an empty set
// matches everything. A field absent on a candidate excludes the candidate
// silently. Search is read-only: errors (unknown project, malformed
// expression) propagate to the caller directly, with no transaction
// involved.
func (d *Depot) Search(filters map[string]string, opts SearchOptions) ([]SearchHit, error) {
	parsed := make(map[string]query.Filter, len(filters))
	for field, expr := range filters {
		f, err := query.Parse(expr)
		if err != nil {
			return nil, err
		}
		parsed[field] = f
	}

	var candidates []*types.Model
	if opts.Project != nil {
		proj, err := opts.Project.resolve(d.projects())
		if err != nil {
			return nil, err
		}
		for _, mid := range proj.Models() {
			if rec, ok := d.models().Get(mid); ok {
				candidates = append(candidates, rec.(*types.Model))
			}
		}
	} else {
		for _, rec := range d.models().Records() {
			candidates = append(candidates, rec.(*types.Model))
		}
	}

	hits := make([]SearchHit, 0, len(candidates))
	for _, m := range candidates {
		if !matchAll(m, parsed) {
			continue
		}
		hit := SearchHit{ID: m.ID()}
		if opts.ViewOnly {
			hit.Display = m.String()
		} else {
			hit.Model = m
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func matchAll(m *types.Model, filters map[string]query.Filter) bool {
	for field, f := range filters {
		if !f.EvalField(m, field) {
			return false
		}
	}
	return true
}
