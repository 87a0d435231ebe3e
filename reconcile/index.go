// reconcile/index.go
package reconcile

import "github.com/ltp-analytics/dashboard/models"

// Index maps a project number to the financial records carrying it, in
// source order. It points into the slice it was built from and never
// modifies it.
type Index map[string][]*models.FinancialRecord

// NewIndex builds an Index over records. Keys are compared by exact string
// equality, so "P1" and "p1 " are different projects.
func NewIndex(records []models.FinancialRecord) Index {
	ix := make(Index, len(records))
	for i := range records {
		key := records[i].ProjectNumber
		ix[key] = append(ix[key], &records[i])
	}
	return ix
}

// Has reports whether at least one financial record carries projectNumber.
func (ix Index) Has(projectNumber string) bool {
	return len(ix[projectNumber]) > 0
}

// First returns the first financial record, in source order, for
// projectNumber. Later duplicates are ignored.
func (ix Index) First(projectNumber string) (*models.FinancialRecord, bool) {
	recs := ix[projectNumber]
	if len(recs) == 0 {
		return nil, false
	}
	return recs[0], true
}

// Match splits projects into those with a financial counterpart in ix and
// those without, preserving input order in both.
func Match(projects []models.ProjectRecord, ix Index) (matched, unmatched []models.ProjectRecord) {
	for _, p := range projects {
		if ix.Has(p.ProjectNumber) {
			matched = append(matched, p)
		} else {
			unmatched = append(unmatched, p)
		}
	}
	return matched, unmatched
}
