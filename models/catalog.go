package models

// NamedItemInput is the shared write payload for the simple named catalog
// records: areas, event categories, rentals and rental products.
type NamedItemInput struct {
	Name string `json:"name"`
}

// BulkNamedInput is the payload for batch creation of named records.
type BulkNamedInput struct {
	Items []NamedItemInput `json:"items"`
}

// DependentRef is a sample entry returned when a delete is blocked (or
// forced) because other records still reference the target.
type DependentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DependentInfo groups the dependent count with a bounded sample so the
// caller can decide whether to force the delete.
type DependentInfo struct {
	Count  int64          `json:"count"`
	Sample []DependentRef `json:"sample"`
}

// DeleteReport describes the outcome of a guarded delete.
type DeleteReport struct {
	Deleted    bool                     `json:"deleted"`
	Forced     bool                     `json:"forced"`
	Dependents map[string]DependentInfo `json:"dependents,omitempty"`
}

// TotalDependents sums the dependent counts across all rules.
func (r *DeleteReport) TotalDependents() int64 {
	var total int64
	for _, info := range r.Dependents {
		total += info.Count
	}
	return total
}
