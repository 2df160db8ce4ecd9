package domain

// ListFilter carries the plain filter values the transport layer extracts
// from the wire. An empty Tags slice means no tag filter; a nil Limit means
// no truncation, while an explicit zero returns an empty result.
type ListFilter struct {
	Tags           []string
	StartDate      string
	EndDate        string
	Limit          *int
	IncludeDeleted bool
}

// Validate checks the date bounds.
func (f ListFilter) Validate() error {
	if err := ValidateDateFilter("start_date", f.StartDate); err != nil {
		return err
	}
	return ValidateDateFilter("end_date", f.EndDate)
}
