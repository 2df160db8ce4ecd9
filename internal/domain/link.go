package domain

import "time"

// ExtractionTag is one derived relationship row between an extraction and a
// catalog tag. The set of rows is recomputable at any time from the
// extraction's embedded tag selection plus the catalog — it is never
// independently authoritative.
type ExtractionTag struct {
	ExtractionID string    `gorm:"primaryKey;type:text" json:"extraction_id"`
	TagID        string    `gorm:"primaryKey;type:text" json:"tag_id"`
	TagCategory  string    `gorm:"index;not null" json:"tag_category"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ExtractionTag) TableName() string { return "extraction_tags" }

// LinkMiss records a tag name from the embedded selection that has no
// catalog entry in its category. Misses are diagnostics, never errors.
type LinkMiss struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (m LinkMiss) String() string {
	return "tag " + m.Name + " not found in category " + m.Category
}

// LinkReport is the outcome of one linking pass.
type LinkReport struct {
	Linked int        `json:"linked"`
	Misses []LinkMiss `json:"misses,omitempty"`
}
