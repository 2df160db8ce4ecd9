package domain

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// BulletPoint is one summary entry.
type BulletPoint struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SuggestedTag is informational only — it is never reconciled against the
// catalog.
type SuggestedTag struct {
	Group string `json:"group"`
	Tag   string `json:"tag"`
	Key   string `json:"key"`
}

// TradeIdea is a nested sub-record owned exclusively by its parent extraction.
// It is not independently addressable storage: mutations persist the parent's
// whole trade_ideas list back.
type TradeIdea struct {
	ID             string        `json:"id"`
	Recommendation string        `json:"recommendation"`
	Summary        []BulletPoint `json:"summary"`
	Conviction     int           `json:"conviction"`
	Pros           []string      `json:"pros"`
	Cons           []string      `json:"cons"`
	DeletedAt      *time.Time    `json:"deleted_at"`
}

// TagSelection is the embedded tags object: one counterpart scalar plus six
// list-of-name fields keyed by category. It is the source of truth for what
// the extraction intends; relationship rows are derived from it.
type TagSelection struct {
	Counterpart string   `json:"counterpart"`
	AssetClass  []string `json:"asset_class"`
	ED          []string `json:"e_d"`
	Region      []string `json:"region"`
	Country     []string `json:"country"`
	Sector      []string `json:"sector"`
	Trade       []string `json:"trade"`
}

// TagEntry is one (category, names) pair flattened out of a TagSelection.
type TagEntry struct {
	Category string
	Names    []string
}

// Entries flattens the selection in a fixed category order. The counterpart
// scalar is exposed as a single-element pseudo-category when set.
func (s TagSelection) Entries() []TagEntry {
	entries := []TagEntry{
		{Category: CategoryAssetClass, Names: s.AssetClass},
		{Category: CategoryED, Names: s.ED},
		{Category: CategoryRegion, Names: s.Region},
		{Category: CategoryCountry, Names: s.Country},
		{Category: CategorySector, Names: s.Sector},
		{Category: CategoryTrade, Names: s.Trade},
	}
	if strings.TrimSpace(s.Counterpart) != "" {
		entries = append(entries, TagEntry{
			Category: CategoryCounterpart,
			Names:    []string{s.Counterpart},
		})
	}
	return entries
}

// Extraction is the primary research-document record. Nested content is
// persisted as typed JSON columns decoded exactly once at the storage
// boundary.
type Extraction struct {
	ID            string                            `gorm:"primaryKey;type:text" json:"id"`
	Title         string                            `gorm:"not null" json:"title"`
	PublishedDate *string                           `gorm:"type:text;index" json:"published_date"`
	Authors       datatypes.JSONSlice[string]       `json:"authors"`
	Summary       datatypes.JSONSlice[BulletPoint]  `json:"summary"`
	Tags          datatypes.JSONType[TagSelection]  `json:"tags"`
	Pros          datatypes.JSONSlice[string]       `json:"pros"`
	Cons          datatypes.JSONSlice[string]       `json:"cons"`
	TradeIdeas    datatypes.JSONSlice[TradeIdea]    `json:"trade_ideas"`
	SuggestedTags datatypes.JSONSlice[SuggestedTag] `json:"suggested_tags"`
	CreatedAt     time.Time                         `json:"created_at"`
	DeletedAt     *time.Time                        `gorm:"index" json:"deleted_at"`
}

func (Extraction) TableName() string { return "research_extractions" }

// Deleted reports whether the record is soft-deleted.
func (e *Extraction) Deleted() bool { return e.DeletedAt != nil }

// Validate rejects malformed records before any write.
func (e *Extraction) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return NewValidationError("title", "is required")
	}
	for _, idea := range e.TradeIdeas {
		if idea.Conviction < 1 || idea.Conviction > 10 {
			return NewValidationError(
				"trade_ideas.conviction",
				fmt.Sprintf("must be between 1 and 10, got %d", idea.Conviction),
			)
		}
	}
	return nil
}

// TradeIdeaByID finds a nested trade idea, deleted or not.
func (e *Extraction) TradeIdeaByID(id string) (TradeIdea, bool) {
	for _, idea := range e.TradeIdeas {
		if idea.ID == id {
			return idea, true
		}
	}
	return TradeIdea{}, false
}
