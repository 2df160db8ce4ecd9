package domain

import "time"

// Tag categories observed in the taxonomy. The category set is open: the
// catalog stores whatever the taxonomy file declares, these are the ones the
// embedded tag selection maps onto.
const (
	CategoryAssetClass  = "asset_class"
	CategoryED          = "e_d"
	CategoryRegion      = "region"
	CategoryCountry     = "country"
	CategorySector      = "sector"
	CategoryTrade       = "trade"
	CategoryCounterpart = "counterpart"
)

// Tag is a named taxonomy entry. Identity is the (name, category) pair — the
// same name may legitimately exist in two categories as two different tags.
type Tag struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Name      string    `gorm:"uniqueIndex:idx_tags_name_category;not null" json:"name"`
	Category  string    `gorm:"uniqueIndex:idx_tags_name_category;not null" json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func (Tag) TableName() string { return "tags" }

// CategoryCount pairs a category with the number of catalog tags in it.
type CategoryCount struct {
	Category string `json:"category"`
	TagCount int    `json:"tag_count"`
}

// TagCount is an aggregation row: a tag name with the number of distinct
// extractions referencing it.
type TagCount struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Count    int    `json:"count"`
}
