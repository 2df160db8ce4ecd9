package export

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/finmock/researchd/internal/domain"
)

// The import path accepts snapshots produced by older exporters. Two shapes
// drifted over time: summary fields were once bare strings or string lists,
// and tags were once a flat name list instead of the categorized object.
// The wire types below absorb all of them.

// bulletList decodes a bullet-point list from any historical shape.
type bulletList []domain.BulletPoint

func (b *bulletList) UnmarshalJSON(data []byte) error {
	var points []domain.BulletPoint
	if err := json.Unmarshal(data, &points); err == nil {
		*b = points
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		out := make([]domain.BulletPoint, 0, len(lines))
		for _, line := range lines {
			out = append(out, domain.BulletPoint{Body: line})
		}
		*b = out
		return nil
	}

	var line string
	if err := json.Unmarshal(data, &line); err != nil {
		return err
	}
	if line == "" {
		*b = nil
		return nil
	}
	*b = []domain.BulletPoint{{Body: line}}
	return nil
}

// tagsWire holds either the categorized selection or a legacy flat name
// list, whichever the snapshot carried.
type tagsWire struct {
	Selection domain.TagSelection
	Flat      []string
}

func (t *tagsWire) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(data, &t.Flat)
	}
	return json.Unmarshal(data, &t.Selection)
}

type wireTradeIdea struct {
	ID             string     `json:"id"`
	Recommendation string     `json:"recommendation"`
	Summary        bulletList `json:"summary"`
	Conviction     int        `json:"conviction"`
	Pros           []string   `json:"pros"`
	Cons           []string   `json:"cons"`
	DeletedAt      *time.Time `json:"deleted_at"`
}

type wireExtraction struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	PublishedDate *string               `json:"published_date"`
	Authors       []string              `json:"authors"`
	Summary       bulletList            `json:"summary"`
	Tags          tagsWire              `json:"tags"`
	Pros          []string              `json:"pros"`
	Cons          []string              `json:"cons"`
	TradeIdeas    []wireTradeIdea       `json:"trade_ideas"`
	SuggestedTags []domain.SuggestedTag `json:"suggested_tags"`
	DeletedAt     *time.Time            `json:"deleted_at"`
}

type wireSnapshot struct {
	Extractions []wireExtraction `json:"extractions"`
}

// decodeSnapshot accepts the full snapshot envelope or a bare record array.
func decodeSnapshot(raw []byte) ([]wireExtraction, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []wireExtraction
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var snap wireSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return snap.Extractions, nil
}
