package inventory

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed seed_menu.yaml
var seedMenu []byte

type seedFile struct {
	Items []seedItem `yaml:"items"`
}

type seedItem struct {
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Quantity int     `yaml:"quantity"`
	Unit     string  `yaml:"unit"`
	MinStock int     `yaml:"minStock"`
	Price    float64 `yaml:"price"`
	Supplier string  `yaml:"supplier"`
}

// seedItems parses the embedded starter menu into items for a café.
func seedItems(cafeID string, now time.Time) ([]Item, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedMenu, &f); err != nil {
		return nil, fmt.Errorf("parse seed menu: %w", err)
	}

	items := make([]Item, len(f.Items))
	for i, s := range f.Items {
		items[i] = Item{
			ID:            uuid.NewString(),
			Name:          s.Name,
			Category:      s.Category,
			Quantity:      s.Quantity,
			Unit:          s.Unit,
			MinStock:      s.MinStock,
			Price:         s.Price,
			Supplier:      s.Supplier,
			CafeID:        cafeID,
			LastRestocked: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}
	return items, nil
}
