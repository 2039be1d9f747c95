// Package seed loads the reference data a fresh installation needs.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"eventoria/internal/domain"
	"eventoria/internal/repository"
)

//go:embed categories.yaml
var categoriesYAML []byte

type categoryEntry struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description"`
	ImageURL      string            `yaml:"image_url"`
	PriceRange    domain.PriceRange `yaml:"price_range"`
	Subcategories []string          `yaml:"subcategories"`
	Tags          []string          `yaml:"tags"`
}

// Categories returns the built-in catalog of service categories.
func Categories() ([]domain.Category, error) {
	return ParseCategories(categoriesYAML)
}

func ParseCategories(data []byte) ([]domain.Category, error) {
	var entries []categoryEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	categories := make([]domain.Category, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Name == "" {
			return nil, fmt.Errorf("category entry missing id or name")
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", e.ID)
		}
		if e.PriceRange.Min > e.PriceRange.Max {
			return nil, fmt.Errorf("category %q: price range min exceeds max", e.ID)
		}
		seen[e.ID] = struct{}{}

		categories = append(categories, domain.Category{
			ID:            e.ID,
			Name:          e.Name,
			Description:   e.Description,
			ImageURL:      e.ImageURL,
			PriceRange:    e.PriceRange,
			Subcategories: e.Subcategories,
			Tags:          e.Tags,
		})
	}
	return categories, nil
}

// Apply upserts every category, so running it twice is harmless.
func Apply(ctx context.Context, repo repository.CategoryRepository, categories []domain.Category) (int, error) {
	for i := range categories {
		if err := repo.Upsert(ctx, &categories[i]); err != nil {
			return i, fmt.Errorf("upsert category %s: %w", categories[i].ID, err)
		}
		log.Debug().Str("category_id", categories[i].ID).Msg("Category seeded")
	}
	return len(categories), nil
}
