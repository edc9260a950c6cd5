package seed

import (
	"context"
	"fmt"

	"catalog-service/internal/model"
	"catalog-service/internal/service"

	"github.com/rs/zerolog"
)

// Seeder inserts sample items through the item service.
type Seeder struct {
	loader  Loader
	service service.ItemService
	logger  zerolog.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(loader Loader, service service.ItemService, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:  loader,
		service: service,
		logger:  logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads the seed file and creates every item in it, but only when the
// catalog is empty. It returns the number of items created.
func (s *Seeder) Run(ctx context.Context, path string) (int, error) {
	existing, err := s.service.Search(ctx, model.SearchFilter{Page: 1, PageSize: 1})
	if err != nil {
		return 0, fmt.Errorf("failed to check catalog before seeding: %w", err)
	}

	if existing.Total > 0 {
		s.logger.Info().Int("existing_items", existing.Total).Msg("catalog not empty, skipping seed")
		return 0, nil
	}

	items, err := s.loader.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to load seed data: %w", err)
	}

	created := 0
	for i := range items {
		if _, err := s.service.Create(ctx, &items[i]); err != nil {
			return created, fmt.Errorf("failed to seed item %d: %w", i+1, err)
		}
		created++
	}

	s.logger.Info().Int("items_created", created).Msg("catalog seeded")

	return created, nil
}
