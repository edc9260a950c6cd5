package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"catalog-service/internal/events"
	"catalog-service/internal/model"
	"catalog-service/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pagination defaults for search.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// itemService implements ItemService.
type itemService struct {
	itemRepo  repository.ItemRepository
	publisher events.Publisher
	validator *itemValidator
	now       func() time.Time
	logger    zerolog.Logger
}

// NewItemService creates a new item service.
func NewItemService(itemRepo repository.ItemRepository, publisher events.Publisher, logger zerolog.Logger) ItemService {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}

	return &itemService{
		itemRepo:  itemRepo,
		publisher: publisher,
		validator: newItemValidator(),
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		logger:    logger.With().Str("service", "item").Logger(),
	}
}

// Search returns one page of items matching the filter. Out-of-range
// pagination is clamped and the effective values are echoed back.
func (s *itemService) Search(ctx context.Context, filter model.SearchFilter) (*model.SearchResult, error) {
	if filter.Page < 1 {
		filter.Page = DefaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}
	// Past this page the row offset no longer fits in an int.
	if maxPage := math.MaxInt/filter.PageSize + 1; filter.Page > maxPage {
		filter.Page = maxPage
	}

	items, total, err := s.itemRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", filter.Page).
			Int("page_size", filter.PageSize).
			Msg("failed to search items")
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	if items == nil {
		items = []model.Item{}
	}

	s.logger.Debug().
		Int("count", len(items)).
		Int("total", total).
		Int("page", filter.Page).
		Int("page_size", filter.PageSize).
		Msg("searched items")

	return &model.SearchResult{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Create validates the request, stores a new item and returns it as stored.
func (s *itemService) Create(ctx context.Context, req *model.ItemRequest) (*model.Item, error) {
	if err := s.validator.ValidateCreate(req); err != nil {
		s.logger.Debug().Err(err).Msg("create request rejected")
		return nil, err
	}

	now := s.now()
	item := &model.Item{
		ID:          uuid.New().String(),
		Name:        *req.Name,
		Description: req.Description,
		Category:    *req.Category,
		Price:       *req.Price,
		InStock:     *req.InStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to create item")
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	created, err := s.reload(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", created.ID).Msg("item created")
	s.publish(ctx, events.NewEvent(events.TypeItemCreated, created.ID, created))

	return created, nil
}

// GetByID retrieves a single item by ID.
func (s *itemService) GetByID(ctx context.Context, id string) (*model.Item, error) {
	if id == "" {
		s.logger.Warn().Msg("item ID is empty")
		return nil, model.ErrItemNotFound
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", id).Msg("failed to get item by ID")
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if item == nil {
		s.logger.Debug().Str("item_id", id).Msg("item not found")
		return nil, model.ErrItemNotFound
	}

	return item, nil
}

// Update writes only the fields present in the request and always
// refreshes updatedAt.
func (s *itemService) Update(ctx context.Context, id string, req *model.ItemRequest) (*model.Item, error) {
	if err := s.validator.ValidateUpdate(req); err != nil {
		s.logger.Debug().Err(err).Str("item_id", id).Msg("update request rejected")
		return nil, err
	}

	if err := s.itemRepo.Update(ctx, id, req.Patch(), s.now()); err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			return nil, model.ErrItemNotFound
		}
		s.logger.Error().Err(err).Str("item_id", id).Msg("failed to update item")
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	updated, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", id).Msg("item updated")
	s.publish(ctx, events.NewEvent(events.TypeItemUpdated, id, updated))

	return updated, nil
}

// Delete removes an item permanently.
func (s *itemService) Delete(ctx context.Context, id string) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrItemNotFound) {
			return model.ErrItemNotFound
		}
		s.logger.Error().Err(err).Str("item_id", id).Msg("failed to delete item")
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.logger.Info().Str("item_id", id).Msg("item deleted")
	s.publish(ctx, events.NewEvent(events.TypeItemDeleted, id, nil))

	return nil
}

// reload re-reads an item right after a successful write. A failure here
// surfaces as an internal error even though the write is durable.
func (s *itemService) reload(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", id).Msg("failed to re-read item after write")
		return nil, fmt.Errorf("failed to re-read item: %w", err)
	}

	if item == nil {
		s.logger.Error().Str("item_id", id).Msg("item vanished after write")
		return nil, fmt.Errorf("item %s not found after write", id)
	}

	return item, nil
}

func (s *itemService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("type", event.Type).
			Str("item_id", event.ItemID).
			Msg("failed to publish item event")
	}
}
