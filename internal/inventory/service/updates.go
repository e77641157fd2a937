package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"flexstock/internal/inventory"

	"github.com/prometheus/client_golang/prometheus"
)

type UpdateRepository interface {
	CreateUpdate(ctx context.Context, update inventory.Update) (inventory.UpdateEvent, error)
	ListUpdates(ctx context.Context) ([]inventory.UpdateEvent, error)
}

// ProductFinder returns inventory.ErrNotFound for missing products.
type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (inventory.Product, error)
}

type Publisher interface {
	Publish(ctx context.Context, event inventory.UpdateEvent) error
}

// Updates records inventory update events and reads them back enriched with
// current product names. It never changes product state.
type Updates struct {
	repo      UpdateRepository
	products  ProductFinder
	publisher Publisher
	logger    *slog.Logger
	recorded  *prometheus.CounterVec
}

func NewUpdates(repo UpdateRepository, products ProductFinder, publisher Publisher, logger *slog.Logger, recorded *prometheus.CounterVec) *Updates {
	return &Updates{
		repo:      repo,
		products:  products,
		publisher: publisher,
		logger:    logger,
		recorded:  recorded,
	}
}

// Create parses input and appends one event, returning its id.
func (s *Updates) Create(ctx context.Context, input map[string]any) (int64, error) {
	update, err := ParseUpdate(input)
	if err != nil {
		return 0, err
	}

	event, err := s.Record(ctx, update)
	if err != nil {
		return 0, err
	}
	return event.ID, nil
}

// Record appends an already-typed update.
func (s *Updates) Record(ctx context.Context, update inventory.Update) (inventory.UpdateEvent, error) {
	if strings.TrimSpace(string(update.Type)) == "" {
		return inventory.UpdateEvent{}, inventory.MissingField("type")
	}
	if strings.TrimSpace(update.User) == "" {
		update.User = inventory.DefaultUser
	}

	event, err := s.repo.CreateUpdate(ctx, update)
	if err != nil {
		return inventory.UpdateEvent{}, storeErr("repo create update", err)
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish inventory update failed",
			"update_id", event.ID,
			"type", event.Type,
			"error", err,
		)
	}

	s.recorded.WithLabelValues(string(event.Type.Kind())).Inc()
	return event, nil
}

// List returns every event in store order. Each event carries the current
// name of its product, or nil when the product is gone.
func (s *Updates) List(ctx context.Context) ([]inventory.EnrichedEvent, error) {
	events, err := s.repo.ListUpdates(ctx)
	if err != nil {
		return nil, storeErr("repo list updates", err)
	}

	names := make(map[int64]*string)
	enriched := make([]inventory.EnrichedEvent, 0, len(events))
	for _, event := range events {
		item := inventory.EnrichedEvent{UpdateEvent: event}
		if event.ProductID != nil {
			name, err := s.currentName(ctx, *event.ProductID, names)
			if err != nil {
				return nil, err
			}
			item.CurrentProductName = name
		}
		enriched = append(enriched, item)
	}

	return enriched, nil
}

func (s *Updates) currentName(ctx context.Context, id int64, cache map[int64]*string) (*string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}

	product, err := s.products.FindByID(ctx, id)
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		cache[id] = nil
		return nil, nil
	case err != nil:
		return nil, storeErr(fmt.Sprintf("find product %d", id), err)
	}

	name := product.Name
	cache[id] = &name
	return &name, nil
}

func storeErr(op string, err error) error {
	if errors.Is(err, inventory.ErrNotFound) || errors.Is(err, inventory.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, inventory.ErrStoreUnavailable, err)
}
