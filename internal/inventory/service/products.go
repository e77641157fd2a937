package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"flexstock/internal/inventory"

	"github.com/prometheus/client_golang/prometheus"
)

type ProductRepository interface {
	Create(ctx context.Context, product inventory.Product) (inventory.Product, error)
	FindByID(ctx context.Context, id int64) (inventory.Product, error)
	List(ctx context.Context) ([]inventory.Product, error)
	Update(ctx context.Context, product inventory.Product) (inventory.Product, error)
	Delete(ctx context.Context, id int64) error
}

type UpdateRecorder interface {
	Record(ctx context.Context, update inventory.Update) (inventory.UpdateEvent, error)
}

// Products manages the product catalogue and records an update event for
// every change it makes.
type Products struct {
	repo     ProductRepository
	updates  UpdateRecorder
	logger   *slog.Logger
	created  prometheus.Counter
	deleted  prometheus.Counter
	lowStock prometheus.Counter
}

func NewProducts(repo ProductRepository, updates UpdateRecorder, logger *slog.Logger, created, deleted, lowStock prometheus.Counter) *Products {
	return &Products{
		repo:     repo,
		updates:  updates,
		logger:   logger,
		created:  created,
		deleted:  deleted,
		lowStock: lowStock,
	}
}

func (s *Products) CreateProduct(ctx context.Context, input inventory.ProductInput, user string) (inventory.Product, error) {
	product := inventory.Product{
		Name:         strings.TrimSpace(input.Name),
		Category:     strings.TrimSpace(input.Category),
		Price:        input.Price,
		Stock:        input.Stock,
		ReorderLevel: input.ReorderLevel,
	}
	if err := validateProduct(product); err != nil {
		return inventory.Product{}, err
	}

	product, err := s.repo.Create(ctx, product)
	if err != nil {
		return inventory.Product{}, storeErr("repo create", err)
	}

	s.record(ctx, inventory.Update{
		Type:            inventory.EventAdd,
		ProductID:       &product.ID,
		NewQuantity:     &product.Stock,
		User:            user,
		ProductName:     &product.Name,
		NewName:         &product.Name,
		NewPrice:        &product.Price,
		NewCategory:     &product.Category,
		NewReorderLevel: &product.ReorderLevel,
	})

	s.created.Inc()
	return product, nil
}

func (s *Products) GetProduct(ctx context.Context, id int64) (inventory.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return inventory.Product{}, storeErr("repo find", err)
	}
	return product, nil
}

func (s *Products) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeErr("repo list", err)
	}
	return items, nil
}

// UpdateProduct applies patch and records one event per changed attribute:
// stock first, then name, price, category and reorder level.
func (s *Products) UpdateProduct(ctx context.Context, id int64, patch inventory.ProductPatch, user string) (inventory.Product, error) {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return inventory.Product{}, storeErr("repo find", err)
	}

	after := before
	if patch.Name != nil {
		after.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Category != nil {
		after.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Price != nil {
		after.Price = *patch.Price
	}
	if patch.Stock != nil {
		after.Stock = *patch.Stock
	}
	if patch.ReorderLevel != nil {
		after.ReorderLevel = *patch.ReorderLevel
	}
	if err := validateProduct(after); err != nil {
		return inventory.Product{}, err
	}

	after, err = s.repo.Update(ctx, after)
	if err != nil {
		return inventory.Product{}, storeErr("repo update", err)
	}

	for _, update := range diffProduct(before, after, user) {
		s.record(ctx, update)
	}

	if after.Stock <= after.ReorderLevel && before.Stock > before.ReorderLevel {
		s.lowStock.Inc()
		s.logger.Warn("product stock at or below reorder level",
			"product_id", after.ID,
			"stock", after.Stock,
			"reorder_level", after.ReorderLevel,
		)
	}

	return after, nil
}

func (s *Products) DeleteProduct(ctx context.Context, id int64, user string) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeErr("repo find", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return storeErr("repo delete", err)
	}

	s.record(ctx, inventory.Update{
		Type:        inventory.EventDelete,
		ProductID:   &product.ID,
		OldQuantity: &product.Stock,
		User:        user,
		ProductName: &product.Name,
		OldName:     &product.Name,
	})

	s.deleted.Inc()
	return nil
}

// record logs instead of failing: the product change it describes has
// already been committed.
func (s *Products) record(ctx context.Context, update inventory.Update) {
	if _, err := s.updates.Record(ctx, update); err != nil {
		s.logger.Error("record inventory update failed",
			"type", update.Type,
			"product_id", update.ProductID,
			"error", err,
		)
	}
}

func validateProduct(p inventory.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", inventory.ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", inventory.ErrInvalidProduct)
	case !inventory.PriceFits(p.Price):
		return fmt.Errorf("%w: price must be below 10000000000 with at most %d decimal places", inventory.ErrInvalidProduct, inventory.PriceScale)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", inventory.ErrInvalidProduct)
	case p.Stock > inventory.MaxQuantity:
		return fmt.Errorf("%w: stock must not exceed %d", inventory.ErrInvalidProduct, inventory.MaxQuantity)
	case p.ReorderLevel < 0:
		return fmt.Errorf("%w: reorder level must not be negative", inventory.ErrInvalidProduct)
	case p.ReorderLevel > inventory.MaxQuantity:
		return fmt.Errorf("%w: reorder level must not exceed %d", inventory.ErrInvalidProduct, inventory.MaxQuantity)
	}
	return nil
}

func diffProduct(before, after inventory.Product, user string) []inventory.Update {
	var updates []inventory.Update
	base := func(t inventory.EventType) inventory.Update {
		return inventory.Update{
			Type:        t,
			ProductID:   &after.ID,
			User:        user,
			ProductName: &after.Name,
		}
	}

	if before.Stock != after.Stock {
		t := inventory.EventRestock
		if after.Stock < before.Stock {
			t = inventory.EventSale
		}
		u := base(t)
		u.OldQuantity = &before.Stock
		u.NewQuantity = &after.Stock
		updates = append(updates, u)
	}
	if before.Name != after.Name {
		u := base(inventory.EventNameChange)
		u.OldName = &before.Name
		u.NewName = &after.Name
		updates = append(updates, u)
	}
	if !before.Price.Equal(after.Price) {
		u := base(inventory.EventPriceChange)
		u.OldPrice = &before.Price
		u.NewPrice = &after.Price
		updates = append(updates, u)
	}
	if before.Category != after.Category {
		u := base(inventory.EventCategoryChange)
		u.OldCategory = &before.Category
		u.NewCategory = &after.Category
		updates = append(updates, u)
	}
	if before.ReorderLevel != after.ReorderLevel {
		u := base(inventory.EventReorderChange)
		u.OldReorderLevel = &before.ReorderLevel
		u.NewReorderLevel = &after.ReorderLevel
		updates = append(updates, u)
	}

	return updates
}
