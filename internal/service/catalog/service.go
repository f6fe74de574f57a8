package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pgg11/stock-manager-frontend/internal/domain/models"
	"github.com/pgg11/stock-manager-frontend/pkg/clients/stockapi"
)

// Service keeps the catalog snapshot in sync with the remote product listing
// and proxies product mutations to it. Every mutation is followed by a full
// refetch, never a local patch.
type Service struct {
	client stockapi.Client
	store  *Store
	logger *zap.Logger
}

// NewService wires a catalog service around an empty store.
func NewService(client stockapi.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		store:  NewStore(),
		logger: logger,
	}
}

// Store exposes the snapshot for read-side collaborators (pricing, draft
// display, sale history name resolution).
func (s *Service) Store() *Store {
	return s.store
}

// Refresh refetches the product list and replaces the snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}

	s.store.Replace(products)
	s.logger.Debug("catalog snapshot replaced", zap.Int("products", len(products)))
	return nil
}

// Products returns the current snapshot.
func (s *Service) Products() []models.Product {
	return s.store.Products()
}

// CreateProduct registers a product remotely and refreshes the snapshot.
func (s *Service) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product, err := s.client.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("catalog refresh after create failed", zap.Error(err))
	}
	return product, nil
}

// UpdateProduct edits a product remotely and refreshes the snapshot.
func (s *Service) UpdateProduct(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.client.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("catalog refresh after update failed", zap.Error(err))
	}
	return product, nil
}

// ListPurchases fetches the purchase history.
func (s *Service) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	return s.client.ListPurchases(ctx)
}

// CreatePurchase registers a purchase and refreshes the snapshot, since a
// purchase adds or consolidates batches server-side.
func (s *Service) CreatePurchase(ctx context.Context, req models.CreatePurchaseRequest) (*models.Purchase, error) {
	purchase, err := s.client.CreatePurchase(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("catalog refresh after purchase failed", zap.Error(err))
	}
	return purchase, nil
}

// DeletePurchase removes a purchase record and refreshes the snapshot.
func (s *Service) DeletePurchase(ctx context.Context, id int64) error {
	if err := s.client.DeletePurchase(ctx, id); err != nil {
		return err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("catalog refresh after purchase delete failed", zap.Error(err))
	}
	return nil
}
