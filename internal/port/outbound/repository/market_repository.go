package repository

import (
	"context"

	"github.com/market-scout/marketscout/internal/domain/model"
)

// MarketRepository is the store-of-record access for markets.
type MarketRepository interface {
	Create(ctx context.Context, market *model.Market) error

	FindByID(ctx context.Context, id string) (*model.Market, error)

	// ListActive returns all markets that have not been soft-deleted.
	ListActive(ctx context.Context) ([]*model.Market, error)

	ExistsByName(ctx context.Context, name string) (bool, error)
}
