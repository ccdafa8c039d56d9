package model

import (
	"strings"
	"time"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
)

// Market represents a specialty food market that can be reviewed.
type Market struct {
	id         string
	name       string
	address    string
	marketType string
	deletedAt  *time.Time
	createdAt  time.Time
}

// NewMarket creates a new Market.
func NewMarket(name, address, marketType string) (*Market, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerror.ErrMarketNameRequired
	}

	return &Market{
		id:         NewID(),
		name:       name,
		address:    strings.TrimSpace(address),
		marketType: strings.TrimSpace(marketType),
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructMarket creates a Market from persisted data.
func ReconstructMarket(
	id string,
	name string,
	address string,
	marketType string,
	deletedAt *time.Time,
	createdAt time.Time,
) *Market {
	return &Market{
		id:         id,
		name:       name,
		address:    address,
		marketType: marketType,
		deletedAt:  deletedAt,
		createdAt:  createdAt,
	}
}

func (m *Market) ID() string           { return m.id }
func (m *Market) Name() string         { return m.name }
func (m *Market) Address() string      { return m.address }
func (m *Market) Type() string         { return m.marketType }
func (m *Market) CreatedAt() time.Time { return m.createdAt }

// Deleted reports whether the market has been soft-deleted. Soft-deleted
// markets retain their stats but are excluded from leaderboard rebuilds.
func (m *Market) Deleted() bool {
	return m.deletedAt != nil
}
