package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
)

// marketRepository implements repository.MarketRepository.
type marketRepository struct {
	pool *pgxpool.Pool
}

// NewMarketRepository creates a new MarketRepository.
func NewMarketRepository(pool *pgxpool.Pool) repository.MarketRepository {
	return &marketRepository{pool: pool}
}

func (r *marketRepository) Create(ctx context.Context, market *model.Market) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO markets (id, name, address, market_type, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		market.ID(), market.Name(), market.Address(), market.Type(), market.CreatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *marketRepository) FindByID(ctx context.Context, id string) (*model.Market, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, address, market_type, deleted_at, created_at
		 FROM markets WHERE id = $1`,
		id,
	)
	return scanMarket(row)
}

func (r *marketRepository) ListActive(ctx context.Context) ([]*model.Market, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, address, market_type, deleted_at, created_at
		 FROM markets WHERE deleted_at IS NULL ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markets []*model.Market
	for rows.Next() {
		market, err := scanMarket(rows)
		if err != nil {
			return nil, err
		}
		markets = append(markets, market)
	}
	return markets, rows.Err()
}

func (r *marketRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM markets WHERE name = $1 AND deleted_at IS NULL)`,
		name,
	).Scan(&exists)
	return exists, err
}

func scanMarket(row pgx.Row) (*model.Market, error) {
	var (
		id, name, address, marketType string
		deletedAt                     *time.Time
		createdAt                     time.Time
	)
	if err := row.Scan(&id, &name, &address, &marketType, &deletedAt, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return model.ReconstructMarket(id, name, address, marketType, deletedAt, createdAt), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
