package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/market-scout/marketscout/internal/domain/model"
	"github.com/market-scout/marketscout/internal/port/outbound/repository"
)

// userRepository implements repository.UserRepository.
type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, email_verified, scopes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID(), user.Username(), user.Email(), user.PasswordHash(),
		user.EmailVerified(), user.Scopes(), user.CreatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $2, email = $3, password_hash = $4,
		        email_verified = $5, scopes = $6
		 WHERE id = $1`,
		user.ID(), user.Username(), user.Email(), user.PasswordHash(),
		user.EmailVerified(), user.Scopes(),
	)
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *userRepository) findBy(ctx context.Context, column, value string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, email_verified, scopes, created_at
		 FROM users WHERE `+column+` = $1`,
		value,
	)

	var (
		id, username, email, passwordHash string
		emailVerified                     bool
		scopes                            []string
		createdAt                         time.Time
	)
	if err := row.Scan(&id, &username, &email, &passwordHash, &emailVerified, &scopes, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return model.ReconstructUser(id, username, email, passwordHash, emailVerified, scopes, createdAt), nil
}
