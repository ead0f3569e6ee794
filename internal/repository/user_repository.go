package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetSessionToken(ctx context.Context, id uuid.UUID, token *string, active bool) error
}

type userRepository struct {
	db *bun.DB
}

// NewUserRepository returns a bun-backed implementation.
func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	_, err := r.db.NewInsert().
		Model(user).
		Returning("created_at, updated_at").
		Exec(ctx)
	return err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		// a malformed id can never reference a row
		return nil, sql.ErrNoRows
	}

	user := new(domain.User)
	if err := r.db.NewSelect().
		Model(user).
		Where("u.id = ?", uid).
		Scan(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := new(domain.User)
	if err := r.db.NewSelect().
		Model(user).
		Where("u.email = ?", email).
		Scan(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

// SetSessionToken writes the single session slot and the active flag in one
// statement. Login passes the fresh token with active=true, logout nil with
// active=false.
func (r *userRepository) SetSessionToken(ctx context.Context, id uuid.UUID, token *string, active bool) error {
	res, err := r.db.NewUpdate().
		Model((*domain.User)(nil)).
		Set("access_token = ?", token).
		Set("is_active = ?", active).
		Set("updated_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
