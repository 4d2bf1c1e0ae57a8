package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comply-core/comply_core/internal/apperr"
)

// ErrNotFound reports a missing account. Login handlers must not surface it
// to clients distinguishably from a wrong password.
var ErrNotFound = errors.New("user not found")

// ErrEmailTaken reports a duplicate registration email.
var ErrEmailTaken = errors.New("email already registered")

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, password_hash, full_name, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	var createdAt, updatedAt time.Time
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &createdAt, &updatedAt); err != nil {
		return User{}, err
	}
	u.CreatedAt = createdAt.UTC()
	u.UpdatedAt = updatedAt.UTC()
	return u, nil
}

// Create inserts a new account. A unique-violation on email maps to
// ErrEmailTaken so the service can report it as caller-correctable.
func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO users (id, email, password_hash, full_name)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO NOTHING
        RETURNING `+userColumns, u.ID, u.Email, u.PasswordHash, u.FullName)

	created, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrEmailTaken
		}
		return User{}, apperr.Storage("create user", err)
	}
	return created, nil
}

// FindByEmail fetches an account by normalized email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, apperr.Storage("find user by email", err)
	}
	return u, nil
}

// FindByID fetches an account by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, apperr.Storage("find user by id", err)
	}
	return u, nil
}
