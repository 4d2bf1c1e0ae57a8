// Package owned implements the owner-scoping discipline shared by every
// protected resource. All single-row operations filter by
// id AND owner_id in one statement, so "absent" and "owned by someone else"
// are indistinguishable to callers; both surface as not_found. The generic
// repository exists so the owner filter is written once, not re-implemented
// per resource type.
package owned

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comply-core/comply_core/internal/apperr"
)

// Table describes an owned entity's relational mapping. Columns lists every
// selectable column in scan order; OrderBy fixes list ordering (newest
// first, id ascending on ties, for deterministic pagination later). Touch
// names the timestamp column bumped on update, empty for tables without one.
type Table[T any] struct {
	Name     string
	Resource string
	Columns  []string
	OrderBy  string
	Touch    string
	Scan     func(row pgx.Row) (T, error)
}

// Repository runs owner-scoped queries for one entity type against Postgres.
type Repository[T any] struct {
	db  *pgxpool.Pool
	tbl Table[T]
}

// NewRepository builds an owner-scoped repository. OrderBy defaults to
// created_at DESC, id ASC.
func NewRepository[T any](db *pgxpool.Pool, tbl Table[T]) *Repository[T] {
	if tbl.OrderBy == "" {
		tbl.OrderBy = "created_at DESC, id ASC"
	}
	return &Repository[T]{db: db, tbl: tbl}
}

func (r *Repository[T]) columnList() string {
	return strings.Join(r.tbl.Columns, ", ")
}

// Insert creates a row from parallel column/value slices and returns the
// stored entity. Callers stamp owner_id from the verified identity; the
// value never comes from request payloads.
func (r *Repository[T]) Insert(ctx context.Context, columns []string, values []any) (T, error) {
	var zero T
	if len(columns) != len(values) {
		return zero, apperr.Internal("insert column/value mismatch", nil)
	}
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.tbl.Name, strings.Join(columns, ", "), strings.Join(placeholders, ", "), r.columnList())

	entity, err := r.tbl.Scan(r.db.QueryRow(ctx, query, values...))
	if err != nil {
		return zero, apperr.Storage("insert "+r.tbl.Resource, err)
	}
	return entity, nil
}

// Find fetches one row scoped to its owner.
func (r *Repository[T]) Find(ctx context.Context, id, ownerID uuid.UUID) (T, error) {
	var zero T
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND owner_id = $2",
		r.columnList(), r.tbl.Name)

	entity, err := r.tbl.Scan(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperr.NotFound(r.tbl.Resource)
		}
		return zero, apperr.Storage("find "+r.tbl.Resource, err)
	}
	return entity, nil
}

// List returns every row belonging to ownerID in the table's fixed order.
func (r *Repository[T]) List(ctx context.Context, ownerID uuid.UUID) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE owner_id = $1 ORDER BY %s",
		r.columnList(), r.tbl.Name, r.tbl.OrderBy)

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperr.Storage("list "+r.tbl.Resource, err)
	}
	defer rows.Close()

	entities := make([]T, 0)
	for rows.Next() {
		entity, err := r.tbl.Scan(rows)
		if err != nil {
			return nil, apperr.Storage("scan "+r.tbl.Resource, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("list "+r.tbl.Resource, err)
	}
	return entities, nil
}

// ListBy returns the owner's rows matching one extra column. The column name
// comes from static repository code, never from request input.
func (r *Repository[T]) ListBy(ctx context.Context, column string, value any, ownerID uuid.UUID) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND owner_id = $2 ORDER BY %s",
		r.columnList(), r.tbl.Name, column, r.tbl.OrderBy)

	rows, err := r.db.Query(ctx, query, value, ownerID)
	if err != nil {
		return nil, apperr.Storage("list "+r.tbl.Resource, err)
	}
	defer rows.Close()

	entities := make([]T, 0)
	for rows.Next() {
		entity, err := r.tbl.Scan(rows)
		if err != nil {
			return nil, apperr.Storage("scan "+r.tbl.Resource, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("list "+r.tbl.Resource, err)
	}
	return entities, nil
}

// Update applies a partial update in a single scoped statement and returns
// the stored row. An update with no fields set is still a success: it reads
// back the current row instead of issuing a degenerate statement.
func (r *Repository[T]) Update(ctx context.Context, id, ownerID uuid.UUID, fields []Field) (T, error) {
	var zero T
	query, args, ok := UpdateQuery(r.tbl.Name, r.tbl.Columns, id, ownerID, fields, r.tbl.Touch)
	if !ok {
		return r.Find(ctx, id, ownerID)
	}

	entity, err := r.tbl.Scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperr.NotFound(r.tbl.Resource)
		}
		return zero, apperr.Storage("update "+r.tbl.Resource, err)
	}
	return entity, nil
}

// Delete removes one owned row. Zero rows affected reports not_found.
func (r *Repository[T]) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND owner_id = $2", r.tbl.Name)

	tag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return apperr.Storage("delete "+r.tbl.Resource, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(r.tbl.Resource)
	}
	return nil
}
