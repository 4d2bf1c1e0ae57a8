package owned

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Field is one optionally-present column in a partial update. Repositories
// declare their updatable fields as a statically known slice; iteration
// order over that slice fixes the order of SET clauses.
type Field struct {
	Column string
	Value  any
	Set    bool
}

// String wraps an optional string DTO field.
func String(column string, v *string) Field {
	f := Field{Column: column, Set: v != nil}
	if v != nil {
		f.Value = *v
	}
	return f
}

// Value wraps any optional pointer-typed DTO field.
func Value[V any](column string, v *V) Field {
	f := Field{Column: column, Set: v != nil}
	if v != nil {
		f.Value = *v
	}
	return f
}

// UpdateQuery builds a single conditional-update statement of the shape
//
//	UPDATE t SET a = $3, b = $4, updated_at = NOW()
//	WHERE id = $1 AND owner_id = $2 RETURNING <columns>
//
// appending one positional clause per set field, in slice order. touch
// names a timestamp column bumped alongside any real change ("" for tables
// without one). Bind parameters are never interpolated; the returned args
// always match the statement's placeholder count. ok is false when no field
// is set, in which case callers read back the current row instead.
func UpdateQuery(table string, returning []string, id, ownerID uuid.UUID, fields []Field, touch string) (query string, args []any, ok bool) {
	clauses := make([]string, 0, len(fields)+1)
	args = []any{id, ownerID}

	for _, f := range fields {
		if !f.Set {
			continue
		}
		args = append(args, f.Value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	if len(clauses) == 0 {
		return "", nil, false
	}

	if touch != "" {
		clauses = append(clauses, touch+" = NOW()")
	}
	query = fmt.Sprintf("UPDATE %s SET %s WHERE id = $1 AND owner_id = $2 RETURNING %s",
		table, strings.Join(clauses, ", "), strings.Join(returning, ", "))
	return query, args, true
}
