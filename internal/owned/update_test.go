package owned

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func ptr[T any](v T) *T { return &v }

func countPlaceholders(query string) int {
	max := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '$' {
			continue
		}
		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		if j > i+1 {
			if n, err := strconv.Atoi(query[i+1 : j]); err == nil && n > max {
				max = n
			}
		}
	}
	return max
}

func TestUpdateQueryAllFields(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	query, args, ok := UpdateQuery("things", []string{"id", "owner_id", "a", "b"}, id, owner, []Field{
		String("a", ptr("x")),
		Value("b", ptr(42)),
	}, "updated_at")
	if !ok {
		t.Fatalf("expected a statement")
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args got %d", len(args))
	}
	if got := countPlaceholders(query); got != len(args) {
		t.Fatalf("placeholder count %d does not match args %d in %q", got, len(args), query)
	}
	if !strings.Contains(query, "a = $3, b = $4, updated_at = NOW()") {
		t.Fatalf("unexpected clause order: %q", query)
	}
	if !strings.Contains(query, "WHERE id = $1 AND owner_id = $2") {
		t.Fatalf("missing owner scope: %q", query)
	}
}

func TestUpdateQuerySkipsUnsetFields(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	query, args, ok := UpdateQuery("things", []string{"id"}, id, owner, []Field{
		String("a", nil),
		String("b", ptr("y")),
		String("c", nil),
	}, "updated_at")
	if !ok {
		t.Fatalf("expected a statement")
	}
	if len(args) != 3 {
		t.Fatalf("expected id, owner and one value, got %d args", len(args))
	}
	if strings.Contains(query, "a =") || strings.Contains(query, "c =") {
		t.Fatalf("unset fields leaked into query: %q", query)
	}
	if !strings.Contains(query, "b = $3") {
		t.Fatalf("set field missing or misnumbered: %q", query)
	}
}

func TestUpdateQueryEmpty(t *testing.T) {
	_, _, ok := UpdateQuery("things", []string{"id"}, uuid.New(), uuid.New(), []Field{
		String("a", nil),
		String("b", nil),
	}, "updated_at")
	if ok {
		t.Fatalf("expected no statement for empty update")
	}
}

func TestUpdateQueryWithoutTouchColumn(t *testing.T) {
	query, _, ok := UpdateQuery("things", []string{"id"}, uuid.New(), uuid.New(), []Field{
		String("a", ptr("x")),
	}, "")
	if !ok {
		t.Fatalf("expected a statement")
	}
	if strings.Contains(query, "NOW()") {
		t.Fatalf("unexpected touch clause: %q", query)
	}
}

func TestUpdateQueryOrderIsDeterministic(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	fields := []Field{
		String("title", ptr("t")),
		String("status", ptr("s")),
		Value("due_date", ptr(1)),
	}
	first, _, _ := UpdateQuery("things", []string{"id"}, id, owner, fields, "updated_at")
	second, _, _ := UpdateQuery("things", []string{"id"}, id, owner, fields, "updated_at")
	if first != second {
		t.Fatalf("expected identical statements, got %q and %q", first, second)
	}
}
