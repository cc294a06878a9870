package engine

import (
	"testing"

	"github.com/xwb1989/sqlparser"

	"github.com/leengari/mini-optimizer/internal/stats"
)

// whereOf parses a SELECT and returns its WHERE clause
func whereOf(t *testing.T, sql string) *sqlparser.Where {
	t.Helper()
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return stmt.(*sqlparser.Select).Where
}

func TestBuildPredicate_Comparisons(t *testing.T) {
	cases := []struct {
		sql   string
		op    stats.Op
		value interface{}
	}{
		{"select * from t where id = 5", stats.OpEq, int64(5)},
		{"select * from t where id < 5", stats.OpLt, int64(5)},
		{"select * from t where id <= 5", stats.OpLe, int64(5)},
		{"select * from t where id > 5", stats.OpGt, int64(5)},
		{"select * from t where id >= 5", stats.OpGe, int64(5)},
		{"select * from t where price = 1.5", stats.OpEq, 1.5},
		{"select * from t where name = 'bob'", stats.OpEq, "bob"},
	}

	for _, tc := range cases {
		pred, err := buildPredicate(whereOf(t, tc.sql))
		if err != nil {
			t.Errorf("%s: %v", tc.sql, err)
			continue
		}
		if pred.Op != tc.op {
			t.Errorf("%s: expected op %s, got %s", tc.sql, tc.op, pred.Op)
		}
		if pred.Value != tc.value {
			t.Errorf("%s: expected value %v (%T), got %v (%T)", tc.sql, tc.value, tc.value, pred.Value, pred.Value)
		}
	}
}

func TestBuildPredicate_Between(t *testing.T) {
	pred, err := buildPredicate(whereOf(t, "select * from t where id between 10 and 20"))
	if err != nil {
		t.Fatalf("buildPredicate failed: %v", err)
	}

	if pred.Op != stats.OpBetween {
		t.Errorf("expected between, got %s", pred.Op)
	}
	if pred.Value != int64(10) || pred.Upper != int64(20) {
		t.Errorf("expected bounds 10 and 20, got %v and %v", pred.Value, pred.Upper)
	}
}

func TestBuildPredicate_LikePrefix(t *testing.T) {
	pred, err := buildPredicate(whereOf(t, "select * from t where name like 'or%'"))
	if err != nil {
		t.Fatalf("buildPredicate failed: %v", err)
	}

	if pred.Op != stats.OpPrefix {
		t.Errorf("expected prefix, got %s", pred.Op)
	}
	if pred.Value != "or" {
		t.Errorf("expected prefix 'or', got %v", pred.Value)
	}
}

func TestBuildPredicate_NoWhere(t *testing.T) {
	pred, err := buildPredicate(whereOf(t, "select * from t"))
	if err != nil {
		t.Fatalf("buildPredicate failed: %v", err)
	}
	if pred != nil {
		t.Errorf("expected nil predicate, got %v", pred)
	}
}

func TestBuildPredicate_Unsupported(t *testing.T) {
	cases := []string{
		"select * from t where id = 1 and name = 'x'",
		"select * from t where name like '%x%'",
		"select * from t where name like 'a_b%'",
		"select * from t where id = name",
		"select * from t where 5 = id",
	}

	for _, sql := range cases {
		if _, err := buildPredicate(whereOf(t, sql)); err == nil {
			t.Errorf("expected error for %q", sql)
		}
	}
}
