package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, args := buildLikeConditionByDialect("sqlite", []string{"name", " ", "text"}, " hi ")
	if condition != "name LIKE ? OR text LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
	if len(args) != 2 {
		t.Fatalf("args len want 2 got %d", len(args))
	}
	if args[0] != "%hi%" {
		t.Fatalf("arg want %%hi%% got %v", args[0])
	}
}

func TestBuildLikeConditionPostgresUsesILike(t *testing.T) {
	condition, _ := buildLikeConditionByDialect("postgres", []string{"name"}, "x")
	if !strings.Contains(condition, "name ILIKE ?") {
		t.Fatalf("postgres should use ILIKE, got %s", condition)
	}
}

func TestDBDialectNameDefaultsToSQLite(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("want sqlite got %s", got)
	}
}
