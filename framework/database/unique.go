package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Querier is the subset of *pgxpool.Pool the lookup needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UniqueLookup answers unique:table,column rules with a NOT EXISTS query.
// It satisfies validation.UniqueChecker.
type UniqueLookup struct {
	db     Querier
	logger *zerolog.Logger
}

func NewUniqueLookup(db Querier, logger *zerolog.Logger) *UniqueLookup {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &UniqueLookup{db: db, logger: logger}
}

// Unique returns true when no row of table has value in column.
func (l *UniqueLookup) Unique(ctx context.Context, table, column, value string) (bool, error) {
	var unique bool
	if err := l.db.QueryRow(ctx, uniqueQuery(table, column), value).Scan(&unique); err != nil {
		return false, fmt.Errorf("lookup %s.%s: %w", table, column, err)
	}
	l.logger.Debug().Str("table", table).Str("column", column).Bool("unique", unique).Msg("unique lookup")
	return unique, nil
}

// uniqueQuery quotes table and column as identifiers; "schema.table" is
// split into its parts.
func uniqueQuery(table, column string) string {
	return fmt.Sprintf(
		"SELECT NOT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		identifier(table),
		pgx.Identifier{column}.Sanitize(),
	)
}

func identifier(name string) string {
	if schema, table, ok := strings.Cut(name, "."); ok {
		return pgx.Identifier{schema, table}.Sanitize()
	}
	return pgx.Identifier{name}.Sanitize()
}
