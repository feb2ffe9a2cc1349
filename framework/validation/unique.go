package validation

import "context"

//go:generate mockgen -source=unique.go -destination=mocks/mock_unique.go -package=mocks

// UniqueChecker looks a value up in a record store. Unique returns true when no
// record in table has value in column.
type UniqueChecker interface {
	Unique(ctx context.Context, table, column, value string) (bool, error)
}

// UniqueFunc adapts a plain function to UniqueChecker.
type UniqueFunc func(ctx context.Context, table, column, value string) (bool, error)

func (f UniqueFunc) Unique(ctx context.Context, table, column, value string) (bool, error) {
	return f(ctx, table, column, value)
}
