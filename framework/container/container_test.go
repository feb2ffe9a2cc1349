package container_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fretelweb/go-validator/framework/container"
)

func value(v any) container.Factory {
	return func(*container.Container) (any, error) { return v, nil }
}

func TestContainer_BindIsTransient(t *testing.T) {
	c := container.New()
	calls := 0
	c.Bind("counter", func(*container.Container) (any, error) {
		calls++
		return calls, nil
	})

	first, err := c.Make("counter")
	require.NoError(t, err)
	second, err := c.Make("counter")
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.False(t, c.Resolved("counter"))
}

func TestContainer_SingletonIsCached(t *testing.T) {
	c := container.New()
	calls := 0
	c.Singleton("forms", func(*container.Container) (any, error) {
		calls++
		return &struct{ n int }{calls}, nil
	})

	first, err := c.Make("forms")
	require.NoError(t, err)
	second, err := c.Make("forms")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.True(t, c.Resolved("forms"))
}

func TestContainer_RebindDropsSingleton(t *testing.T) {
	c := container.New()
	c.Singleton("name", value("old"))
	_, err := c.Make("name")
	require.NoError(t, err)

	c.Singleton("name", value("new"))
	got, err := c.Make("name")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestContainer_InstanceAndAlias(t *testing.T) {
	c := container.New()
	c.Instance("config", "cfg")
	c.Alias("config", "configuration")

	got, err := c.Make("configuration")
	require.NoError(t, err)
	assert.Equal(t, "cfg", got)
	assert.True(t, c.Bound("configuration"))

	self, err := c.Make("container")
	require.NoError(t, err)
	assert.Same(t, c, self)
}

func TestContainer_AliasToItselfPanics(t *testing.T) {
	assert.Panics(t, func() { container.New().Alias("db", "db") })
}

func TestContainer_NotBound(t *testing.T) {
	_, err := container.New().Make("missing")
	assert.ErrorIs(t, err, container.ErrNotBound)
}

func TestContainer_FactoryError(t *testing.T) {
	c := container.New()
	boom := errors.New("connection refused")
	c.Singleton("db", func(*container.Container) (any, error) { return nil, boom })

	_, err := c.Make("db")
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Resolved("db"))
}

func TestContainer_CircularDependency(t *testing.T) {
	c := container.New()
	c.Singleton("a", func(c *container.Container) (any, error) { return c.Make("b") })
	c.Singleton("b", func(c *container.Container) (any, error) { return c.Make("a") })

	_, err := c.Make("a")
	assert.ErrorIs(t, err, container.ErrCircularDependency)
}

func TestResolve(t *testing.T) {
	c := container.New()
	c.Instance("port", 8000)

	port, err := container.Resolve[int](c, "port")
	require.NoError(t, err)
	assert.Equal(t, 8000, port)

	_, err = container.Resolve[string](c, "port")
	assert.ErrorIs(t, err, container.ErrTypeMismatch)

	assert.Panics(t, func() { container.MustResolve[string](c, "port") })
	assert.Equal(t, 8000, container.MustResolve[int](c, "port"))
}

func TestContainer_TerminateRunsInReverse(t *testing.T) {
	c := container.New()
	var order []string
	boom := errors.New("close failed")

	c.Terminating(func(context.Context) error { order = append(order, "db"); return nil })
	c.Terminating(func(context.Context) error { order = append(order, "redis"); return boom })

	err := c.Terminate(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"redis", "db"}, order)

	// Callbacks run once.
	require.NoError(t, c.Terminate(context.Background()))
	assert.Len(t, order, 2)
}
