package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatherplan/internal/domain"
)

func TestNewSeed(t *testing.T) {
	ctx := context.Background()
	c, err := NewSeed()
	require.NoError(t, err)
	require.NoError(t, Validate(ctx, c))

	defaults, err := c.ListDefault(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(defaults), 5)

	shinjuku, err := c.ListByArea(ctx, "新宿")
	require.NoError(t, err)
	require.NotEmpty(t, shinjuku)
	assert.Equal(t, "個室居酒屋 和み", shinjuku[0].Name)

	_, err = c.ListByArea(ctx, "新宿駅")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = c.ListByArea(ctx, DefaultArea)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "default pool is not an area")
}

func TestNewStatic_CopiesInput(t *testing.T) {
	doc := Document{DefaultArea: {{Name: "a", Features: []string{"ビール"}}}}
	c := NewStatic(doc)
	doc[DefaultArea][0].Name = "changed"

	got, err := c.ListDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].Name)
}

func TestValidate_EmptyDefault(t *testing.T) {
	c := NewStatic(Document{"新宿": {{Name: "x"}}})
	err := Validate(context.Background(), c)
	assert.True(t, errors.Is(err, domain.ErrEmptyCatalog))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venues.json")
	body := `{"default":[{"name":"d","address":"addr","genre":"g","features":["和食"],"price_range":"1000","distance_from_station":"徒歩1分"}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	got, err := c.ListDefault(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d", got[0].Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestHTTPCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"default":[{"name":"d","address":"a"}],"新宿":[{"name":"s","address":"b"}]}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewHTTP(srv.Client(), srv.URL)
	require.NoError(t, Validate(ctx, c))

	pool, err := c.ListByArea(ctx, "新宿")
	require.NoError(t, err)
	assert.Equal(t, "s", pool[0].Name)

	_, err = c.ListByArea(ctx, "渋谷")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestHTTPCatalog_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTP(srv.Client(), srv.URL)
	_, err := c.ListDefault(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Error(t, Validate(context.Background(), c))
}
