// Package catalog provides domain.VenueCatalog implementations: a static
// table (embedded seed or JSON file) and an external HTTP catalog.
package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gatherplan/internal/domain"
)

// DefaultArea is the catalog key of the fallback pool.
const DefaultArea = "default"

//go:embed seed/venues.json
var seedFS embed.FS

// Document is the JSON shape of a catalog: area key to venue pool.
// The DefaultArea key holds the fallback pool.
type Document map[string][]*domain.Venue

type staticCatalog struct {
	areas Document
}

// NewStatic returns a read-only catalog over doc. Venues are copied.
func NewStatic(doc Document) domain.VenueCatalog {
	areas := make(Document, len(doc))
	for area, pool := range doc {
		cp := make([]*domain.Venue, 0, len(pool))
		for _, v := range pool {
			cp = append(cp, v.Clone())
		}
		areas[area] = cp
	}
	return &staticCatalog{areas: areas}
}

// NewSeed returns the catalog built from the embedded seed table.
func NewSeed() (domain.VenueCatalog, error) {
	f, err := seedFS.Open("seed/venues.json")
	if err != nil {
		return nil, fmt.Errorf("open seed catalog: %w", err)
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return nil, err
	}
	return NewStatic(doc), nil
}

// LoadFile returns a static catalog read from a JSON file.
func LoadFile(path string) (domain.VenueCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return nil, err
	}
	return NewStatic(doc), nil
}

// Decode reads a catalog Document.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return doc, nil
}

func (c *staticCatalog) ListByArea(_ context.Context, area string) ([]*domain.Venue, error) {
	pool, ok := c.areas[area]
	if !ok || area == DefaultArea {
		return nil, domain.ErrNotFound
	}
	return pool, nil
}

func (c *staticCatalog) ListDefault(_ context.Context) ([]*domain.Venue, error) {
	return c.areas[DefaultArea], nil
}

// Validate fails with domain.ErrEmptyCatalog when the default pool of c is empty.
// Call it once at startup.
func Validate(ctx context.Context, c domain.VenueCatalog) error {
	pool, err := c.ListDefault(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCatalog) {
			return err
		}
		return fmt.Errorf("list default venues: %w", err)
	}
	if len(pool) == 0 {
		return domain.ErrEmptyCatalog
	}
	return nil
}
