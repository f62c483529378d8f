package catalog

import (
	"context"
	"fmt"
	"net/http"

	"gatherplan/internal/domain"
)

type httpCatalog struct {
	client *http.Client
	url    string
}

// NewHTTP returns a catalog that fetches a Document from url on every call.
func NewHTTP(client *http.Client, url string) domain.VenueCatalog {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpCatalog{client: client, url: url}
}

func (c *httpCatalog) fetch(ctx context.Context) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch venue catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("venue catalog returned status: %d", resp.StatusCode)
	}
	return Decode(resp.Body)
}

func (c *httpCatalog) ListByArea(ctx context.Context, area string) ([]*domain.Venue, error) {
	doc, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	pool, ok := doc[area]
	if !ok || area == DefaultArea {
		return nil, domain.ErrNotFound
	}
	return pool, nil
}

func (c *httpCatalog) ListDefault(ctx context.Context) ([]*domain.Venue, error) {
	doc, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return doc[DefaultArea], nil
}
