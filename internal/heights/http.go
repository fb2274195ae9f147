package heights

import (
	"context"
	"fmt"
	"net/http"
)

// DefaultURL serves a 30x30 grid of whitespace separated heights.
const DefaultURL = "https://jobfair.nordeus.com/jf24-fullstack-challenge/test"

// HTTPSource fetches a grid with a GET request per round.
type HTTPSource struct {
	URL        string
	Rows, Cols int
	Client     *http.Client // nil means http.DefaultClient
}

// Fetch downloads and parses one grid.
func (s *HTTPSource) Fetch(ctx context.Context) (Grid, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return Grid{}, fmt.Errorf("build request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Grid{}, fmt.Errorf("fetch heights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Grid{}, fmt.Errorf("%w: %s from %s", ErrStatus, resp.Status, s.URL)
	}
	return Parse(resp.Body, s.Rows, s.Cols)
}
