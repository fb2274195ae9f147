package heights

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the same local grid every round.
type FileSource struct {
	Path       string
	Rows, Cols int
}

// Fetch reads and parses the file.
func (s *FileSource) Fetch(_ context.Context) (Grid, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return Grid{}, fmt.Errorf("open heights file: %w", err)
	}
	defer f.Close()
	return Parse(f, s.Rows, s.Cols)
}
