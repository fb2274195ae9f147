// Package heights supplies the height grids a round is built from.
package heights

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	// ErrMalformed is returned when height data cannot be parsed into a grid.
	ErrMalformed = errors.New("heights: malformed height data")
	// ErrStatus is returned when a remote source answers with a non-2xx status.
	ErrStatus = errors.New("heights: unexpected response status")
)

// Grid is a row-major height map: the height at column x, row y is
// Heights[y*Cols+x]. Zero is water.
type Grid struct {
	Rows, Cols int
	Heights    []int
}

// Source produces a fresh grid for every round.
type Source interface {
	Fetch(ctx context.Context) (Grid, error)
}

// Parse reads rows*cols whitespace separated integers from r. Line breaks
// carry no meaning. Negative values are passed through unchanged.
func Parse(r io.Reader, rows, cols int) (Grid, error) {
	want := rows * cols
	if rows <= 0 || cols <= 0 {
		return Grid{}, fmt.Errorf("%w: dimensions %dx%d", ErrMalformed, rows, cols)
	}
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	values := make([]int, 0, want)
	for sc.Scan() {
		tok := sc.Text()
		if len(values) == want {
			return Grid{}, fmt.Errorf("%w: more than %d values", ErrMalformed, want)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return Grid{}, fmt.Errorf("%w: token %d %q is not an integer", ErrMalformed, len(values), tok)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return Grid{}, fmt.Errorf("read heights: %w", err)
	}
	if len(values) != want {
		return Grid{}, fmt.Errorf("%w: got %d values, want %d (%dx%d)", ErrMalformed, len(values), want, rows, cols)
	}
	return Grid{Rows: rows, Cols: cols, Heights: values}, nil
}
