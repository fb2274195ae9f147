package heights

import (
	"flag"
	"fmt"
	"net/http"
	"time"
)

// Source kinds accepted by FromOptions.
const (
	KindHTTP   = "http"
	KindFile   = "file"
	KindRandom = "random"
)

// Options selects and configures a Source. It mirrors the command-line flags
// shared by the local game and the SSH server.
type Options struct {
	Kind       string
	URL        string
	Path       string
	Rows, Cols int
	Seed       int64 // 0 picks a time based seed
	Timeout    time.Duration
}

// DefaultOptions matches the remote 30x30 challenge grid.
func DefaultOptions() Options {
	return Options{
		Kind:    KindHTTP,
		URL:     DefaultURL,
		Rows:    30,
		Cols:    30,
		Timeout: 10 * time.Second,
	}
}

// RegisterFlags binds the source settings to fs, using the current values of o
// as defaults.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Kind, "source", o.Kind, "height source: http, file or random")
	fs.StringVar(&o.URL, "url", o.URL, "endpoint serving the height grid (http source)")
	fs.StringVar(&o.Path, "file", o.Path, "grid file path (file source)")
	fs.IntVar(&o.Rows, "rows", o.Rows, "grid rows")
	fs.IntVar(&o.Cols, "cols", o.Cols, "grid columns")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "random source seed, 0 for time based")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "http request timeout")
}

// FromOptions builds the Source described by o.
func FromOptions(o Options) (Source, error) {
	if o.Rows <= 0 || o.Cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformed, o.Rows, o.Cols)
	}
	switch o.Kind {
	case KindHTTP:
		if o.URL == "" {
			return nil, fmt.Errorf("http source: empty URL")
		}
		return &HTTPSource{
			URL:    o.URL,
			Rows:   o.Rows,
			Cols:   o.Cols,
			Client: &http.Client{Timeout: o.Timeout},
		}, nil
	case KindFile:
		if o.Path == "" {
			return nil, fmt.Errorf("file source: empty path")
		}
		return &FileSource{Path: o.Path, Rows: o.Rows, Cols: o.Cols}, nil
	case KindRandom:
		seed := o.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewRandomSource(o.Rows, o.Cols, seed), nil
	}
	return nil, fmt.Errorf("unknown height source %q (want %s, %s or %s)", o.Kind, KindHTTP, KindFile, KindRandom)
}
