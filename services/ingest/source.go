package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/AbdulWasayUl/graphql-countries/internal/api"
)

// Source produces the raw JSON list of countries in a single read.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// HTTPSource downloads the list from the REST Countries API.
type HTTPSource struct {
	Client *api.Client
	URL    string
}

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	return s.Client.Do(ctx, s.URL, nil)
}

func (s HTTPSource) String() string { return s.URL }

// FileSource reads a previously saved export from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return data, nil
}

func (s FileSource) String() string { return "file://" + s.Path }
