package bins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Reader loads the fit result of one energy bin.
type Reader interface {
	Read(ctx context.Context, id string) (Result, error)
}

// ReaderFunc adapts a function to [Reader].
type ReaderFunc func(ctx context.Context, id string) (Result, error)

// Read calls f.
func (f ReaderFunc) Read(ctx context.Context, id string) (Result, error) {
	return f(ctx, id)
}

// FileReader reads result files whose id is a path. YAML (.yaml, .yml) and
// TOML (.toml) files holding flat key/value pairs are supported.
type FileReader struct{}

// Read decodes the result file at path.
func (FileReader) Read(ctx context.Context, path string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // bin result paths come from the run configuration
	if err != nil {
		return Result{}, err
	}

	m := make(map[string]float64)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		_, err = toml.Decode(string(data), &m)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Result{}, fmt.Errorf("bins: decode %s: %w", path, err)
	}

	return FromMap(m)
}

// Paths returns the result file paths of an n-bin analysis:
//
//	<outDir>/Ebin<n>/<target>_<i>.<ext>
func Paths(outDir, target string, n int, ext string) []string {
	ext = strings.TrimPrefix(ext, ".")
	dir := filepath.Join(outDir, fmt.Sprintf("Ebin%d", n))
	out := make([]string, n)
	for i := range out {
		out[i] = filepath.Join(dir, fmt.Sprintf("%s_%d.%s", target, i, ext))
	}
	return out
}
