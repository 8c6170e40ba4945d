// Package fs provides file-based storage for generated chart images.
package fs

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/msousa/jango"
)

// Ensure ChartStore implements jango.ChartStore at compile time.
var _ jango.ChartStore = (*ChartStore)(nil)

// ChartStore saves chart PNGs under a directory served as static assets.
// Writes are atomic: the image lands in a temp file first and is renamed
// into place, so a concurrent reader never sees a partial file.
type ChartStore struct {
	baseDir   string
	urlPrefix string
}

// NewChartStore creates a ChartStore writing to baseDir. Saved images are
// reported under urlPrefix, e.g. "/charts".
func NewChartStore(baseDir, urlPrefix string) *ChartStore {
	return &ChartStore{baseDir: baseDir, urlPrefix: urlPrefix}
}

// Save writes the image under a unique name and returns its public URL path.
func (s *ChartStore) Save(ctx context.Context, png []byte) (string, error) {
	if len(png) == 0 {
		return "", jango.Errorf(jango.EINVALID, "empty chart image")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	// Content hash plus a random suffix keeps names unique across requests.
	name := fmt.Sprintf("%x-%s.png", xxhash.Sum64(png), uuid.New().String()[:8])
	finalPath := filepath.Join(s.baseDir, name)

	tmp, err := os.CreateTemp(s.baseDir, ".chart-*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}

	if err := os.Rename(tmpName, finalPath); err != nil {
		os.Remove(tmpName)
		return "", err
	}

	return path.Join(s.urlPrefix, name), nil
}

// Dir returns the directory images are written to, for static serving.
func (s *ChartStore) Dir() string {
	return s.baseDir
}
