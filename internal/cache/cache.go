// Package cache persists the local collection snapshot as a YAML file. It is
// the durable side of the sync engine: every mutation lands here first, and
// startup reads from here before consulting the remote store.
package cache

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/mintmark/mintmark/pkg/collection"
	"github.com/mintmark/mintmark/pkg/errors"
	"github.com/mintmark/mintmark/pkg/logging"
)

// DefaultFilename is the snapshot file name inside the cache directory.
const DefaultFilename = "collection.yaml"

// snapshot is the on-disk document shape.
type snapshot struct {
	Items []*collection.Item `yaml:"items"`
}

// File is a file-backed collection cache.
type File struct {
	path string
	log  *zerolog.Logger
}

// Option configures a File cache.
type Option func(*File)

// WithLogger sets the cache logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(f *File) {
		f.log = logger
	}
}

// New creates a file cache under the given directory, creating the directory
// if needed.
func New(dir string, opts ...Option) (*File, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.NewValidationError("dir", dir, "cache directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	f := &File{
		path: filepath.Join(dir, DefaultFilename),
		log:  logging.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Path returns the snapshot file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the cached snapshot. A missing file is an empty collection,
// not an error.
func (f *File) Load() ([]*collection.Item, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", f.path, err)
	}

	var doc snapshot
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", f.path, err)
	}

	f.log.Debug().
		Int("count", len(doc.Items)).
		Str("path", f.path).
		Msg("Loaded collection cache")
	return doc.Items, nil
}

// Save writes the snapshot atomically: a temp file in the same directory is
// renamed over the previous one, so readers never see a partial write.
func (f *File) Save(items []*collection.Item) error {
	data, err := yaml.Marshal(snapshot{Items: items})
	if err != nil {
		return errors.WrapParse("yaml", f.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".collection-*.yaml")
	if err != nil {
		return errors.WrapIO("create", f.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("rename", f.path, err)
	}

	f.log.Debug().
		Int("count", len(items)).
		Str("path", f.path).
		Msg("Saved collection cache")
	return nil
}
