// Package filestore is the file-system area holding serialized confusion
// matrix objects and their derived artifacts (HTML reports, PNG plots),
// keyed by matrix uid.
//
// Layout under the root, all auto-created:
//
//	cms/<uid>.obj      serialized matrix object
//	reports/<uid>.html rendered report cache
//	plots/<uid>.png    rendered plot cache
//
// A matrix index row in the database should exist if and only if its .obj
// file does; callers span the two with cleanup-on-failure.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/openscilab/pycm-api/pkg/confusion"
	xe "github.com/openscilab/pycm-api/pkg/errors"
)

// ErrMissing: no stored object for the uid.
var ErrMissing = errors.New("matrix object is missing")

type Store struct {
	objects string
	reports string
	plots   string
}

// New roots a Store at dir, creating the artifact directories.
func New(dir string) (*Store, error) {
	s := &Store{
		objects: filepath.Join(dir, "cms"),
		reports: filepath.Join(dir, "reports"),
		plots:   filepath.Join(dir, "plots"),
	}
	for _, d := range []string{s.objects, s.reports, s.plots} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, xe.Wrap(err)
		}
	}
	return s, nil
}

// uids come in from request parameters; keep them inside the store.
func validUid(uid string) bool {
	return uid != "" && uid == filepath.Base(uid) && !strings.HasPrefix(uid, ".")
}

// SaveObject serializes the matrix to cms/<uid>.obj.
//
// The write goes through a temp file and rename, so readers never observe a
// partial object.
func (s *Store) SaveObject(uid string, m *confusion.Matrix) error {
	if !validUid(uid) {
		return xe.Wrap(fmt.Errorf("%w: bad uid %q", ErrMissing, uid))
	}

	tmp, err := os.CreateTemp(s.objects, ".tmp-*")
	if err != nil {
		return xe.Wrap(err)
	}
	defer os.Remove(tmp.Name())

	if err := m.WriteObject(tmp); err != nil {
		tmp.Close()
		return xe.Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return xe.Wrap(err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.objects, uid+".obj")); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

// LoadObject rebuilds the matrix stored as cms/<uid>.obj.
//
// When no object file exists, it returns error wrapping ErrMissing.
func (s *Store) LoadObject(uid string) (*confusion.Matrix, error) {
	if !validUid(uid) {
		return nil, fmt.Errorf("%w: bad uid %q", ErrMissing, uid)
	}

	f, err := os.Open(filepath.Join(s.objects, uid+".obj"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissing, uid)
	} else if err != nil {
		return nil, xe.Wrap(err)
	}
	defer f.Close()

	m, err := confusion.ReadObject(f)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	return m, nil
}

// HasObject tells whether cms/<uid>.obj exists.
func (s *Store) HasObject(uid string) bool {
	if !validUid(uid) {
		return false
	}
	_, err := os.Stat(filepath.Join(s.objects, uid+".obj"))
	return err == nil
}

// Report returns the HTML report of the matrix, rendering and caching it
// under reports/<uid>.html on first request.
func (s *Store) Report(uid string, m *confusion.Matrix) ([]byte, error) {
	return s.cached(filepath.Join(s.reports, uid+".html"), uid, m.RenderHTML)
}

// Plot returns the PNG plot of the matrix, rendering and caching it under
// plots/<uid>.png on first request.
func (s *Store) Plot(uid string, m *confusion.Matrix) ([]byte, error) {
	return s.cached(filepath.Join(s.plots, uid+".png"), uid, m.RenderPNG)
}

func (s *Store) cached(path string, uid string, render func(io.Writer) error) ([]byte, error) {
	if !validUid(uid) {
		return nil, fmt.Errorf("%w: bad uid %q", ErrMissing, uid)
	}

	if content, err := os.ReadFile(path); err == nil {
		return content, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, xe.Wrap(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer os.Remove(tmp.Name())

	if err := render(tmp); err != nil {
		tmp.Close()
		return nil, xe.Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return nil, xe.Wrap(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, xe.Wrap(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	return content, nil
}

// Invalidate drops the cached report/plot of the uid, keeping the object.
//
// Missing caches are fine; rendering happens again on next request.
func (s *Store) Invalidate(uid string) {
	if !validUid(uid) {
		return
	}
	os.Remove(filepath.Join(s.reports, uid+".html"))
	os.Remove(filepath.Join(s.plots, uid+".png"))
}

// Purge removes the stored object and all derived artifacts of the uid.
//
// When no object file exists, it returns error wrapping ErrMissing; caches
// are removed best-effort either way.
func (s *Store) Purge(uid string) error {
	if !validUid(uid) {
		return fmt.Errorf("%w: bad uid %q", ErrMissing, uid)
	}

	s.Invalidate(uid)
	err := os.Remove(filepath.Join(s.objects, uid+".obj"))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissing, uid)
	} else if err != nil {
		return xe.Wrap(err)
	}
	return nil
}
