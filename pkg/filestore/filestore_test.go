package filestore_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openscilab/pycm-api/pkg/confusion"
	"github.com/openscilab/pycm-api/pkg/filestore"
	"github.com/openscilab/pycm-api/pkg/utils/try"
)

func newMatrix(t *testing.T) *confusion.Matrix {
	t.Helper()
	return try.To(confusion.New(
		[]string{"0", "1", "0", "1"},
		[]string{"0", "1", "1", "1"},
	)).OrFatal(t)
}

func TestStore(t *testing.T) {
	t.Run("New creates the artifact directories", func(t *testing.T) {
		root := t.TempDir()
		_ = try.To(filestore.New(root)).OrFatal(t)

		for _, d := range []string{"cms", "reports", "plots"} {
			if _, err := os.Stat(filepath.Join(root, d)); err != nil {
				t.Errorf("directory %s is not created: %v", d, err)
			}
		}
	})

	t.Run("a saved object loads back with the same table", func(t *testing.T) {
		s := try.To(filestore.New(t.TempDir())).OrFatal(t)
		m := newMatrix(t)

		if err := s.SaveObject("cm-1", m); err != nil {
			t.Fatal(err)
		}
		if !s.HasObject("cm-1") {
			t.Error("object file is not reported as existing")
		}

		loaded := try.To(s.LoadObject("cm-1")).OrFatal(t)
		if got, want := loaded.Accuracy(), m.Accuracy(); got != want {
			t.Errorf("accuracy: got %f, want %f", got, want)
		}
	})

	t.Run("loading an unknown uid fails with ErrMissing", func(t *testing.T) {
		s := try.To(filestore.New(t.TempDir())).OrFatal(t)

		if _, err := s.LoadObject("no-such-uid"); !errors.Is(err, filestore.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("uids with path separators never resolve", func(t *testing.T) {
		s := try.To(filestore.New(t.TempDir())).OrFatal(t)

		if _, err := s.LoadObject("../escape"); !errors.Is(err, filestore.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
		if err := s.SaveObject("a/b", newMatrix(t)); err == nil {
			t.Error("no error for a uid holding a path separator")
		}
	})

	t.Run("report is cached and reused", func(t *testing.T) {
		s := try.To(filestore.New(t.TempDir())).OrFatal(t)
		m := newMatrix(t)
		try.To(0, s.SaveObject("cm-1", m)).OrFatal(t)

		first := try.To(s.Report("cm-1", m)).OrFatal(t)
		if !bytes.Contains(first, []byte("Accuracy")) {
			t.Error("report does not mention Accuracy")
		}

		second := try.To(s.Report("cm-1", m)).OrFatal(t)
		if !bytes.Equal(first, second) {
			t.Error("cached report differs from the first rendering")
		}
	})

	t.Run("plot renders a PNG", func(t *testing.T) {
		s := try.To(filestore.New(t.TempDir())).OrFatal(t)
		m := newMatrix(t)

		img := try.To(s.Plot("cm-1", m)).OrFatal(t)
		if !bytes.HasPrefix(img, []byte("\x89PNG\r\n\x1a\n")) {
			t.Error("plot is not a PNG")
		}
	})

	t.Run("Invalidate drops caches but keeps the object", func(t *testing.T) {
		root := t.TempDir()
		s := try.To(filestore.New(root)).OrFatal(t)
		m := newMatrix(t)
		try.To(0, s.SaveObject("cm-1", m)).OrFatal(t)
		try.To(s.Report("cm-1", m)).OrFatal(t)

		s.Invalidate("cm-1")

		if _, err := os.Stat(filepath.Join(root, "reports", "cm-1.html")); !errors.Is(err, os.ErrNotExist) {
			t.Error("report cache survives Invalidate")
		}
		if !s.HasObject("cm-1") {
			t.Error("object is removed by Invalidate")
		}
	})

	t.Run("Purge removes object and caches; a second Purge fails ErrMissing", func(t *testing.T) {
		root := t.TempDir()
		s := try.To(filestore.New(root)).OrFatal(t)
		m := newMatrix(t)
		try.To(0, s.SaveObject("cm-1", m)).OrFatal(t)
		try.To(s.Plot("cm-1", m)).OrFatal(t)

		if err := s.Purge("cm-1"); err != nil {
			t.Fatal(err)
		}
		if s.HasObject("cm-1") {
			t.Error("object survives Purge")
		}
		if _, err := os.Stat(filepath.Join(root, "plots", "cm-1.png")); !errors.Is(err, os.ErrNotExist) {
			t.Error("plot cache survives Purge")
		}

		if err := s.Purge("cm-1"); !errors.Is(err, filestore.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
