package fileaccess

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	root := t.TempDir()
	dir := New(root)
	require.Equal(t, root, dir.Root())

	t.Run("list skips directories", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "file"), []byte("x"), 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(root, "nested"), 0o755))

		names, err := dir.List()
		require.NoError(t, err)
		require.Contains(t, names, "file")
		require.NotContains(t, names, "nested")
	})

	t.Run("create and open", func(t *testing.T) {
		name, content := uniuri.New(), uniuri.NewLen(100)
		w, err := dir.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		r, err := dir.Open(name)
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.Equal(t, content, string(data))
	})

	t.Run("create truncates", func(t *testing.T) {
		name := uniuri.New()
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("a long old content"), 0o644))

		w, err := dir.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, "new")
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := os.ReadFile(filepath.Join(root, name))
		require.NoError(t, err)
		require.Equal(t, "new", string(data))
	})

	t.Run("bad names", func(t *testing.T) {
		for _, name := range []string{"", ".", "..", "../x", "a/b"} {
			_, err := dir.Open(name)
			require.ErrorIs(t, err, ErrBadName, name)
			_, err = dir.Create(name)
			require.ErrorIs(t, err, ErrBadName, name)
		}
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := New(filepath.Join(root, "does-not-exist")).List()
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
