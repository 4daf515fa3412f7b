package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markconv/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.tex")
		require.NoError(t, os.WriteFile(path, []byte(`\textbf{hi}`), 0644))

		got, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, `\textbf{hi}`, string(got))
	})

	t.Run("classifies missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.tex"))
		require.Error(t, err)
		require.ErrorIs(t, err, fsutil.ErrNotFound)
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "missing.tex")
	})

	t.Run("classifies directory", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.ReadFile(ctx, "anypath")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		limit   int64
		wantErr error
	}{
		{name: "unlimited", input: "size(200);", limit: 0},
		{name: "exactly at limit", input: "abcd", limit: 4},
		{name: "over limit", input: "abcde", limit: 4, wantErr: fsutil.ErrTooLarge},
		{name: "empty", input: "", limit: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fsutil.ReadAll(context.Background(), strings.NewReader(tt.input), tt.limit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(got))
		})
	}
}

func TestExistingMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.asy")
	require.NoError(t, os.WriteFile(path, nil, 0600))
	require.NoError(t, os.Chmod(path, 0600))

	assert.Equal(t, os.FileMode(0600), fsutil.ExistingMode(path))
	assert.Equal(t, os.FileMode(0), fsutil.ExistingMode(filepath.Join(dir, "absent")))
}
