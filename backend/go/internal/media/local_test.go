package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "clip.mp3", strings.NewReader("audio bytes"), 11, "audio/mpeg"))

	r, err := s.Open(ctx, "clip.mp3")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "audio bytes", string(data))
}

func TestLocalStorageMissingFile(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "nope.mp3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageStripsPathSegments(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "../escape.mp3", strings.NewReader("x"), 1, "audio/mpeg"))

	// The file is stored under its base name inside the root.
	r, err := s.Open(ctx, "escape.mp3")
	require.NoError(t, err)
	r.Close()
}
