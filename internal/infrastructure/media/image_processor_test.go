package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteImage(t *testing.T) {
	root := t.TempDir()
	processor := NewImageProcessor(filepath.Join(root, "media"), 1600)

	imagesDir := filepath.Join(root, "media", "images")
	require.NoError(t, os.MkdirAll(imagesDir, 0755))

	t.Run("removes an uploaded file", func(t *testing.T) {
		target := filepath.Join(imagesDir, "sofa.webp")
		require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

		require.NoError(t, processor.DeleteImage("/media/images/sofa.webp"))
		_, err := os.Stat(target)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, processor.DeleteImage("/media/images/never-uploaded.webp"))
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		assert.Error(t, processor.DeleteImage(""))
	})

	t.Run("traversal outside the media root is rejected", func(t *testing.T) {
		outside := filepath.Join(root, "secret.txt")
		require.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))

		err := processor.DeleteImage("/media/../secret.txt")
		assert.Error(t, err)

		err = processor.DeleteImage("/media/images/../../secret.txt")
		assert.Error(t, err)

		_, statErr := os.Stat(outside)
		assert.NoError(t, statErr, "file outside the media root survives")
	})

	t.Run("absolute path is rejected", func(t *testing.T) {
		assert.Error(t, processor.DeleteImage("/etc/hostname"))
	})
}
