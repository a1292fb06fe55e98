// Package media provides image processing utilities
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ImageProcessor handles uploads destined for Image elements. Bitmaps are
// normalized to WebP and capped at maxWidth; SVGs pass through untouched.
type ImageProcessor struct {
	basePath string // media root on disk, served under /media
	maxWidth int
}

// NewImageProcessor creates a new ImageProcessor instance.
func NewImageProcessor(basePath string, maxWidth int) *ImageProcessor {
	return &ImageProcessor{
		basePath: basePath,
		maxWidth: maxWidth,
	}
}

var dataURIPattern = regexp.MustCompile(`^data:image/[a-zA-Z+.-]+;base64,`)

// ProcessBase64Image decodes a base64 data-URI upload, normalizes it, writes
// it under the media root, and returns the relative URL an Image element
// stores in its src field.
func (p *ImageProcessor) ProcessBase64Image(data, name string) (string, error) {
	if data == "" {
		return "", fmt.Errorf("empty base64 data")
	}

	ext := extractExtension(data)
	if ext == "" {
		return "", fmt.Errorf("unsupported image format")
	}

	targetDir := filepath.Join(p.basePath, "images")
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if ext == "svg" {
		return p.writeSVG(data, name, targetDir)
	}
	return p.writeBitmap(data, name, targetDir)
}

// writeBitmap decodes any supported bitmap format, resizes oversized images
// down to maxWidth, and re-encodes as WebP.
func (p *ImageProcessor) writeBitmap(data, name, targetDir string) (string, error) {
	raw, err := decodeDataURI(data)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if p.maxWidth > 0 && img.Bounds().Dx() > p.maxWidth {
		img = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	filename := fmt.Sprintf("%s.webp", name)
	fullPath := filepath.Join(targetDir, filename)
	if err := webp.Save(fullPath, img, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to save WebP image: %w", err)
	}

	return "/media/images/" + filename, nil
}

// writeSVG stores vector uploads verbatim.
func (p *ImageProcessor) writeSVG(data, name, targetDir string) (string, error) {
	raw, err := decodeDataURI(data)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s.svg", name)
	fullPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(fullPath, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to write SVG file: %w", err)
	}

	return "/media/images/" + filename, nil
}

// DeleteImage removes a previously uploaded image by its /media URL. A
// missing file is not an error. Paths that resolve outside the media root
// are rejected.
func (p *ImageProcessor) DeleteImage(mediaURL string) error {
	if mediaURL == "" {
		return fmt.Errorf("empty image path")
	}

	rel := filepath.Clean(strings.TrimPrefix(mediaURL, "/media/"))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("image path %q escapes the media root", mediaURL)
	}

	fullPath := filepath.Join(p.basePath, rel)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}

func decodeDataURI(data string) ([]byte, error) {
	if !dataURIPattern.MatchString(data) {
		return nil, fmt.Errorf("invalid base64 image format")
	}
	b64Data := dataURIPattern.ReplaceAllString(data, "")
	decoded, err := base64.StdEncoding.DecodeString(b64Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return decoded, nil
}

// extractExtension auto-detects file extension from MIME type
func extractExtension(data string) string {
	switch {
	case strings.Contains(data, "data:image/svg+xml"):
		return "svg"
	case strings.Contains(data, "data:image/png"):
		return "png"
	case strings.Contains(data, "data:image/jpeg"), strings.Contains(data, "data:image/jpg"):
		return "jpg"
	case strings.Contains(data, "data:image/webp"):
		return "webp"
	case strings.Contains(data, "data:image/gif"):
		return "gif"
	}
	return ""
}
