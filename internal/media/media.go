// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media stores uploaded catalog images under unique names and
// generates list-view thumbnails.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/mozillazg/go-unidecode"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Thumbnail bounds for catalog list views.
const (
	ThumbWidth  = 400
	ThumbHeight = 300
	jpegQuality = 90
)

// MaxUploadSize bounds a single uploaded image.
const MaxUploadSize = 10 << 20 // 10 MB

var (
	slugPattern     = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// SaveResult describes a stored upload. Paths are relative to the uploads
// root so they can go straight into the database and URL space.
type SaveResult struct {
	Path      string
	ThumbPath string
	Width     int
	Height    int
}

// Store writes uploads under a single root directory.
type Store struct {
	uploadDir string
}

// NewStore creates a media store rooted at uploadDir.
func NewStore(uploadDir string) *Store {
	return &Store{uploadDir: uploadDir}
}

// slugifyFilename turns an original filename into a safe ascii base name.
// Cyrillic names are transliterated first, so "Баня 6x4.jpg" becomes
// "bania-6x4".
func slugifyFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	s := strings.ToLower(unidecode.Unidecode(base))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugPattern.ReplaceAllString(s, "")
	s = multipleHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "image"
	}
	return s
}

// uniqueName builds the stored filename: a uuid prefix keeps names unique,
// the slug keeps them readable.
func uniqueName(original, ext string) string {
	return fmt.Sprintf("%s-%s%s", uuid.NewString()[:8], slugifyFilename(original), ext)
}

// SaveUpload decodes, re-encodes and stores one uploaded image, then writes
// a thumbnail next to it under thumbs/. Re-encoding strips any metadata the
// client sent along.
func (s *Store) SaveUpload(r io.Reader, originalFilename string) (*SaveResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("upload exceeds %d bytes", MaxUploadSize)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	ext := formatExt(format)
	name := uniqueName(originalFilename, ext)

	encoded, err := encodeImage(img, format)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	if err := s.writeFile(name, encoded); err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, ThumbWidth, ThumbHeight, imaging.Lanczos)
	encodedThumb, err := encodeImage(thumb, format)
	if err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	thumbRel := filepath.Join("thumbs", name)
	if err := s.writeFile(thumbRel, encodedThumb); err != nil {
		return nil, err
	}

	return &SaveResult{
		Path:      name,
		ThumbPath: thumbRel,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}

// Remove deletes a stored file and its thumbnail. Missing files are fine.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	clean := filepath.Clean(relPath)
	if strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid media path %q", relPath)
	}
	for _, p := range []string{clean, filepath.Join("thumbs", filepath.Base(clean))} {
		if err := os.Remove(filepath.Join(s.uploadDir, p)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}

// writeFile saves data under the uploads root, refusing paths that escape it.
func (s *Store) writeFile(relPath string, data []byte) error {
	clean := filepath.Clean(relPath)
	if strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid media path %q", relPath)
	}

	target := filepath.Join(s.uploadDir, clean)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("saving upload: %w", err)
	}
	return nil
}

// encodeImage encodes an image in the given format. WebP input is written
// back as JPEG since pure Go has no WebP encoder.
func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// detectFormat sniffs the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// formatExt returns the stored file extension for a format.
func formatExt(format string) string {
	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
