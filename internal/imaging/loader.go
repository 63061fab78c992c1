package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Format identifies an encoded image format.
type Format = imaging.Format

// Supported formats for Encode. WebP is decode-only.
const (
	PNG  = imaging.PNG
	JPEG = imaging.JPEG
	GIF  = imaging.GIF
	TIFF = imaging.TIFF
	BMP  = imaging.BMP
)

// jpegQuality matches the quality most editors default to.
const jpegQuality = 95

// Decode reads an encoded image and returns it as a three-channel buffer.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. EXIF orientation
// is applied, so photos come out upright. Any failure is wrapped in ErrDecode.
func Decode(r io.Reader) (*Buffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	buf, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return buf, nil
}

// Encode writes buf to w in the given format. Any failure is wrapped in
// ErrEncode; a nil buffer is ErrNoImageLoaded.
func Encode(w io.Writer, buf *Buffer, format Format) error {
	if buf == nil {
		return ErrNoImageLoaded
	}
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := imaging.Encode(w, buf.ToNRGBA(), format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// FormatFromPath determines the encode format from a file extension
// (".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp").
func FormatFromPath(path string) (Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%w: unsupported image format %q", ErrEncode, filepath.Ext(path))
	}
	return f, nil
}

// LoadFile opens and decodes the image at path.
//
// Returns an error wrapping ErrDecode if the file cannot be opened or is not a
// supported image.
func LoadFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %v", ErrDecode, err)
	}
	defer f.Close()

	buf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// SaveFile encodes buf in the format implied by the extension of path and
// writes it. The file is only created once encoding has succeeded.
func SaveFile(path string, buf *Buffer) error {
	if buf == nil {
		return ErrNoImageLoaded
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var data bytes.Buffer
	if err := Encode(&data, buf, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, data.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", ErrEncode, path, err)
	}
	return nil
}

// EncodedImage contains a buffer encoded as base64 for transport in JSON.
type EncodedImage struct {
	// Width of the encoded image in pixels.
	Width int `json:"width"`

	// Height of the encoded image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the image encoded as base64.
	ImageBase64 string `json:"image_base64"`

	// MimeType is "image/png" or "image/jpeg".
	MimeType string `json:"mime_type"`
}

// EncodeBase64 encodes buf as PNG (or JPEG when format is JPEG) and returns it
// as base64 with its MIME type.
func EncodeBase64(buf *Buffer, format Format) (*EncodedImage, error) {
	if buf == nil {
		return nil, ErrNoImageLoaded
	}
	mime := "image/png"
	if format == JPEG {
		mime = "image/jpeg"
	} else {
		format = PNG
	}

	var data bytes.Buffer
	if err := Encode(&data, buf, format); err != nil {
		return nil, err
	}
	return &EncodedImage{
		Width:       buf.Width,
		Height:      buf.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(data.Bytes()),
		MimeType:    mime,
	}, nil
}

// FormatName returns the lowercase name of a format ("png", "jpeg", ...).
func FormatName(f Format) string {
	return strings.ToLower(f.String())
}
