// Package dataurl is a two-way codec between embedded data URIs
// ("data:image/png;base64,...") and raw binary payloads. It is invoked only
// at persistence boundaries: records travel in memory with textual data URIs
// and are stored with the payload as a binary object.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

const prefix = "data:"

var (
	ErrNotDataURL   = errors.New("not a data url")
	ErrNotBase64    = errors.New("data url is not base64-encoded")
	ErrMalformedURL = errors.New("malformed data url")
)

// Payload is a decoded binary object with its media type.
type Payload struct {
	MIME string
	Data []byte
}

// Is reports whether s looks like an embedded data URI.
func Is(s string) bool {
	return strings.HasPrefix(s, prefix)
}

// Parse decodes a base64 data URI into its binary payload.
func Parse(s string) (*Payload, error) {
	if !Is(s) {
		return nil, ErrNotDataURL
	}

	meta, encoded, ok := strings.Cut(s[len(prefix):], ",")
	if !ok {
		return nil, ErrMalformedURL
	}

	mediaType, found := strings.CutSuffix(meta, ";base64")
	if !found {
		return nil, ErrNotBase64
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}

	return &Payload{MIME: mediaType, Data: data}, nil
}

// String re-encodes the payload as an embeddable data URI.
func (p *Payload) String() string {
	return prefix + p.MIME + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// Ext returns a file extension for the payload's media type, without the
// leading dot. Unknown types map to "bin".
func (p *Payload) Ext() string {
	switch p.MIME {
	case "image/jpeg":
		return "jpg"
	case "audio/mpeg":
		return "mp3"
	}
	if _, sub, ok := strings.Cut(p.MIME, "/"); ok && sub != "" {
		return sub
	}
	return "bin"
}

// FromFile reads a file and encodes it as a data URI, inferring the media
// type from the file extension.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	// TypeByExtension may add parameters (charset); keep only the type.
	if t, _, ok := strings.Cut(mediaType, ";"); ok {
		mediaType = t
	}

	p := &Payload{MIME: mediaType, Data: data}
	return p.String(), nil
}
