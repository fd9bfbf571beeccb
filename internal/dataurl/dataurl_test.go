package dataurl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff}
	p := &Payload{MIME: "image/png", Data: raw}

	encoded := p.String()
	assert.True(t, Is(encoded))

	got, err := Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.MIME)
	assert.Equal(t, raw, got.Data, "payload bytes must survive the round trip")
}

func TestParse_DefaultsMediaType(t *testing.T) {
	got, err := Parse("data:;base64,aGk=")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", got.MIME)
	assert.Equal(t, []byte("hi"), got.Data)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"plain string", "hello", ErrNotDataURL},
		{"http url", "https://example.com/a.png", ErrNotDataURL},
		{"no comma", "data:image/png;base64", ErrMalformedURL},
		{"not base64 encoding", "data:text/plain,hello", ErrNotBase64},
		{"bad base64", "data:image/png;base64,!!!", ErrMalformedURL},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPayload_Ext(t *testing.T) {
	assert.Equal(t, "jpg", (&Payload{MIME: "image/jpeg"}).Ext())
	assert.Equal(t, "png", (&Payload{MIME: "image/png"}).Ext())
	assert.Equal(t, "mp3", (&Payload{MIME: "audio/mpeg"}).Ext())
	assert.Equal(t, "bin", (&Payload{MIME: "weird"}).Ext())
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	raw := []byte{1, 2, 3, 4}
	require.NoError(t, os.WriteFile(path, raw, 0o660))

	uri, err := FromFile(path)
	require.NoError(t, err)

	p, err := Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", p.MIME)
	assert.Equal(t, raw, p.Data)
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "absent.png"))
	require.Error(t, err)
}
