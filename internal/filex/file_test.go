package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is the smallest prefix mimetype recognises as PNG.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestSniff(t *testing.T) {
	ct, ext := Sniff(pngHeader)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, ".png", ext)

	ct, ext = Sniff([]byte("%PDF-1.7\n%âãÏÓ\n"))
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, ".pdf", ext)

	ct, _ = Sniff([]byte("just some words"))
	assert.Equal(t, "text/plain", ct)
}

func TestReadAttachment_OK(t *testing.T) {
	p := writeFile(t, "photo.bin", pngHeader)

	a, err := ReadAttachment(p, 1024)
	require.NoError(t, err)
	assert.Equal(t, "photo.bin", a.Name)
	assert.Equal(t, "image/png", a.ContentType)
	assert.Equal(t, ".png", a.Extension)
	assert.Equal(t, pngHeader, a.Data)
}

func TestReadAttachment_Errors(t *testing.T) {
	empty := writeFile(t, "empty.pdf", nil)
	_, err := ReadAttachment(empty, 0)
	require.ErrorIs(t, err, ErrEmptyFile)

	big := writeFile(t, "big.png", append(pngHeader, make([]byte, 64)...))
	_, err = ReadAttachment(big, 16)
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = ReadAttachment(t.TempDir(), 0)
	require.ErrorIs(t, err, ErrNotAFile)

	_, err = ReadAttachment(filepath.Join(t.TempDir(), "missing.png"), 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatAttachment_NoLimit(t *testing.T) {
	p := writeFile(t, "card.png", append(pngHeader, make([]byte, 1000)...))
	n, err := StatAttachment(p, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(len(pngHeader)+1000), n)
}

func TestEnsureParentDir(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "state", "nested", "registration.db")

	require.NoError(t, EnsureParentDir(target))
	fi, err := os.Stat(filepath.Join(base, "state", "nested"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	require.NoError(t, EnsureParentDir("registration.db"))
}
