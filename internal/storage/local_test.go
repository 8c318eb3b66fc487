package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	url, err := l.Put(context.Background(), "clothing/abc_front.jpg", strings.NewReader("imagem"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/clothing/abc_front.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "clothing", "abc_front.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "imagem", string(data))

	require.NoError(t, l.Delete(context.Background(), "clothing/abc_front.jpg"))
	_, err = os.Stat(filepath.Join(dir, "clothing", "abc_front.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalPutOverwrites(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	_, err := l.Put(context.Background(), "clothing/x.png", strings.NewReader("primeira"), "image/png")
	require.NoError(t, err)
	_, err = l.Put(context.Background(), "clothing/x.png", strings.NewReader("segunda"), "image/png")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "clothing", "x.png"))
	require.NoError(t, err)
	assert.Equal(t, "segunda", string(data))
}

func TestLocalDeleteRejectsEscapingKeys(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	assert.Error(t, l.Delete(context.Background(), "../fora.txt"))
	assert.Error(t, l.Delete(context.Background(), "/etc/passwd"))
}

func TestLocalKeyFromURL(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")

	key, ok := l.KeyFromURL("/uploads/clothing/abc_front.jpg")
	require.True(t, ok)
	assert.Equal(t, "clothing/abc_front.jpg", key)

	_, ok = l.KeyFromURL("https://cdn.example.com/clothing/abc_front.jpg")
	assert.False(t, ok)

	_, ok = l.KeyFromURL("/uploads/")
	assert.False(t, ok)
}
