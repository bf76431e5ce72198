package tiles

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	grass := color.RGBA{R: 40, G: 160, B: 40, A: 255}
	for x := 0; x < 3; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, grass)
		}
	}
	img.Set(1, 0, WaterColor)
	img.Set(2, 1, WaterColor)
	return img
}

func TestFromImage(t *testing.T) {
	m := FromImage(testImage())
	assert.Equal(t, 3, m.Width())
	assert.Equal(t, 2, m.Height())

	tests := []struct {
		x, y         int
		drivable, ok bool
	}{
		{0, 0, true, true},
		{1, 0, false, true},
		{2, 1, false, true},
		{1, 1, true, true},
		{3, 0, false, false},
		{0, -1, false, false},
	}
	for _, tt := range tests {
		d, ok := m.Drivable(tt.x, tt.y)
		assert.Equal(t, tt.drivable, d, "(%d,%d)", tt.x, tt.y)
		assert.Equal(t, tt.ok, ok, "(%d,%d)", tt.x, tt.y)
	}

	assert.Equal(t, "0:11\n1:01\n2:10\n", m.String())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.bmp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, testImage()))
	require.NoError(t, f.Close())

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FromImage(testImage()).String(), m.String())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bmp"))
	assert.ErrorContains(t, err, "failed to open bitmap")

	path := filepath.Join(t.TempDir(), "bad.bmp")
	require.NoError(t, os.WriteFile(path, []byte("not a bitmap"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to decode bitmap")
}

func TestRow(t *testing.T) {
	m := New(4, 1)
	m.Set(0, 0, true)
	m.Set(2, 0, true)

	assert.Equal(t, []float32{1, 0, 1, 0}, m.Row(0, 0, 4))
	assert.Equal(t, []float32{1, 0, 0}, m.Row(2, 0, 3))
	assert.Equal(t, []float32{0, 0}, m.Row(0, 5, 2))
	assert.Empty(t, m.Row(0, 0, 0))
}

func TestEmptyMap(t *testing.T) {
	m := New(0, 0)
	assert.Equal(t, 0, m.Width())
	assert.Equal(t, 0, m.Height())
	assert.Equal(t, "", m.String())
}
