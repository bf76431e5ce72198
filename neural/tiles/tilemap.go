// Package tiles converts bitmap maps into grids of drivable tiles and samples
// them into network input vectors.
package tiles

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/bmp"
)

// WaterColor marks undrivable pixels.
var WaterColor = color.RGBA{R: 45, G: 94, B: 127, A: 255}

// DrivableTileMap is a column-major grid: tiles[x][y] is true when (x, y) can
// be driven on.
type DrivableTileMap struct {
	tiles [][]bool
}

// New returns a map of the given size with no drivable tiles.
func New(width, height int) *DrivableTileMap {
	tiles := make([][]bool, width)
	for x := range tiles {
		tiles[x] = make([]bool, height)
	}
	return &DrivableTileMap{tiles: tiles}
}

// FromImage marks every pixel that is not WaterColor as drivable.
func FromImage(img image.Image) *DrivableTileMap {
	bounds := img.Bounds()
	m := New(bounds.Dx(), bounds.Dy())
	for x := 0; x < bounds.Dx(); x++ {
		for y := 0; y < bounds.Dy(); y++ {
			m.tiles[x][y] = !isWater(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return m
}

func isWater(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return uint8(r>>8) == WaterColor.R && uint8(g>>8) == WaterColor.G && uint8(b>>8) == WaterColor.B
}

// Load decodes a BMP file into a tile map.
func Load(path string) (*DrivableTileMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bitmap '%s': %w", path, err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bitmap '%s': %w", path, err)
	}
	return FromImage(img), nil
}

// Width returns the number of columns.
func (m *DrivableTileMap) Width() int {
	return len(m.tiles)
}

// Height returns the number of rows.
func (m *DrivableTileMap) Height() int {
	if len(m.tiles) == 0 {
		return 0
	}
	return len(m.tiles[0])
}

// Set marks (x, y) drivable or not. It panics when (x, y) is outside the map.
func (m *DrivableTileMap) Set(x, y int, drivable bool) {
	m.tiles[x][y] = drivable
}

// Drivable reports whether (x, y) is drivable. ok is false outside the map.
func (m *DrivableTileMap) Drivable(x, y int) (drivable, ok bool) {
	if x < 0 || x >= len(m.tiles) || y < 0 || y >= len(m.tiles[x]) {
		return false, false
	}
	return m.tiles[x][y], true
}

// Row samples n tiles starting at (x, y) and moving along x. Drivable tiles
// yield 1, everything else (including tiles outside the map) yields 0.
func (m *DrivableTileMap) Row(x, y, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		if d, ok := m.Drivable(x+i, y); ok && d {
			out[i] = 1
		}
	}
	return out
}

// String renders one line per column: "x:" followed by 1 (drivable) or 0 per tile.
func (m *DrivableTileMap) String() string {
	var b strings.Builder
	for x, col := range m.tiles {
		fmt.Fprintf(&b, "%d:", x)
		for _, drivable := range col {
			if drivable {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
