package viz

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const brailleBlank = 0x2800

// Braille dot bits, indexed [subY][subX] within a 2x4 cell.
var pixelMap = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells, each holding 2×4 sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = []rune(strings.Repeat(string(rune(brailleBlank)), w))
	}
	return c
}

// Set turns on the sub-pixel (x, y); the canvas is 2·Width × 4·Height
// sub-pixels with y growing downward.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Grid[y/4][x/2] |= pixelMap[y%4][x%2]
}

// IsSet reports whether sub-pixel (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Attractor draws columns xIdx and yIdx of m against each other, joining
// consecutive rows with line segments.
func Attractor(m mat.Matrix, xIdx, yIdx, width, height int) (*Canvas, error) {
	rows, cols := m.Dims()
	if xIdx < 0 || xIdx >= cols || yIdx < 0 || yIdx >= cols {
		return nil, fmt.Errorf("viz: column out of range: (%d, %d) with %d columns", xIdx, yIdx, cols)
	}
	c := NewCanvas(width, height)
	if rows == 0 {
		return c, nil
	}

	xs := mat.Col(nil, xIdx, m)
	ys := mat.Col(nil, yIdx, m)
	px := scale(xs, 2*width-1, false)
	py := scale(ys, 4*height-1, true)

	c.Set(px[0], py[0])
	for i := 1; i < rows; i++ {
		c.DrawLine(px[i-1], py[i-1], px[i], py[i])
	}
	return c, nil
}

// scale maps values onto 0..n, flipped so that larger values land on
// smaller indices when flip is set.
func scale(values []float64, n int, flip bool) []int {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}
	out := make([]int, len(values))
	for i, v := range values {
		p := int((v - lo) / rng * float64(n))
		if flip {
			p = n - p
		}
		out[i] = p
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
