package analysis

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

type Point struct{ X, Y float64 }

// PhasePortrait holds two columns of a sample matrix plotted against each other.
type PhasePortrait struct {
	XIndex, YIndex int
	Points         []Point
}

// NewPhasePortrait reads columns xIdx and yIdx of m, one point per row.
func NewPhasePortrait(m mat.Matrix, xIdx, yIdx int) (*PhasePortrait, error) {
	rows, cols := m.Dims()
	if xIdx < 0 || xIdx >= cols || yIdx < 0 || yIdx >= cols {
		return nil, fmt.Errorf("analysis: column out of range: (%d, %d) with %d columns", xIdx, yIdx, cols)
	}

	portrait := &PhasePortrait{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, rows),
	}
	for i := 0; i < rows; i++ {
		portrait.Points[i] = Point{X: m.At(i, xIdx), Y: m.At(i, yIdx)}
	}
	return portrait, nil
}

// ASCII renders the portrait on a width × height character canvas.
func (p *PhasePortrait) ASCII(width, height int) string {
	return plotPoints(p.Points, width, height)
}

// PoincareSection holds the points recorded at upward threshold crossings.
type PoincareSection struct {
	Points []Point
}

// NewPoincareSection records columns recordX and recordY of m wherever column
// crossIdx passes upward through threshold between consecutive rows. The
// recorded values are linearly interpolated to the crossing.
func NewPoincareSection(m mat.Matrix, crossIdx int, threshold float64, recordX, recordY int) (*PoincareSection, error) {
	rows, cols := m.Dims()
	for _, idx := range []int{crossIdx, recordX, recordY} {
		if idx < 0 || idx >= cols {
			return nil, fmt.Errorf("analysis: column %d out of range with %d columns", idx, cols)
		}
	}

	section := &PoincareSection{}
	for i := 1; i < rows; i++ {
		prev, curr := m.At(i-1, crossIdx), m.At(i, crossIdx)
		if !(prev < threshold && curr >= threshold) {
			continue
		}
		frac := (threshold - prev) / (curr - prev)
		lerp := func(j int) float64 {
			a := m.At(i-1, j)
			return a + frac*(m.At(i, j)-a)
		}
		section.Points = append(section.Points, Point{X: lerp(recordX), Y: lerp(recordY)})
	}
	return section, nil
}

func (s *PoincareSection) ASCII(width, height int) string {
	if len(s.Points) == 0 {
		return "No crossings detected"
	}
	return plotPoints(s.Points, width, height)
}

func plotPoints(points []Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// 10% padding on every side
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// axes, where they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
