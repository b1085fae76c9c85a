package viz

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sindy/internal/analysis"
	"github.com/san-kum/sindy/internal/storage"
)

// DegenerateTol is the spread below which a column is flagged as constant.
const DegenerateTol = 1e-12

const sparkWidth = 24

func newTable(s Styles, flagged func(row int) bool) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.Header
			case flagged != nil && flagged(row):
				return s.Warn
			case col == 0:
				return s.Muted
			default:
				return s.Cell
			}
		})
}

// FeatureTable renders one row per column of theta: index, name, mean, std,
// range and a sparkline over the samples. Constant columns other than the
// bias are highlighted.
func FeatureTable(theta mat.Matrix, names []string, th Theme) (string, error) {
	stats, err := analysis.Summarize(theta, names)
	if err != nil {
		return "", err
	}
	degenerate := make(map[string]bool)
	for _, name := range analysis.Degenerate(stats, DegenerateTol) {
		degenerate[name] = true
	}

	s := NewStyles(th)
	rows := make([][]string, len(stats))
	for j, c := range stats {
		rows[j] = []string{
			strconv.Itoa(j),
			c.Name,
			fmtFloat(c.Mean),
			fmtFloat(c.Std),
			fmt.Sprintf("[%s, %s]", fmtFloat(c.Min), fmtFloat(c.Max)),
			Sparkline(mat.Col(nil, j, theta), sparkWidth),
		}
	}

	t := newTable(s, func(row int) bool { return degenerate[stats[row].Name] }).
		Headers("#", "feature", "mean", "std", "range", "samples").
		Rows(rows...)

	r, c := theta.Dims()
	title := s.Title.Render(fmt.Sprintf("%d samples × %d features", r, c))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render()), nil
}

// RunTable renders stored runs, newest last.
func RunTable(runs []storage.RunMetadata, th Theme) string {
	s := NewStyles(th)
	rows := make([][]string, len(runs))
	for i, r := range runs {
		lib := "-"
		if r.Library != nil {
			lib = fmt.Sprintf("%s (%d)", r.Library.Kind, len(r.FeatureNames))
		}
		rows[i] = []string{
			r.ID,
			r.Model,
			r.Integrator,
			strconv.Itoa(r.Trajectories),
			strconv.Itoa(r.Samples),
			lib,
			r.Timestamp.Format("2006-01-02 15:04:05"),
		}
	}
	return newTable(s, nil).
		Headers("run", "model", "integrator", "traj", "samples", "library", "created").
		Rows(rows...).
		Render()
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow,
	asciigraph.Green, asciigraph.Red, asciigraph.Blue,
}

// ColumnPlot plots the selected columns of m over the row index.
func ColumnPlot(m mat.Matrix, names []string, cols []int, width, height int) (string, error) {
	_, n := m.Dims()
	if len(cols) == 0 {
		return "", fmt.Errorf("viz: no columns selected")
	}

	series := make([][]float64, len(cols))
	legends := make([]string, len(cols))
	colors := make([]asciigraph.AnsiColor, len(cols))
	for i, j := range cols {
		if j < 0 || j >= n {
			return "", fmt.Errorf("viz: column %d out of range with %d columns", j, n)
		}
		series[i] = mat.Col(nil, j, m)
		legends[i] = fmt.Sprintf("c%d", j)
		if names != nil {
			legends[i] = names[j]
		}
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	return asciigraph.PlotMany(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	), nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
