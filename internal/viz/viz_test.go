package viz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sindy/internal/features"
	"github.com/san-kum/sindy/internal/storage"
)

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▂▃▄▅▆▇█", Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8))
	assert.Equal(t, "───", Sparkline(nil, 3), "empty sparkline")
	assert.Len(t, []rune(Sparkline(make([]float64, 100), 10)), 10)
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(10, 10)

	assert.True(t, c.IsSet(0, 0))
	assert.True(t, c.IsSet(3, 3))
	assert.False(t, c.IsSet(1, 0), "unexpected pixel")
	assert.Equal(t, "⠁⢀\n", c.String())
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		assert.True(t, c.IsSet(x, 0), "pixel (%d, 0) not set", x)
	}
}

func TestAttractor(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		0, 0,
		1, 1,
		2, 0,
	})
	c, err := Attractor(m, 0, 1, 10, 5)
	require.NoError(t, err)
	// lowest y maps to the bottom row, highest to the top
	assert.True(t, c.IsSet(0, 19), "bottom left")
	assert.True(t, c.IsSet(19, 19), "bottom right")
	assert.True(t, c.IsSet(9, 0), "apex on the top edge")

	_, err = Attractor(m, 0, 2, 10, 5)
	assert.Error(t, err, "out of range column")
}

func TestFeatureTable(t *testing.T) {
	theta := mat.NewDense(3, 3, []float64{
		1, 0.5, 0,
		1, 1.5, 0,
		1, 2.5, 0,
	})
	out, err := FeatureTable(theta, []string{"1", "x0", "0"}, ThemeMinimal)
	require.NoError(t, err)
	for _, want := range []string{"3 samples × 3 features", "feature", "x0", "1.5"} {
		assert.Contains(t, out, want)
	}

	_, err = FeatureTable(theta, []string{"a"}, ThemeMinimal)
	assert.Error(t, err, "mismatched names")
}

func TestRunTable(t *testing.T) {
	runs := []storage.RunMetadata{{
		ID:           "lorenz_0123abcd",
		Model:        "lorenz",
		Integrator:   "rk4",
		Trajectories: 1,
		Samples:      100,
		Library:      &features.Config{Kind: features.KindPolynomial},
		FeatureNames: make([]string, 10),
		Timestamp:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}}
	out := RunTable(runs, GetTheme("ocean"))
	for _, want := range []string{"lorenz_0123abcd", "polynomial (10)", "2024-01-02 03:04:05"} {
		assert.Contains(t, out, want)
	}
}

func TestColumnPlot(t *testing.T) {
	m := mat.NewDense(4, 2, []float64{0, 3, 1, 2, 2, 1, 3, 0})
	out, err := ColumnPlot(m, []string{"up", "down"}, []int{0, 1}, 20, 5)
	require.NoError(t, err)
	assert.Contains(t, out, "up")
	assert.Contains(t, out, "down")

	_, err = ColumnPlot(m, nil, nil, 20, 5)
	assert.Error(t, err, "no columns")
	_, err = ColumnPlot(m, nil, []int{2}, 20, 5)
	assert.Error(t, err, "out of range column")
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, "ocean", GetTheme("ocean").Name)
	assert.Equal(t, ThemeCyberpunk.Name, GetTheme("nope").Name, "fallback theme")
	assert.Len(t, ThemeNames(), len(Themes))
}
