// Package viz renders feature matrices and trajectories in the terminal.
//
//   - [FeatureTable]: per-column statistics with a sparkline per feature
//   - [RunTable]: stored runs
//   - [ColumnPlot]: selected feature columns over the sample index
//   - [Attractor]: two state columns drawn on a Braille [Canvas]
//
// Colors come from a [Theme]; [ThemeNames] lists the built-in ones.
package viz
