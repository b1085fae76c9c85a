package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sindy/internal/dynamo"
	"github.com/san-kum/sindy/internal/features"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
	featuresFile = "features.csv"
)

// ErrNoFeatures indicates a run whose features have not been expanded yet.
var ErrNoFeatures = errors.New("storage: run has no features")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Model        string             `json:"model"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Integrator   string             `json:"integrator"`
	Params       map[string]float64 `json:"params,omitempty"`
	Trajectories int                `json:"trajectories"`
	Samples      int                `json:"samples"`
	InputNames   []string           `json:"input_names"`
	Library      *features.Config   `json:"library,omitempty"`
	FeatureNames []string           `json:"feature_names,omitempty"`
}

func (s *Store) runDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// Save writes a new run: metadata.json and states.csv with columns
// trajectory, time, then one column per input name. meta.ID and
// meta.Timestamp are assigned here.
func (s *Store) Save(meta *RunMetadata, trajs []*dynamo.Trajectory) (string, error) {
	meta.ID = fmt.Sprintf("%s_%s", meta.Model, uuid.NewString()[:8])
	meta.Timestamp = time.Now()
	meta.Trajectories = len(trajs)
	meta.Samples = 0
	for _, tr := range trajs {
		meta.Samples += tr.Len()
	}

	runDir := s.runDir(meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := s.writeMetadata(meta); err != nil {
		return "", err
	}

	header := append([]string{"trajectory", "time"}, meta.InputNames...)
	err := writeCSV(filepath.Join(runDir, statesFile), header, func(w *csv.Writer) error {
		for k, tr := range trajs {
			for i, st := range tr.States {
				row := make([]string, 0, len(st)+2)
				row = append(row, strconv.Itoa(k), formatFloat(tr.Times[i]))
				for _, v := range st {
					row = append(row, formatFloat(v))
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return meta.ID, nil
}

// SaveFeatures stores an expanded feature matrix for an existing run and
// records the library and feature names in its metadata.
func (s *Store) SaveFeatures(runID string, lib features.Config, names []string, theta *mat.Dense) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	if _, c := theta.Dims(); c != len(names) {
		return fmt.Errorf("storage: %d feature names for %d columns", len(names), c)
	}

	err = writeCSV(filepath.Join(s.runDir(runID), featuresFile), names, func(w *csv.Writer) error {
		r, c := theta.Dims()
		row := make([]string, c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				row[j] = formatFloat(theta.At(i, j))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	meta.Library = &lib
	meta.FeatureNames = names
	return s.writeMetadata(meta)
}

func (s *Store) writeMetadata(meta *RunMetadata) error {
	f, err := os.Create(filepath.Join(s.runDir(meta.ID), metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// List returns all runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates returns the stored samples of every trajectory in order,
// together with their times.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	records, err := readCSV(filepath.Join(s.runDir(runID), statesFile))
	if err != nil {
		return nil, nil, err
	}

	times := make([]float64, 0, len(records))
	states := make([][]float64, 0, len(records))
	for i, record := range records {
		if len(record) < 3 {
			return nil, nil, fmt.Errorf("storage: %s line %d: too few columns", statesFile, i+2)
		}
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %s line %d: %w", statesFile, i+2, err)
		}
		state, err := parseRow(record[2:])
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %s line %d: %w", statesFile, i+2, err)
		}
		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}

// LoadMatrix returns the stored samples as an n_samples × n_inputs matrix.
func (s *Store) LoadMatrix(runID string) (*mat.Dense, error) {
	states, _, err := s.LoadStates(runID)
	if err != nil {
		return nil, err
	}
	return toDense(states)
}

// LoadFeatures returns the feature names and matrix saved by SaveFeatures.
func (s *Store) LoadFeatures(runID string) ([]string, *mat.Dense, error) {
	path := filepath.Join(s.runDir(runID), featuresFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoFeatures, runID)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) < 2 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoFeatures, runID)
	}

	rows := make([][]float64, 0, len(all)-1)
	for i, record := range all[1:] {
		row, err := parseRow(record)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %s line %d: %w", featuresFile, i+2, err)
		}
		rows = append(rows, row)
	}
	theta, err := toDense(rows)
	if err != nil {
		return nil, nil, err
	}
	return all[0], theta, nil
}

func writeCSV(path string, header []string, body func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := body(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// readCSV returns the records after the header line.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

func parseRow(fields []string) ([]float64, error) {
	row := make([]float64, len(fields))
	for j, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		row[j] = v
	}
	return row, nil
}

func toDense(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("storage: no samples")
	}
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("storage: row %d has %d values, want %d", i, len(row), len(rows[0]))
		}
		m.SetRow(i, row)
	}
	return m, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
