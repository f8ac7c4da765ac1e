// Package store persists recombination runs: per-run metadata plus the
// sampled history arrays.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/recomb/internal/analysis"
	"github.com/san-kum/recomb/internal/cosmo"
	"github.com/san-kum/recomb/internal/recomb"
)

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
	ID        string           `json:"id"`
	Model     string           `json:"model"`
	Timestamp time.Time        `json:"timestamp"`
	Input     cosmo.Input      `json:"input"`
	NZ        int              `json:"nz"`
	DLNA      float64          `json:"dlna"`
	Stride    int              `json:"stride"`
	Summary   analysis.Summary `json:"summary"`
	Warnings  []string         `json:"warnings,omitempty"`
}

// Save writes metadata.json and history.csv under a fresh run directory and
// returns the run id. The CSV is sampled every stride grid points; the
// final grid point is always included.
func (s *Store) Save(model string, in cosmo.Input, hist *recomb.History, sum analysis.Summary, stride int) (string, error) {
	if stride < 1 {
		stride = 1
	}
	runID := fmt.Sprintf("%s_%d", model, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     model,
		Timestamp: time.Now(),
		Input:     in,
		NZ:        hist.Len(),
		DLNA:      hist.DLNA,
		Stride:    stride,
		Summary:   sum,
		Warnings:  hist.Warnings,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"z", "xe", "tm"}); err != nil {
		return "", err
	}

	nz := hist.Len()
	for i := 0; i < nz; i += stride {
		if err := writeRow(w, hist, i); err != nil {
			return "", err
		}
	}
	if (nz-1)%stride != 0 {
		if err := writeRow(w, hist, nz-1); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeRow(w *csv.Writer, hist *recomb.History, i int) error {
	return w.Write([]string{
		strconv.FormatFloat(hist.Z(i), 'g', 10, 64),
		strconv.FormatFloat(hist.Xe[i], 'g', 10, 64),
		strconv.FormatFloat(hist.Tm[i], 'g', 10, 64),
	})
}

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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadHistory reads back the sampled history columns of a run.
func (s *Store) LoadHistory(runID string) (zs, xes, tms []float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	for i, rec := range records {
		if i == 0 || len(rec) < 3 {
			continue
		}
		z, err1 := strconv.ParseFloat(rec[0], 64)
		xe, err2 := strconv.ParseFloat(rec[1], 64)
		tm, err3 := strconv.ParseFloat(rec[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, nil, nil, fmt.Errorf("store: malformed row %d in %s", i, runID)
		}
		zs = append(zs, z)
		xes = append(xes, xe)
		tms = append(tms, tm)
	}
	return zs, xes, tms, nil
}
