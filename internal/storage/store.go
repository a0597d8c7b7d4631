package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avega-cr/tunelab/internal/tuning"
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
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	K         float64   `json:"k"`
	T         float64   `json:"t"`
	A         float64   `json:"a"`
	Tau0      float64   `json:"tau0"`
	Records   int       `json:"records"`
}

var resultHeader = []string{"method", "variant", "mode", "criterion", "kp", "ti", "td", "beta"}

// Save persists one evaluation as a run directory holding metadata.json and
// results.csv. The run id is "tuning_<unix>".
func (s *Store) Save(p tuning.ProcessParameters, results tuning.ResultSet) (string, error) {
	runID := fmt.Sprintf("tuning_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		K:         p.K,
		T:         p.T,
		A:         p.A,
		Tau0:      p.Tau0,
		Records:   len(results),
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "results.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, results); err != nil {
		return "", err
	}

	return runID, nil
}

func resultRow(r tuning.ResultRecord) []string {
	return []string{
		r.Method.String(),
		r.Variant,
		r.Mode.String(),
		r.Criterion.Label(),
		strconv.FormatFloat(r.Kp, 'f', 6, 64),
		strconv.FormatFloat(r.Ti, 'f', 6, 64),
		strconv.FormatFloat(r.Td, 'f', 6, 64),
		r.Beta.String(),
	}
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadResults reads a saved result table back. The variant column round-trips
// verbatim; the controller type is recovered from it since the CSV does not
// carry a separate column.
func (s *Store) LoadResults(runID string) (tuning.ResultSet, error) {
	csvPath := filepath.Join(s.baseDir, runID, "results.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return tuning.ResultSet{}, nil
	}

	results := make(tuning.ResultSet, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		rec, err := parseRow(records[i])
		if err != nil {
			return nil, fmt.Errorf("storage: %s row %d: %w", runID, i, err)
		}
		results = append(results, rec)
	}
	return results, nil
}

func parseRow(row []string) (tuning.ResultRecord, error) {
	if len(row) != len(resultHeader) {
		return tuning.ResultRecord{}, fmt.Errorf("expected %d fields, got %d", len(resultHeader), len(row))
	}

	method, err := tuning.ParseMethod(row[0])
	if err != nil {
		return tuning.ResultRecord{}, err
	}
	mode, err := tuning.ParseMode(row[2])
	if err != nil {
		return tuning.ResultRecord{}, err
	}
	crit, err := tuning.ParseCriterion(row[3])
	if err != nil {
		return tuning.ResultRecord{}, err
	}

	kp, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return tuning.ResultRecord{}, err
	}
	ti, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return tuning.ResultRecord{}, err
	}
	td, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return tuning.ResultRecord{}, err
	}

	var beta tuning.Beta
	if row[7] != "-" {
		v, err := strconv.ParseFloat(row[7], 64)
		if err != nil {
			return tuning.ResultRecord{}, err
		}
		beta = tuning.Beta{Value: v, Valid: true}
	}

	return tuning.ResultRecord{
		Method:     method,
		Variant:    row[1],
		Mode:       mode,
		Controller: controllerFromVariant(row[1]),
		Criterion:  crit,
		Kp:         kp,
		Ti:         ti,
		Td:         td,
		Beta:       beta,
	}, nil
}

func controllerFromVariant(variant string) tuning.ControllerType {
	switch {
	case len(variant) >= 3 && variant[:3] == "PID":
		return tuning.PID
	case len(variant) >= 2 && variant[:2] == "PI":
		return tuning.PI
	case len(variant) >= 2 && variant[:2] == "P ":
		return tuning.P
	default:
		// Méndez variants look like "IAE (PI)".
		return tuning.PI
	}
}
