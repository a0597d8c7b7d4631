package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/avega-cr/tunelab/internal/tuning"
)

func testEvaluation(t *testing.T) (tuning.ProcessParameters, tuning.ResultSet) {
	t.Helper()
	p := tuning.ProcessParameters{K: 2.0, T: 5.0, A: 0.5, Tau0: 0.3}
	results, err := tuning.Evaluate(p)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	return p, results
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p, results := testEvaluation(t)

	runID, err := st.Save(p, results)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.K != 2.0 || meta.T != 5.0 || meta.A != 0.5 || meta.Tau0 != 0.3 {
		t.Errorf("wrong process parameters in metadata: %+v", meta)
	}
	if meta.Records != len(results) {
		t.Errorf("expected %d records in metadata, got %d", len(results), meta.Records)
	}
}

func TestStoreResultsRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p, results := testEvaluation(t)
	runID, err := st.Save(p, results)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.LoadResults(runID)
	if err != nil {
		t.Fatalf("load results failed: %v", err)
	}
	if len(loaded) != len(results) {
		t.Fatalf("expected %d records, got %d", len(results), len(loaded))
	}

	for i, r := range results {
		l := loaded[i]
		if l.Method != r.Method || l.Variant != r.Variant || l.Mode != r.Mode {
			t.Errorf("record %d: identity fields changed: %+v vs %+v", i, l, r)
		}
		if l.Controller != r.Controller {
			t.Errorf("record %d (%s): controller %s, expected %s", i, r.Variant, l.Controller, r.Controller)
		}
		if l.Criterion != r.Criterion {
			t.Errorf("record %d: criterion %s, expected %s", i, l.Criterion.Label(), r.Criterion.Label())
		}
		if l.Beta.Valid != r.Beta.Valid {
			t.Errorf("record %d: beta validity changed", i)
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	p, results := testEvaluation(t)
	if _, err := st.Save(p, results); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p, results := testEvaluation(t)
	runID, err := st.Save(p, results)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "results.csv")); os.IsNotExist(err) {
		t.Error("results.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	p, results := testEvaluation(t)

	if err := ExportJSON(path, p, results); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var out ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out.K != p.K || out.Tau0 != p.Tau0 {
		t.Errorf("wrong process parameters: %+v", out)
	}
	if len(out.Records) != len(results) {
		t.Fatalf("expected %d records, got %d", len(results), len(out.Records))
	}

	for i, rec := range out.Records {
		if results[i].Beta.Valid && rec.Beta == nil {
			t.Errorf("record %d (%s): beta missing in export", i, rec.Variant)
		}
		if !results[i].Beta.Valid && rec.Beta != nil {
			t.Errorf("record %d (%s): unexpected beta in export", i, rec.Variant)
		}
	}
}

func TestExportCSV(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.csv")
	p, results := testEvaluation(t)

	if err := ExportCSV(path, results); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// A CSV export is readable through the same row parser the store uses.
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	runID, err := st.Save(p, results)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	saved, err := os.ReadFile(filepath.Join(tmpDir, runID, "results.csv"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	exported, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(saved) != string(exported) {
		t.Error("export and store should write identical result tables")
	}
}
