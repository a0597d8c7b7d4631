package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"

	"github.com/avega-cr/tunelab/internal/tuning"
)

type ExportRecord struct {
	Method    string   `json:"method"`
	Variant   string   `json:"variant"`
	Mode      string   `json:"mode"`
	Criterion string   `json:"criterion"`
	Kp        float64  `json:"kp"`
	Ti        float64  `json:"ti"`
	Td        float64  `json:"td"`
	Beta      *float64 `json:"beta,omitempty"`
}

type ExportData struct {
	K       float64        `json:"k"`
	T       float64        `json:"t"`
	A       float64        `json:"a"`
	Tau0    float64        `json:"tau0"`
	Records []ExportRecord `json:"records"`
}

func buildExport(p tuning.ProcessParameters, results tuning.ResultSet) ExportData {
	data := ExportData{
		K:       p.K,
		T:       p.T,
		A:       p.A,
		Tau0:    p.Tau0,
		Records: make([]ExportRecord, len(results)),
	}
	for i, r := range results {
		rec := ExportRecord{
			Method:    r.Method.String(),
			Variant:   r.Variant,
			Mode:      r.Mode.String(),
			Criterion: r.Criterion.Label(),
			Kp:        r.Kp,
			Ti:        r.Ti,
			Td:        r.Td,
		}
		if r.Beta.Valid {
			v := r.Beta.Value
			rec.Beta = &v
		}
		data.Records[i] = rec
	}
	return data
}

func ExportJSON(path string, p tuning.ProcessParameters, results tuning.ResultSet) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, p, results)
}

func ExportJSONStdout(p tuning.ProcessParameters, results tuning.ResultSet) error {
	return writeJSON(os.Stdout, p, results)
}

func writeJSON(w io.Writer, p tuning.ProcessParameters, results tuning.ResultSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(p, results))
}

func ExportCSV(path string, results tuning.ResultSet) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, results)
}

// WriteCSV streams the result table in the same layout the store persists.
func WriteCSV(w io.Writer, results tuning.ResultSet) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(resultHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(resultRow(r)); err != nil {
			return err
		}
	}
	return nil
}
