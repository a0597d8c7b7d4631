package config

import "sort"

// Presets are representative FOPDT processes for quick comparisons. Each
// stays on the catalog's ratio grid and inside the correlations' validity
// range for the normalized dead time.
var Presets = map[string]*Config{
	"lag_dominant": {
		Process: ProcessConfig{K: 1.2, T: 8.0, A: 0.0, Tau0: 0.15},
		Output:  OutputConfig{Precision: DefaultPrecision, SortBy: DefaultSortBy},
	},
	"balanced": {
		Process: ProcessConfig{K: 1.0, T: 1.0, A: 0.5, Tau0: 0.5},
		Output:  OutputConfig{Precision: DefaultPrecision, SortBy: DefaultSortBy},
	},
	"dead_time_heavy": {
		Process: ProcessConfig{K: 0.8, T: 2.0, A: 0.25, Tau0: 1.5},
		Output:  OutputConfig{Precision: DefaultPrecision, SortBy: DefaultSortBy},
	},
	"high_gain": {
		Process: ProcessConfig{K: 5.0, T: 3.0, A: 0.75, Tau0: 0.4},
		Output:  OutputConfig{Precision: DefaultPrecision, SortBy: DefaultSortBy},
	},
	"double_pole": {
		Process: ProcessConfig{K: 1.5, T: 4.0, A: 1.0, Tau0: 0.8},
		Output:  OutputConfig{Precision: DefaultPrecision, SortBy: DefaultSortBy},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
