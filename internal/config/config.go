package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avega-cr/tunelab/internal/tuning"
)

const (
	DefaultK         = 1.0
	DefaultT         = 1.0
	DefaultA         = 0.0
	DefaultTau0      = 0.5
	DefaultPrecision = 3
	DefaultSortBy    = "variant"
)

type Config struct {
	Process ProcessConfig `yaml:"process"`
	Output  OutputConfig  `yaml:"output"`
}

type ProcessConfig struct {
	K    float64 `yaml:"k"`
	T    float64 `yaml:"t"`
	A    float64 `yaml:"a"`
	Tau0 float64 `yaml:"tau0"`
}

type OutputConfig struct {
	Precision  int    `yaml:"precision"`
	SortBy     string `yaml:"sort_by"`
	Descending bool   `yaml:"descending"`
}

func DefaultConfig() *Config {
	return &Config{
		Process: ProcessConfig{
			K:    DefaultK,
			T:    DefaultT,
			A:    DefaultA,
			Tau0: DefaultTau0,
		},
		Output: OutputConfig{
			Precision: DefaultPrecision,
			SortBy:    DefaultSortBy,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the process section into the engine's parameter struct.
func (c *Config) Params() tuning.ProcessParameters {
	return tuning.ProcessParameters{
		K:    c.Process.K,
		T:    c.Process.T,
		A:    c.Process.A,
		Tau0: c.Process.Tau0,
	}
}

// SortKey resolves the configured sort column.
func (c *Config) SortKey() (tuning.SortKey, error) {
	return tuning.ParseSortKey(c.Output.SortBy)
}
