package paradigma

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/cours-de-latin/paradigma/fst"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a build.
type Config struct {
	// Threshold is the novelty probability at or below which a stem slot is
	// enumerated exactly.
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// Workers bounds the number of lexemes processed concurrently.
	Workers int `json:"workers" yaml:"workers"`

	// Alphabet is the symbol set the stem wildcard ranges over.
	Alphabet string `json:"alphabet" yaml:"alphabet"`

	// Vowels and Consonants are fst class bodies for the letter filter a
	// surface form must pass before analysis. A vowel may be followed by
	// the long-vowel hyphen.
	Vowels     string `json:"vowels" yaml:"vowels"`
	Consonants string `json:"consonants" yaml:"consonants"`

	// MinimizeEachUnion normalizes the transducer after every union instead
	// of once at the end of each model and of the run.
	MinimizeEachUnion bool `json:"minimize_each_union" yaml:"minimize_each_union"`

	// StoreDSN locates the SQLite model store; empty disables it.
	StoreDSN string `json:"store_dsn" yaml:"store_dsn"`

	// Logger receives progress and skipped-item reports.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// DefaultConfig returns the configuration used for Latin verbs.
func DefaultConfig() Config {
	return Config{
		Threshold:         DefaultThreshold,
		Workers:           runtime.GOMAXPROCS(0),
		Alphabet:          fst.DefaultAlphabet,
		Vowels:            "aeiouy",
		Consonants:        "b-df-hj-np-tv-xz",
		MinimizeEachUnion: true,
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Threshold <= 0 || c.Threshold >= 1 {
		errs = append(errs, fmt.Errorf("threshold %g outside (0, 1)", c.Threshold))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d < 1", c.Workers))
	}
	if c.Alphabet == "" {
		errs = append(errs, errors.New("empty alphabet"))
	}
	if c.Vowels == "" || c.Consonants == "" {
		errs = append(errs, errors.New("empty letter classes"))
	}
	return errors.Join(errs...)
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) fstOptions() *fst.Options {
	return &fst.Options{Alphabet: c.Alphabet}
}
