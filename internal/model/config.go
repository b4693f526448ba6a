package model

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
	"github.com/creasty/defaults"

	_ "embed"
)

const (
	LogStderr  = "stderr"
	LogStdout  = "stdout"
	LogDiscard = "discard"
)

// Config is the genomos configuration. Everything can be overridden by
// command line flags, the file exists so reference Tm values for a panel of
// loci can be kept next to the data instead of retyped as -t flags.
type Config struct {
	Version int     `json:"version" yaml:"version"` // fixed 0 for now
	Input   Input   `json:"input" yaml:"input"`
	Loci    []Locus `json:"loci,omitempty" yaml:"loci,omitempty"`
	Output  Output  `json:"output" yaml:"output"`
	Service Service `json:"service" yaml:"service"`
}

// Input describes the tabular source.
type Input struct {
	Path         string `json:"path,omitempty" yaml:"path,omitempty"`
	StatusColumn string `json:"status_column,omitempty" yaml:"status_column,omitempty" default:"Status"`
	IDColumn     string `json:"id_column,omitempty" yaml:"id_column,omitempty"`
}

// Locus is one reference entry: the locus label and the reference Tm per
// state.
type Locus struct {
	Locus        string  `json:"locus" yaml:"locus"`
	Sensible     float64 `json:"sensible" yaml:"sensible"`
	Heterocigoto float64 `json:"heterocigoto" yaml:"heterocigoto"`
	Resistente   float64 `json:"resistente" yaml:"resistente"`
}

// Output describes where results land.
type Output struct {
	Results      string `json:"results,omitempty" yaml:"results,omitempty" default:"resultados.xlsx"`
	Distribution string `json:"distribution,omitempty" yaml:"distribution,omitempty"`
}

// Service holds run-level settings.
type Service struct {
	Verbose bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Log     string `json:"log,omitempty" yaml:"log,omitempty" default:"stderr"`
}

// References converts the configured loci into classifier references, in
// file order.
func (c Config) References() []Reference {
	refs := make([]Reference, 0, len(c.Loci))
	for _, l := range c.Loci {
		refs = append(refs, Reference{
			Locus: l.Locus,
			Tm: map[Status]float64{
				StatusSensible:     l.Sensible,
				StatusHeterozygous: l.Heterocigoto,
				StatusResistant:    l.Resistente,
			},
		})
	}
	return refs
}

//go:embed config.cue
var cueSource []byte

var (
	cueCtx    *cue.Context
	cueConfig cue.Value
)

func init() {
	if len(cueSource) == 0 {
		panic("variable cueSource is empty")
	}
	cueCtx = cuecontext.New()
	compiled := cueCtx.CompileBytes(cueSource)
	if compiled.Err() != nil {
		panic(compiled.Err())
	}
	if err := compiled.Validate(); err != nil {
		panic(err)
	}

	cueConfig = compiled.LookupPath(cue.ParsePath("#Config"))
	if cueConfig.Err() != nil {
		panic(cueConfig.Err())
	}
	if err := cueConfig.Validate(); err != nil {
		panic(err)
	}
}

// LoadConfig validates YAML from r against the CUE schema and decodes it.
// NOT SAFE for multiple goroutines.
func LoadConfig(r io.Reader) (Config, error) {
	var ret Config

	yamlFile, err := yaml.Extract("config.yaml", r)
	if err != nil {
		return ret, err
	}
	yamlValue := cueCtx.BuildFile(yamlFile)

	unified := cueConfig.Unify(yamlValue)
	if err := unified.Validate(
		cue.All(),          // all constraints
		cue.Concrete(true), // no incomplete values
	); err != nil {
		return ret, fmt.Errorf("validating config: %w", err)
	}

	if err := unified.Decode(&ret); err != nil {
		return ret, err
	}

	if err := defaults.Set(&ret); err != nil {
		return ret, err
	}
	expandEnv(&ret)
	return ret, nil
}

// LoadConfigFromPath loads the configuration from path, "-" means stdin.
func LoadConfigFromPath(path string) (Config, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("error opening config file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				slog.Error("can't close config file", "path", path, "error", err)
			}
		}()
		r = f
	}
	ret, err := LoadConfig(r)
	if err != nil {
		return ret, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return ret, nil
}

// DefaultConfig returns the built-in configuration: no loci, status column
// "Status", results to resultados.xlsx.
func DefaultConfig() Config {
	var cfg = Config{Version: 0}
	if err := defaults.Set(&cfg); err != nil {
		// only reachable with a broken default tag
		panic(err)
	}
	return cfg
}

// Validate checks cross-field rules the schema cannot express.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Loci))
	var errs []error
	for _, l := range c.Loci {
		if seen[l.Locus] {
			errs = append(errs, fmt.Errorf("locus %q configured twice", l.Locus))
		}
		seen[l.Locus] = true
	}
	switch c.Service.Log {
	case LogStderr, LogStdout, LogDiscard, "":
	default:
		errs = append(errs, fmt.Errorf("service.log %q: want stderr, stdout or discard", c.Service.Log))
	}
	return errors.Join(errs...)
}

// expandEnv expands ${VAR} in the path-like string fields, so configs can
// say path: ${HOME}/muestras.xlsx.
func expandEnv(c *Config) {
	c.Input.Path = os.ExpandEnv(c.Input.Path)
	c.Output.Results = os.ExpandEnv(c.Output.Results)
	c.Output.Distribution = os.ExpandEnv(c.Output.Distribution)
}
