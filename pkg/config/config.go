package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Phil254/cloud-resource-management-thesis/pkg/core"
	"github.com/Phil254/cloud-resource-management-thesis/pkg/solver"
)

// EnvPrefix is the prefix of environment variables that override
// configuration keys (e.g. SLAPSO_SWARMSIZE).
const EnvPrefix = "SLAPSO"

// RunConfig carries every tunable of a placement run.
type RunConfig struct {
	// Problem size.
	NumVMs    int            `yaml:"numVMs" mapstructure:"numVMs"`
	NumHosts  int            `yaml:"numHosts" mapstructure:"numHosts"`
	Landscape core.Landscape `yaml:"landscape" mapstructure:"landscape"`

	// Swarm parameters.
	SwarmSize  int     `yaml:"swarmSize" mapstructure:"swarmSize"`
	Iterations int     `yaml:"iterations" mapstructure:"iterations"`
	Cognitive  float64 `yaml:"cognitiveCoeff" mapstructure:"cognitiveCoeff"`
	Social     float64 `yaml:"socialCoeff" mapstructure:"socialCoeff"`
	Inertia    float64 `yaml:"inertiaWeight" mapstructure:"inertiaWeight"`

	// Cost weights.
	ScalingFactor     float64 `yaml:"scalingFactor" mapstructure:"scalingFactor"`
	SLACostFactor     float64 `yaml:"slaCostFactor" mapstructure:"slaCostFactor"`
	LoadBalanceWeight float64 `yaml:"loadBalanceWeight" mapstructure:"loadBalanceWeight"`

	// Seed makes the generated population and the optimization walk
	// reproducible. 0 selects a time-based seed at run start.
	Seed int64 `yaml:"seed" mapstructure:"seed"`

	// Parallel evaluates particles concurrently.
	Parallel bool `yaml:"parallel" mapstructure:"parallel"`

	// Output settings. Empty paths disable the corresponding export.
	DemandCSV    string `yaml:"demandCSV" mapstructure:"demandCSV"`
	PlacementCSV string `yaml:"placementCSV" mapstructure:"placementCSV"`

	// MetricsAddr, when set, serves Prometheus metrics on this address
	// for the duration of the process.
	MetricsAddr string `yaml:"metricsAddr" mapstructure:"metricsAddr"`
}

// Default returns the tuned default run configuration.
func Default() RunConfig {
	return RunConfig{
		NumVMs:            60,
		NumHosts:          10,
		Landscape:         core.LandscapeLarge,
		SwarmSize:         50,
		Iterations:        100,
		Cognitive:         2.0,
		Social:            2.0,
		Inertia:           0.5,
		ScalingFactor:     1.2,
		SLACostFactor:     100.0,
		LoadBalanceWeight: 50.0,
	}
}

// Validate rejects configurations that would make a run fail or produce
// degenerate numerics, before any optimization work begins.
func (c RunConfig) Validate() error {
	if c.NumVMs <= 0 {
		return fmt.Errorf("numVMs must be positive, got %d", c.NumVMs)
	}
	if c.NumHosts <= 0 {
		return fmt.Errorf("numHosts must be positive, got %d", c.NumHosts)
	}
	if !c.Landscape.Valid() {
		return fmt.Errorf("landscape must be in [1, 4], got %d", c.Landscape)
	}
	if c.SwarmSize <= 0 {
		return fmt.Errorf("swarmSize must be positive, got %d", c.SwarmSize)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.ScalingFactor <= 0 {
		return fmt.Errorf("scalingFactor must be positive, got %.2f", c.ScalingFactor)
	}
	if c.SLACostFactor < 0 {
		return fmt.Errorf("slaCostFactor must be non-negative, got %.2f", c.SLACostFactor)
	}
	if c.LoadBalanceWeight < 0 {
		return fmt.Errorf("loadBalanceWeight must be non-negative, got %.2f", c.LoadBalanceWeight)
	}
	if c.Cognitive < 0 || c.Social < 0 {
		return fmt.Errorf("coefficients must be non-negative, got cognitive %.2f, social %.2f",
			c.Cognitive, c.Social)
	}
	if c.Cognitive+c.Social == 0 {
		return fmt.Errorf("cognitive and social coefficients cannot both be zero")
	}
	if c.Inertia < 0 || c.Inertia > 1 {
		return fmt.Errorf("inertiaWeight must be in [0, 1], got %.2f", c.Inertia)
	}
	return nil
}

// SolverConfig converts the run configuration into the optimizer's
// config.
func (c RunConfig) SolverConfig() solver.Config {
	return solver.Config{
		SwarmSize:  c.SwarmSize,
		Iterations: c.Iterations,
		Cognitive:  c.Cognitive,
		Social:     c.Social,
		Inertia:    c.Inertia,
		Weights: solver.Weights{
			ScalingFactor: c.ScalingFactor,
			SLACostFactor: c.SLACostFactor,
			LoadBalance:   c.LoadBalanceWeight,
		},
		Seed:     c.Seed,
		Parallel: c.Parallel,
	}
}

// Load reads configuration through viper: defaults first, then an
// optional yaml file, then SLAPSO_* environment variables, then any
// flags the caller has bound to v. The result is not validated; callers
// run Validate once all sources are merged.
func Load(v *viper.Viper, path string) (RunConfig, error) {
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return RunConfig{}, fmt.Errorf("reading config file %q: %w", path, err)
		}
	}
	var cfg RunConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("unmarshaling configuration: %w", err)
	}
	return cfg, nil
}

// Parse decodes a RunConfig from raw yaml, applying defaults for keys
// the document omits.
func Parse(data []byte) (RunConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parsing run configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d RunConfig) {
	v.SetDefault("numVMs", d.NumVMs)
	v.SetDefault("numHosts", d.NumHosts)
	v.SetDefault("landscape", int(d.Landscape))
	v.SetDefault("swarmSize", d.SwarmSize)
	v.SetDefault("iterations", d.Iterations)
	v.SetDefault("cognitiveCoeff", d.Cognitive)
	v.SetDefault("socialCoeff", d.Social)
	v.SetDefault("inertiaWeight", d.Inertia)
	v.SetDefault("scalingFactor", d.ScalingFactor)
	v.SetDefault("slaCostFactor", d.SLACostFactor)
	v.SetDefault("loadBalanceWeight", d.LoadBalanceWeight)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("parallel", d.Parallel)
	v.SetDefault("demandCSV", d.DemandCSV)
	v.SetDefault("placementCSV", d.PlacementCSV)
	v.SetDefault("metricsAddr", d.MetricsAddr)
}
