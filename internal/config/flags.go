package config

import (
	"flag"
	"fmt"
	"strings"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set validates and appends one key=value pair.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs keyed by trimmed key. Later pairs win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

// Flags are the command-line options common to the binaries. Zero values
// leave the file or default setting untouched.
type Flags struct {
	ConfigPath string
	DumpPath   string
	Scale      int
	TPS        int
	Seed       int64
	LogLevel   string
	Overrides  KVList
}

// Bind attaches the flags to fs.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "settings file (.yaml or .toml)")
	fs.StringVar(&f.DumpPath, "dump-config", f.DumpPath, "write the effective settings to this file and continue")
	fs.IntVar(&f.Scale, "scale", f.Scale, "pixel scale multiplier")
	fs.IntVar(&f.TPS, "tps", f.TPS, "ticks per second")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "seed for simulation reset")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "log level (debug, info, warn, error)")
	fs.Var(&f.Overrides, "set", "simulation parameter override in key=value form (repeatable)")
}

// Resolve loads the settings file and applies the flag overrides on top.
func (f *Flags) Resolve() (Settings, error) {
	s, err := Load(f.ConfigPath)
	if err != nil {
		return s, err
	}
	if f.Scale > 0 {
		s.App.Scale = f.Scale
	}
	if f.TPS > 0 {
		s.App.TPS = f.TPS
	}
	if f.Seed != 0 {
		s.Sim.Seed = f.Seed
	}
	if f.LogLevel != "" {
		s.Logging.Level = f.LogLevel
	}
	if len(f.Overrides) > 0 {
		sim, err := s.Sim.Apply(f.Overrides.Map())
		if err != nil {
			return s, fmt.Errorf("applying -set overrides: %w", err)
		}
		s.Sim = sim
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	if f.DumpPath != "" {
		if err := s.Write(f.DumpPath); err != nil {
			return s, err
		}
	}
	return s, nil
}
