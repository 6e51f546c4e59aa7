package sand

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Params holds the tunable probabilities, thresholds and limits of the
// particle rules and the chunk scheduler.
type Params struct {
	SkipQuiescent     bool    `yaml:"skip_quiescent" toml:"skip_quiescent"`
	WakeInterval      int     `yaml:"wake_interval" toml:"wake_interval"`
	ReshuffleInterval int     `yaml:"reshuffle_interval" toml:"reshuffle_interval"`
	BrushOverwrite    bool    `yaml:"brush_overwrite" toml:"brush_overwrite"`
	ColorJitter       float64 `yaml:"color_jitter" toml:"color_jitter"`

	Gravity    float64 `yaml:"gravity" toml:"gravity"`
	MaxSpeed   float64 `yaml:"max_speed" toml:"max_speed"`
	SpeedDecay float64 `yaml:"speed_decay" toml:"speed_decay"`

	SandSinkChance      float64 `yaml:"sand_sink_chance" toml:"sand_sink_chance"`
	SteamCondenseChance float64 `yaml:"steam_condense_chance" toml:"steam_condense_chance"`

	AcidWaterChance    float64 `yaml:"acid_water_chance" toml:"acid_water_chance"`
	AcidReplaceChance  float64 `yaml:"acid_replace_chance" toml:"acid_replace_chance"`
	AcidDissolveChance float64 `yaml:"acid_dissolve_chance" toml:"acid_dissolve_chance"`

	PlantEnergy            int     `yaml:"plant_energy" toml:"plant_energy"`
	PlantGrowChance        float64 `yaml:"plant_grow_chance" toml:"plant_grow_chance"`
	PlantAbsorbChance      float64 `yaml:"plant_absorb_chance" toml:"plant_absorb_chance"`
	PlantCrowdSoft         int     `yaml:"plant_crowd_soft" toml:"plant_crowd_soft"`
	PlantCrowdMax          int     `yaml:"plant_crowd_max" toml:"plant_crowd_max"`
	PlantCrowdRefuseChance float64 `yaml:"plant_crowd_refuse_chance" toml:"plant_crowd_refuse_chance"`
	PlantUpWeight          int     `yaml:"plant_up_weight" toml:"plant_up_weight"`
	PlantDiagonalWeight    int     `yaml:"plant_diagonal_weight" toml:"plant_diagonal_weight"`
	PlantSideWeight        int     `yaml:"plant_side_weight" toml:"plant_side_weight"`
}

// Config controls the world layout and rule parameters.
type Config struct {
	// ChunkSize is the side length of every chunk in cells.
	ChunkSize int `yaml:"chunk_size" toml:"chunk_size"`
	// ChunksX and ChunksY bound the addressable world, starting at the origin.
	ChunksX int   `yaml:"chunks_x" toml:"chunks_x"`
	ChunksY int   `yaml:"chunks_y" toml:"chunks_y"`
	Seed    int64 `yaml:"seed" toml:"seed"`

	Params Params `yaml:"params" toml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 500,
		ChunksX:   1,
		ChunksY:   1,
		Seed:      1337,
		Params: Params{
			SkipQuiescent:     true,
			WakeInterval:      30,
			ReshuffleInterval: 0,
			BrushOverwrite:    false,
			ColorJitter:       6,

			Gravity:    0.1,
			MaxSpeed:   4,
			SpeedDecay: 0.5,

			SandSinkChance:      0.3,
			SteamCondenseChance: 0.002,

			AcidWaterChance:    0.05,
			AcidReplaceChance:  0.2,
			AcidDissolveChance: 0.01,

			PlantEnergy:            15,
			PlantGrowChance:        0.02,
			PlantAbsorbChance:      0.05,
			PlantCrowdSoft:         2,
			PlantCrowdMax:          3,
			PlantCrowdRefuseChance: 0.5,
			PlantUpWeight:          4,
			PlantDiagonalWeight:    2,
			PlantSideWeight:        1,
		},
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs),
// starting from the defaults. Unparseable values are ignored.
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().With(cfg)
}

// With returns a copy of c with the provided key/value overrides applied.
func (c Config) With(kv map[string]string) Config {
	if kv == nil {
		return c
	}
	if v, ok := kv["chunk_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ChunkSize = parsed
		}
	}
	if v, ok := kv["chunks_x"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ChunksX = parsed
		}
	}
	if v, ok := kv["chunks_y"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ChunksY = parsed
		}
	}
	if v, ok := kv["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := kv["skip_quiescent"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.SkipQuiescent = parsed
		}
	}
	if v, ok := kv["brush_overwrite"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.BrushOverwrite = parsed
		}
	}
	for _, f := range intFields {
		if v, ok := kv[f.key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && float64(parsed) >= f.min {
				*f.ref(&c.Params) = parsed
			}
		}
	}
	for _, f := range floatFields {
		if v, ok := kv[f.key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= f.min {
				*f.ref(&c.Params) = parsed
			}
		}
	}
	return c
}

// Apply is With for user-supplied overrides: keys it does not know and
// values that would be ignored are reported together. The returned config
// carries every override that did apply.
func (c Config) Apply(kv map[string]string) (Config, error) {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var errs []error
	for _, k := range keys {
		if err := checkOverride(k, kv[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return c.With(kv), errors.Join(errs...)
}

func checkOverride(key, value string) error {
	var err error
	switch key {
	case "chunk_size", "chunks_x", "chunks_y":
		var n int
		if n, err = strconv.Atoi(value); err == nil && n <= 0 {
			err = errors.New("must be positive")
		}
	case "seed":
		_, err = strconv.ParseInt(value, 10, 64)
	case "skip_quiescent", "brush_overwrite":
		_, err = strconv.ParseBool(value)
	default:
		if f, ok := findIntField(key); ok {
			var n int
			if n, err = strconv.Atoi(value); err == nil && float64(n) < f.min {
				err = fmt.Errorf("below minimum %g", f.min)
			}
			break
		}
		if f, ok := findFloatField(key); ok {
			var v float64
			if v, err = strconv.ParseFloat(value, 64); err == nil && v < f.min {
				err = fmt.Errorf("below minimum %g", f.min)
			}
			break
		}
		return fmt.Errorf("unknown parameter %q", key)
	}
	if err != nil {
		return fmt.Errorf("parameter %s=%q: %w", key, value, err)
	}
	return nil
}

func findIntField(key string) (intField, bool) {
	for _, f := range intFields {
		if f.key == key {
			return f, true
		}
	}
	return intField{}, false
}

func findFloatField(key string) (floatField, bool) {
	for _, f := range floatFields {
		if f.key == key {
			return f, true
		}
	}
	return floatField{}, false
}

// Validate reports configuration errors. A world cannot be built from an
// invalid configuration.
func (c Config) Validate() error {
	var errs []error
	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize))
	}
	if c.ChunksX <= 0 || c.ChunksY <= 0 {
		errs = append(errs, fmt.Errorf("chunks_x and chunks_y must be positive, got %dx%d", c.ChunksX, c.ChunksY))
	}
	for _, f := range floatFields {
		v := *f.ref(&c.Params)
		if v < f.min || (f.hasMax && v > f.max) {
			errs = append(errs, fmt.Errorf("%s out of range [%g, %g]: %g", f.key, f.min, f.max, v))
		}
	}
	for _, f := range intFields {
		v := *f.ref(&c.Params)
		if float64(v) < f.min {
			errs = append(errs, fmt.Errorf("%s must be >= %g, got %d", f.key, f.min, v))
		}
	}
	p := c.Params
	if p.PlantCrowdSoft > p.PlantCrowdMax {
		errs = append(errs, fmt.Errorf("plant_crowd_soft (%d) exceeds plant_crowd_max (%d)", p.PlantCrowdSoft, p.PlantCrowdMax))
	}
	if p.PlantUpWeight+p.PlantDiagonalWeight+p.PlantSideWeight <= 0 {
		errs = append(errs, errors.New("plant growth weights must not all be zero"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid sand config: %w", errors.Join(errs...))
	}
	return nil
}

type floatField struct {
	key, label string
	group      string
	ref        func(*Params) *float64
	min, max   float64
	hasMax     bool
	step       float64
}

type intField struct {
	key, label string
	group      string
	ref        func(*Params) *int
	min, max   float64
	hasMax     bool
	step       float64
}

const (
	groupScheduler = "Scheduler"
	groupMotion    = "Motion"
	groupReactions = "Reactions"
	groupPlant     = "Plant"
)

var floatFields = []floatField{
	{key: "color_jitter", label: "Color jitter", group: groupScheduler, ref: func(p *Params) *float64 { return &p.ColorJitter }, max: 50, hasMax: true, step: 1},
	{key: "gravity", label: "Gravity", group: groupMotion, ref: func(p *Params) *float64 { return &p.Gravity }, max: 4, hasMax: true, step: 0.05},
	{key: "max_speed", label: "Max speed", group: groupMotion, ref: func(p *Params) *float64 { return &p.MaxSpeed }, max: 16, hasMax: true, step: 0.5},
	{key: "speed_decay", label: "Speed decay", group: groupMotion, ref: func(p *Params) *float64 { return &p.SpeedDecay }, max: 1, hasMax: true, step: 0.05},
	{key: "sand_sink_chance", label: "Sand sink chance", group: groupReactions, ref: func(p *Params) *float64 { return &p.SandSinkChance }, max: 1, hasMax: true, step: 0.05},
	{key: "steam_condense_chance", label: "Steam condense", group: groupReactions, ref: func(p *Params) *float64 { return &p.SteamCondenseChance }, max: 1, hasMax: true, step: 0.001},
	{key: "acid_water_chance", label: "Acid/water chance", group: groupReactions, ref: func(p *Params) *float64 { return &p.AcidWaterChance }, max: 1, hasMax: true, step: 0.01},
	{key: "acid_replace_chance", label: "Acid replace", group: groupReactions, ref: func(p *Params) *float64 { return &p.AcidReplaceChance }, max: 1, hasMax: true, step: 0.05},
	{key: "acid_dissolve_chance", label: "Acid dissolve", group: groupReactions, ref: func(p *Params) *float64 { return &p.AcidDissolveChance }, max: 1, hasMax: true, step: 0.005},
	{key: "plant_grow_chance", label: "Plant grow", group: groupPlant, ref: func(p *Params) *float64 { return &p.PlantGrowChance }, max: 1, hasMax: true, step: 0.005},
	{key: "plant_absorb_chance", label: "Plant absorb", group: groupPlant, ref: func(p *Params) *float64 { return &p.PlantAbsorbChance }, max: 1, hasMax: true, step: 0.005},
	{key: "plant_crowd_refuse_chance", label: "Crowd refuse", group: groupPlant, ref: func(p *Params) *float64 { return &p.PlantCrowdRefuseChance }, max: 1, hasMax: true, step: 0.05},
}

var intFields = []intField{
	{key: "wake_interval", label: "Wake interval", group: groupScheduler, ref: func(p *Params) *int { return &p.WakeInterval }, max: 600, hasMax: true, step: 5},
	{key: "reshuffle_interval", label: "Reshuffle interval", group: groupScheduler, ref: func(p *Params) *int { return &p.ReshuffleInterval }, max: 600, hasMax: true, step: 10},
	{key: "plant_energy", label: "Plant energy", group: groupPlant, ref: func(p *Params) *int { return &p.PlantEnergy }, max: 100, hasMax: true, step: 1},
	{key: "plant_crowd_soft", label: "Crowd soft", group: groupPlant, ref: func(p *Params) *int { return &p.PlantCrowdSoft }, max: 8, hasMax: true, step: 1},
	{key: "plant_crowd_max", label: "Crowd max", group: groupPlant, ref: func(p *Params) *int { return &p.PlantCrowdMax }, max: 8, hasMax: true, step: 1},
	{key: "plant_up_weight", label: "Grow up weight", group: groupPlant, ref: func(p *Params) *int { return &p.PlantUpWeight }, max: 16, hasMax: true, step: 1},
	{key: "plant_diagonal_weight", label: "Grow diag weight", group: groupPlant, ref: func(p *Params) *int { return &p.PlantDiagonalWeight }, max: 16, hasMax: true, step: 1},
	{key: "plant_side_weight", label: "Grow side weight", group: groupPlant, ref: func(p *Params) *int { return &p.PlantSideWeight }, max: 16, hasMax: true, step: 1},
}
