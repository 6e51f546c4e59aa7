package sand

import (
	"strconv"

	"falling-sand/internal/core"
)

// Parameters returns the live configuration grouped for the HUD.
func (s *Sandbox) Parameters() core.ParameterSnapshot {
	cfg := s.world.Config()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("chunk_size", "Chunk size", cfg.ChunkSize),
				intParam("chunks_x", "Chunks X", cfg.ChunksX),
				intParam("chunks_y", "Chunks Y", cfg.ChunksY),
				int64Param("seed", "Seed", cfg.Seed),
			},
		},
		{
			Name: "Brush",
			Params: []core.Parameter{
				stringParam("kind", "Kind", s.selected.String()),
				intParam("radius", "Radius", s.radius),
				boolParam("brush_overwrite", "Overwrite", cfg.Params.BrushOverwrite),
			},
		},
	}
	for _, name := range []string{groupScheduler, groupMotion, groupReactions, groupPlant} {
		group := core.ParameterGroup{Name: name}
		if name == groupScheduler {
			group.Params = append(group.Params, boolParam("skip_quiescent", "Skip quiescent", cfg.Params.SkipQuiescent))
		}
		for _, f := range intFields {
			if f.group == name {
				group.Params = append(group.Params, intParam(f.key, f.label, *f.ref(&cfg.Params)))
			}
		}
		for _, f := range floatFields {
			if f.group == name {
				group.Params = append(group.Params, floatParam(f.key, f.label, *f.ref(&cfg.Params)))
			}
		}
		groups = append(groups, group)
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable from the HUD.
func (s *Sandbox) ParameterControls() []core.ParameterControl {
	controls := make([]core.ParameterControl, 0, len(intFields)+len(floatFields)+3)
	controls = append(controls,
		core.ParameterControl{
			Key: "radius", Label: "Radius", Type: core.ParamTypeInt,
			Step: 1, Min: 0, Max: 64, HasMin: true, HasMax: true,
		},
		core.ParameterControl{Key: "brush_overwrite", Label: "Overwrite", Type: core.ParamTypeBool},
		core.ParameterControl{Key: "skip_quiescent", Label: "Skip quiescent", Type: core.ParamTypeBool},
	)
	for _, f := range intFields {
		controls = append(controls, core.ParameterControl{
			Key: f.key, Label: f.label, Type: core.ParamTypeInt,
			Step: f.step, Min: f.min, Max: f.max, HasMin: true, HasMax: f.hasMax,
		})
	}
	for _, f := range floatFields {
		controls = append(controls, core.ParameterControl{
			Key: f.key, Label: f.label, Type: core.ParamTypeFloat,
			Step: f.step, Min: f.min, Max: f.max, HasMin: true, HasMax: f.hasMax,
		})
	}
	return controls
}

// SetIntParameter updates an integer tunable. Values outside the field's
// bounds, or that would leave the configuration invalid, are rejected.
func (s *Sandbox) SetIntParameter(key string, value int) bool {
	if key == "radius" {
		if value < 0 || value > 64 {
			return false
		}
		s.SetBrushRadius(value)
		return true
	}
	for _, f := range intFields {
		if f.key != key {
			continue
		}
		if float64(value) < f.min || (f.hasMax && float64(value) > f.max) {
			return false
		}
		next := s.world.params
		*f.ref(&next) = value
		return s.apply(next)
	}
	return false
}

// SetFloatParameter updates a floating point tunable.
func (s *Sandbox) SetFloatParameter(key string, value float64) bool {
	for _, f := range floatFields {
		if f.key != key {
			continue
		}
		if value < f.min || (f.hasMax && value > f.max) {
			return false
		}
		next := s.world.params
		*f.ref(&next) = value
		return s.apply(next)
	}
	return false
}

// SetBoolParameter toggles a boolean tunable.
func (s *Sandbox) SetBoolParameter(key string, value bool) bool {
	next := s.world.params
	switch key {
	case "skip_quiescent":
		next.SkipQuiescent = value
	case "brush_overwrite":
		next.BrushOverwrite = value
	default:
		return false
	}
	return s.apply(next)
}

// apply swaps in new params in place so chunks holding a pointer to them
// observe the change on their next update.
func (s *Sandbox) apply(next Params) bool {
	cfg := s.world.Config()
	cfg.Params = next
	if err := cfg.Validate(); err != nil {
		return false
	}
	s.world.params = next
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Value: value,
	}
}
