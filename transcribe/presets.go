package transcribe

// DefaultPreset is used when no model is configured.
const DefaultPreset = "quality"

// Preset maps a friendly name to a faster-whisper model.
type Preset struct {
	Name  string
	Model string
}

// Presets lists the built-in model presets, fastest first.
var Presets = []Preset{
	{Name: "fast", Model: "tiny.en"},
	{Name: "balanced", Model: "base.en"},
	{Name: "quality", Model: "distil-large-v3"},
}

// ResolveModel returns the model for a preset name. Any other name is passed
// through unchanged so every faster-whisper model stays usable.
func ResolveModel(name string) string {
	if name == "" {
		name = DefaultPreset
	}
	for _, p := range Presets {
		if p.Name == name {
			return p.Model
		}
	}
	return name
}
