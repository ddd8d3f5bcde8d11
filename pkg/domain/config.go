package domain

// Default configuration values.
const (
	DefaultHintTag     = "_CM"
	DefaultSceneFormat = "tscn"
)

// Config holds the values a host exposes for the importer. It is passed to
// each component explicitly at invocation time.
type Config struct {
	// HintTag is the name suffix that marks a node for replacement.
	// An empty tag matches every name.
	HintTag string `json:"hint_tag" yaml:"hint_tag" toml:"hint_tag" mapstructure:"hint_tag"`

	// SaveAsTSCN enables the persistence step.
	SaveAsTSCN bool `json:"save_as_tscn" yaml:"save_as_tscn" toml:"save_as_tscn" mapstructure:"save_as_tscn"`

	// DebugMode enables the per-replacement trace and the resolved save path.
	DebugMode bool `json:"debug_mode" yaml:"debug_mode" toml:"debug_mode" mapstructure:"debug_mode"`

	// TriggerKind is the kind given to replacement nodes.
	TriggerKind Kind `json:"trigger_kind" yaml:"trigger_kind" toml:"trigger_kind" mapstructure:"trigger_kind"`

	// SceneFormat selects the scene file codec ("tscn", "json" or "yaml").
	SceneFormat string `json:"scene_format" yaml:"scene_format" toml:"scene_format" mapstructure:"scene_format"`
}

// DefaultConfig returns the configuration used when the host sets nothing.
func DefaultConfig() Config {
	return Config{
		HintTag:     DefaultHintTag,
		SaveAsTSCN:  true,
		DebugMode:   true,
		TriggerKind: KindArea3D,
		SceneFormat: DefaultSceneFormat,
	}
}
