package target

// Target is a validated named webhook destination
type Target struct {
	Name       string
	URL        string
	Secret     string
	HookID     string
	Ref        string
	Repository string
	Sender     string
}

// TargetConfig represents the YAML configuration for a target
type TargetConfig struct {
	URL        string `yaml:"url"`
	Secret     string `yaml:"secret"`
	HookID     string `yaml:"hook_id"`
	Ref        string `yaml:"ref"`
	Repository string `yaml:"repository"`
	Sender     string `yaml:"sender"`
}

// Config represents the root configuration structure
type Config struct {
	Targets map[string]TargetConfig `yaml:"targets"`
}
