package target

import (
	"fmt"
	"os"
	"strings"

	"hooksend/internal/payload"
	"hooksend/internal/security"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads and validates the targets configuration from a YAML file
func LoadConfig(configPath string) (map[string]*Target, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	// Initialize Targets map if it's nil (happens with empty YAML files)
	if config.Targets == nil {
		config.Targets = make(map[string]TargetConfig)
	}

	targets := make(map[string]*Target)
	for name, targetConfig := range config.Targets {
		errors := ValidateTargetConfig(name, targetConfig)
		if len(errors) > 0 {
			return nil, fmt.Errorf("invalid configuration for target '%s':\n%s",
				name, strings.Join(errors, "\n"))
		}

		// Apply defaults
		ref := targetConfig.Ref
		if ref == "" {
			ref = payload.DefaultRef
		}

		repository := targetConfig.Repository
		if repository == "" {
			repository = payload.DefaultRepository
		}

		sender := targetConfig.Sender
		if sender == "" {
			sender = payload.DefaultSender
		}

		targets[name] = &Target{
			Name:       name,
			URL:        targetConfig.URL,
			Secret:     targetConfig.Secret,
			HookID:     targetConfig.HookID,
			Ref:        ref,
			Repository: repository,
			Sender:     sender,
		}
	}

	return targets, nil
}

// ValidateTargetConfig validates a single target configuration
func ValidateTargetConfig(name string, config TargetConfig) []string {
	var errors []string

	if config.URL == "" {
		errors = append(errors, fmt.Sprintf("  - Target '%s': missing required 'url' field", name))
	} else if err := security.ValidateWebhookURL(config.URL); err != nil {
		errors = append(errors, fmt.Sprintf("  - Target '%s': %v", name, err))
	}

	if config.Secret == "" {
		errors = append(errors, fmt.Sprintf("  - Target '%s': missing required 'secret' field", name))
	} else if err := security.ValidateConfiguredSecret(config.Secret); err != nil {
		errors = append(errors, fmt.Sprintf("  - Target '%s': %v", name, err))
	}

	if config.HookID == "" {
		errors = append(errors, fmt.Sprintf("  - Target '%s': missing required 'hook_id' field", name))
	}

	return errors
}
