// Package branding holds the names the binary presents itself under. They
// come from branding.yaml, embedded at build time.
package branding

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

// Identity is the parsed branding.yaml.
type Identity struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
}

// parse decodes data and checks the fields other packages build names from.
func parse(data []byte) (Identity, error) {
	var id Identity
	if err := yaml.Unmarshal(data, &id); err != nil {
		return Identity{}, fmt.Errorf("parsing branding.yaml: %w", err)
	}
	for field, v := range map[string]string{"cli_name": id.CLIName, "home_dir": id.HomeDir, "env_prefix": id.EnvPrefix} {
		if strings.TrimSpace(v) == "" {
			return Identity{}, fmt.Errorf("branding.yaml: %s is empty", field)
		}
	}
	if id.DisplayName == "" {
		id.DisplayName = id.CLIName
	}
	id.EnvPrefix = strings.ToUpper(id.EnvPrefix)
	return id, nil
}

// current panics if the embedded file is broken.
var current = sync.OnceValue(func() Identity {
	id, err := parse(rawBranding)
	if err != nil {
		panic(err)
	}
	return id
})

// Get returns the embedded identity.
func Get() Identity { return current() }

func CLIName() string     { return current().CLIName }
func DisplayName() string { return current().DisplayName }
func Description() string { return current().Description }

// HomeDir is the dot-directory under $HOME holding config.yaml.
func HomeDir() string { return current().HomeDir }

func EnvPrefix() string { return current().EnvPrefix }

// EnvVar prefixes suffix: EnvVar("home") is "PACKAGESMITH_HOME".
func EnvVar(suffix string) string {
	return current().EnvPrefix + "_" + strings.ToUpper(suffix)
}
