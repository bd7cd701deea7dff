package config

import (
	"bufio"
	_ "embed"
	"errors"
	"strings"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded default settings file
func DefaultsContent() string {
	return string(defaultConfig)
}

// embeddedDefaults feeds the embedded file to koanf's TOML parser
type embeddedDefaults struct{}

func (embeddedDefaults) ReadBytes() ([]byte, error) { return defaultConfig, nil }
func (embeddedDefaults) Read() (map[string]interface{}, error) {
	return nil, errors.New("embedded defaults must be parsed")
}

// EnvVar names the environment variable that overrides a dotted key
func EnvVar(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// GenerateConfigContent returns the default settings with every assignment
// commented out and annotated with its environment override, ready to be
// saved as a user settings file
func GenerateConfigContent() string {
	var b strings.Builder
	section := ""
	scanner := bufio.NewScanner(strings.NewReader(DefaultsContent()))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			b.WriteString(line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			section = strings.Trim(trimmed, "[]")
			b.WriteString(line)
		default:
			key, _, _ := strings.Cut(trimmed, "=")
			key = strings.TrimSpace(key)
			if section != "" {
				key = section + "." + key
			}
			b.WriteString("# " + line + "  # " + EnvVar(key))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
