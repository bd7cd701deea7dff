// Package config loads nox's settings and sync configuration files.
//
// Settings are layered with koanf: the embedded defaults, then the user's
// config file, then NOX_* environment variables. A sync configuration is a
// separate TOML or YAML file naming the packages a machine should have.
package config
