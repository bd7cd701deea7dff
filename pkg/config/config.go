package config

import (
	"time"
)

// Config holds nox's settings
type Config struct {
	Fetch   FetchConfig   `koanf:"fetch"`
	Store   StoreConfig   `koanf:"store"`
	Sync    SyncConfig    `koanf:"sync"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// FetchConfig tunes archive downloads
type FetchConfig struct {
	Retries int           `koanf:"retries"`
	Backoff time.Duration `koanf:"backoff"`
	Timeout time.Duration `koanf:"timeout"`
}

// StoreConfig locates the package store
type StoreConfig struct {
	Dir string `koanf:"dir"`
}

// SyncConfig tunes sync execution
type SyncConfig struct {
	Jobs int `koanf:"jobs"`
}

// MetricsConfig controls the Prometheus textfile output
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	File    string `koanf:"file"`
}
