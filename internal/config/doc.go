// Package config defines the crawl configuration, its validation rules,
// and the optional per-host YAML configuration file.
package config
