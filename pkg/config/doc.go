// Package config loads driver configuration from YAML files.
package config
