// Package config builds the coverage job configuration. A Record is resolved
// from CI provider environment variables, then explicit CLI values are merged
// on top: provider variables < common variables < CLI flags. The package also
// loads uploader settings from YAML files, environment variables and CLI
// flags with precedence: CLI flags > YAML config > Environment variables >
// Defaults.
package config
