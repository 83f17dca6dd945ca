// Package config loads and merges the civicwatch configuration from three
// layers: environment variables, command-line flags, and an optional JSON
// file. Environment variables take precedence over flags, which take
// precedence over the file. The merged result is validated before use.
package config
