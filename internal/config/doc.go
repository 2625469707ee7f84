// Package config loads application settings from defaults, an optional YAML
// file, an optional .env file and LEXIS_-prefixed environment variables, then
// validates them.
package config
