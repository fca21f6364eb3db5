// Package config manages user-level settings stored at
// ~/.packagesmith/config.yaml and PACKAGESMITH_* environment variables.
package config
