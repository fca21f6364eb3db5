// Package manifest parses, validates, and converts provision.yaml and
// provision.toml files into provisioner sets.
package manifest
