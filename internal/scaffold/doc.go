// Package scaffold holds the built-in provisioner set that bootstraps a new
// provisioner package.
package scaffold
