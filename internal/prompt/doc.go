// Package prompt asks provisioning questions and write confirmations on a
// terminal, falling back to defaults when no terminal is attached.
package prompt
