// Package shell executes step command lines through the system shell.
package shell
