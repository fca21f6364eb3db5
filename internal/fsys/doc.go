// Package fsys provides the project file systems the provisioning engine
// writes through: the real disk rooted at a project directory and an
// in-memory tree for plans and tests.
package fsys
