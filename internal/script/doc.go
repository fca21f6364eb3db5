// Package script turns manifest snippets into provisioning callbacks:
// JavaScript and text/template content generators, and expr expressions
// for question defaults and conditions.
package script
