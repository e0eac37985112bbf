// Package versionfile reads and writes the version recorded in generated
// or manifest files: Python modules, plain text, JSON, YAML and TOML.
package versionfile
