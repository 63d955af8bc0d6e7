// Package config loads the dotman manifest and per-package configuration.
//
// The manifest (dotman.toml, or dotman.yaml) is layered with koanf:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the manifest file, parsed as TOML or YAML by extension
//  3. DOTMAN_SETTINGS_* environment variables
//
// It declares settings, toolchains, profiles and groups of tasks. A
// profile selects groups; each group is an ordered list of task entries
// that the engine turns into units.
//
// Packages may carry a .dotman.toml with ignore rules, decoded with
// go-toml.
package config
