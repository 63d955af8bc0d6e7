// Package testutil provides utilities for testing dotman components.
//
// Key components:
//   - TestEnvironment: a dotfiles root, a home directory and an environment
//     map on either an in-memory or a temp-dir backed filesystem
//   - CountingFs: an afero.Fs wrapper recording stats and mutations, used to
//     assert that an up-to-date run touches nothing
//   - RecordingReporter: collects progress lines of a run
//   - Package fixtures: inline file trees for common packages
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated only where afero's in-memory filesystem falls short,
//     symlinks for example
//   - All test data should be defined inline, not in external files
package testutil
