// Package filesystem provides the filesystem helpers shared by the copier,
// the staleness oracle and the task units.
//
// Everything operates on an afero.Fs so production code runs against the OS
// filesystem while tests use an in-memory one.
package filesystem
