// Package tasks implements the conditional task engine.
//
// A Unit has a name, a staleness predicate and an action. Executing a unit
// runs the action only when the predicate says the unit is stale, so every
// unit is safe to run again. Units are grouped into a Set and executed in
// insertion order.
//
// Unit kinds:
//
//	CopyUnit   install a package with a copy policy, optionally rendering a template
//	EnvUnit    set an environment variable when it is absent
//	ShellUnit  run a shell command unless one of its marker paths exists
//	ToolUnit   install a toolchain tool when its binary is missing
//	LinkUnit   point a symlink at a package file
//	GeneralUnit an ad-hoc unit built from two functions
//
// Errors are classified by IsFatal. Configuration and filesystem errors
// abort the set; a failed external command only marks its unit as failed.
package tasks
