// Package types defines the domain model shared by the installer packages:
// packages, install specs with their copy policy, and template specs.
//
// CopyPolicy is a closed sum type. Exactly one of Clean, Merge or Choose is
// attached to an InstallSpec, and only Choose carries a path, so a spec
// cannot ask for a merge of a single chosen file.
package types
