// Package output renders what a run did for humans and machines.
//
// Human output is written as markup, plain text with semantic tags such as
// <Performed>gpg</Performed>, and expanded with the lipgloss styles from
// pkg/output/styles. When colour is off the tags are dropped, so the same
// line reads "✅ gpg" in a pipe.
//
// Machine output encodes a tasks.Report as json, yaml, toml or xml.
package output
