// Package paths provides centralized path handling for dotman.
//
// It covers two concerns:
//
//   - Resolution of configuration path strings: `$NAME` environment
//     references are substituted, a leading `~` is expanded, and the result is
//     made absolute and cleaned. Resolution does not touch the filesystem;
//     Exists performs the separate stat.
//   - Location of the dotfiles root and the directories derived from it
//     (packages directory, manifest candidates).
//
// # Environment Variables
//
//   - DOTMAN_ROOT: location of the dotfiles repository. When unset the git
//     toplevel of the working directory is used, then the working directory.
//   - HOME: used for `~` expansion and by most `$HOME/...` destinations.
//
// # Undefined variables
//
// A `$NAME` token that references an unset variable resolves to the empty
// string, so `$NOPE/foo` becomes `/foo`. This keeps the historical behaviour
// of the installer; the resolver logs a warning whenever it happens.
//
// # Usage
//
//	env := paths.OSEnv{}
//	dest := paths.Resolve("$XDG_CONFIG_HOME/fish", env)
//	if paths.Exists(fs, "$HOME/.cargo/bin/rg", env) {
//	    // ...
//	}
package paths
