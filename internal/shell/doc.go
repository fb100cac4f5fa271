// Package shell puts bvm's shim directory on a shell's PATH.
//
// Users add one line to their shell config:
//
//	eval "$(bvm activate bash)"
//	eval "$(bvm activate zsh)"
//	bvm activate fish | source
//
// `bvm activate` prints a script that prepends the shim directory to PATH
// unless it is already there, so sourcing it repeatedly is harmless.
//
// # Shell Detection
//
// When no shell is named, detection tries:
//  1. $SHELL environment variable (most reliable)
//  2. The parent process name
package shell
