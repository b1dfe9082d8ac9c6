// Package cli wires together the Cobra command tree for the branchreview
// binary.
//
// The root command is the review itself: it binds flags, loads configuration,
// builds the git collector and the Ollama generator, runs the review engine,
// and writes the result. The config and version subcommands manage the
// optional config file. Every failure exits with status 1.
package cli
