// Package config loads and merges branchreview configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (BRANCHREVIEW_BASE, BRANCHREVIEW_MODEL, ...),
//     including any set by a .env file in the working directory
//  3. Config file ($XDG_CONFIG_HOME/branchreview/config.json)
//  4. Built-in defaults
//
// The repository path and branch are per-run values and only come from flags.
// Use [Load] to obtain a merged [Config] and [Config.Validate] to check it.
package config
