// Branchreview asks a locally hosted LLM to review the changes on a git branch.
//
// It lists the files that differ between a branch and its base, drops
// generated and release-bookkeeping files, fetches each remaining file's diff
// in parallel, and sends the combined diff to an Ollama server in a single
// request. The review is printed to stdout; diagnostics go to stderr.
//
// Usage:
//
//	branchreview --repo=~/code/app --branch=feature/login
//	branchreview --repo=. --branch=fix/race --base=develop --model=qwen2.5-coder
//	branchreview --repo=. --branch=topic --format=json --out=review.json
//	branchreview config init
//
// OLLAMA_HOST overrides the default server at http://localhost:11434.
package main
