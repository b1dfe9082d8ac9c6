// Package gitctx lists and diffs the files changed on a branch of a local git
// repository.
//
// A [Collector] shells out to git with the symmetric range base...branch, so
// only the changes made on the branch since it forked are reported. Per-file
// diffs are fetched concurrently with a bounded number of git processes and
// returned in the order the files were requested.
//
// Git writes warnings to stderr even on success, so stderr is only treated as
// a failure when the command produced no stdout. Such failures are reported as
// [VcsError].
package gitctx
