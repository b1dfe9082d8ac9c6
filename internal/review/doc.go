// Package review drives a single branch review.
//
// The [Engine] lists changed files through a [DiffSource], drops excluded
// paths, concatenates the remaining diffs, and prompts a generator once with
// the template built by [BuildPrompt]. When nothing is left to review it
// returns one of the sentinel texts without contacting the model.
//
// Unreachable generation services are not fatal: the review text becomes a
// placeholder starting with [GenerationErrorPrefix]. Every other failure is
// returned as [*Error].
package review
