// Package filter decides which changed files take part in a review.
//
// The exclusion rules are a fixed, compiled-in table of regular expressions
// matched case-sensitively against the repository-relative path. A file is
// reviewed only when none of the rules match. Directory rules match a
// slash-delimited segment ("/generated/"), never a bare substring.
package filter
