// Package output formats review results for display or machine consumption.
//
// Two formats are supported:
//   - text -- the reviewed file list and the review text framed by rule lines
//   - json -- the full [review.Result] as indented JSON
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteResult] to pick the destination (file or stdout) as well.
package output
