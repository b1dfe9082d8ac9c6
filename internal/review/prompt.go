package review

import (
	"strings"
)

const promptHeader = `You are an expert senior software engineer performing a thorough code review of the changes on a feature branch.

Review the diff below and focus on:
1. Code quality and readability
2. Potential bugs and logic errors
3. Security vulnerabilities
4. Performance problems
5. Adherence to best practices and language idioms
6. Maintainability and design
7. Missing or inadequate test coverage

For every issue you report, include:
- File: the file path
- Line: the line number or range from the diff hunk
- Severity: Critical, High, Medium, or Low
- Description: what is wrong and why it matters
- Suggested Fix: a concrete change, with code where helpful

Only comment on the lines changed in the diff.

`

const promptFooter = `

Format your response with exactly these sections:

## Summary
A short overview of the changes and their overall quality.

## Critical Issues
Bugs, security holes, or data-loss risks that must be fixed before merging.

## Improvements Needed
Non-blocking problems that should still be addressed.

## Best Practices
Style, idiom, and maintainability suggestions.

## Security & Performance
Security and performance observations not already covered above.

If a section has nothing to report, write "None." under it.`

// BuildPrompt wraps the combined diff in the fixed review instructions.
// The diff is embedded verbatim.
func BuildPrompt(diff string) string {
	var b strings.Builder
	b.Grow(len(promptHeader) + len(diff) + len(promptFooter) + 32)
	b.WriteString(promptHeader)
	b.WriteString("```diff\n")
	b.WriteString(diff)
	b.WriteString("\n```")
	b.WriteString(promptFooter)
	return b.String()
}

// CombineDiffs joins per-file diffs in order, separated by a blank line.
func CombineDiffs(diffs []string) string {
	return strings.Join(diffs, "\n\n")
}
