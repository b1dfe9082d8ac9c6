// Package redact scrubs likely secrets from a diff before it is sent to the
// model.
//
// Detection uses regex heuristics covering common secret shapes: private key
// headers, AWS keys, JWTs, bearer tokens, provider tokens (GitHub, Slack,
// Anthropic, OpenAI), database connection strings with embedded passwords, and
// key/secret/password assignments. Redaction is opt-in; by default the diff is
// forwarded untouched.
package redact
