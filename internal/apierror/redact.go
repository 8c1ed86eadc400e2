// Package apierror – message redaction.
//
// Every free-text message sourced from an underlying error is passed through
// Redact before it is placed into an envelope. Matching is whole-message:
// if any sensitive pattern occurs anywhere in the text, the entire message
// is replaced with "[MASKED]" rather than masking only the matched span.
// Field names, object names, and status codes are never redacted.
package apierror

import "regexp"

// masked replaces the whole message when a sensitive pattern matches.
const masked = "[MASKED]"

// sensitivePatterns is the fixed, ordered rule list applied by Redact.
// Matching is case-sensitive. Compiled once at process start and never
// mutated afterwards.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`password`),
	regexp.MustCompile(`secret`),
	regexp.MustCompile(`token`),
	regexp.MustCompile(`connection string`),
}

// Redact returns message unchanged when no sensitive pattern matches, and
// the literal "[MASKED]" when any pattern matches anywhere in the message.
func Redact(message string) string {
	for _, re := range sensitivePatterns {
		if re.MatchString(message) {
			return masked
		}
	}
	return message
}
