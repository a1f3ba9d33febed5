// Package textnorm canonicalizes text so that superficial encoding and
// formatting differences do not affect comparison. Both predicted and
// ground-truth strings must pass through Normalize before any metric is
// computed; normalizing only one side skews every score.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode NFKC normalization, collapses every whitespace
// run (including newlines) to a single ASCII space, and trims the result.
// Full-width digits and latin letters fold to their ASCII forms under NFKC,
// which matters for mixed Japanese/ASCII corpora.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
