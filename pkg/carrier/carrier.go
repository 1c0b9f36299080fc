/*
Copyright © 2025 carrier-prerequest authors
SPDX-License-Identifier: Apache-2.0
*/

// Package carrier derives a validated, bucket-safe slug from an
// operator-supplied carrier identifier.
package carrier

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ElangoShush/carrier-prerequest/pkg/errors"
)

// Slug is a validated carrier identifier matching
// ^[a-z0-9]+(-[a-z0-9]+)*$. It is derived once per run and used to
// namespace the report artifact and the storage bucket.
type Slug string

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// asciiFold strips combining marks after NFKD decomposition so accented
// operator input degrades to its ASCII base before slugging.
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
)

// Sanitize transforms a raw carrier identifier into a Slug:
// fold to ASCII, lowercase, replace every character outside [a-z0-9-]
// with '-', collapse consecutive hyphens, trim leading/trailing hyphens.
// An empty result is a validation error. Sanitize is idempotent on its
// own output.
func Sanitize(raw string) (Slug, error) {
	folded, _, err := transform.String(asciiFold, raw)
	if err != nil {
		// Normalization failure is not fatal; slug from the raw input instead.
		folded = raw
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}

	collapsed := collapseHyphens(b.String())
	trimmed := strings.Trim(collapsed, "-")

	if trimmed == "" {
		return "", errors.Newf(errors.ErrCodeValidation,
			"carrier identifier %q is empty after sanitization", raw)
	}

	return Slug(trimmed), nil
}

// String returns the slug as a plain string.
func (s Slug) String() string {
	return string(s)
}

// Valid reports whether the slug matches the canonical pattern.
func (s Slug) Valid() bool {
	return slugPattern.MatchString(string(s))
}

func collapseHyphens(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := false
	for _, r := range s {
		if r == '-' {
			if prevHyphen {
				continue
			}
			prevHyphen = true
		} else {
			prevHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
