// Package slugs holds the dealer identity helpers: slug derivation from
// display names, access-code handling, and the reverse prettification used
// for filenames and document headings.
package slugs

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

// AccessCodeLength is the fixed length of a dealer access code. The code is
// an obscurity token appended to the slug in portal URLs, not a credential.
const AccessCodeLength = 6

const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	nonSlugRuns = regexp.MustCompile(`[^a-z0-9]+`)
	codeSuffix  = regexp.MustCompile(`-[a-z0-9]{6}$`)
	codeShape   = regexp.MustCompile(`^[a-z0-9]{6}$`)
)

// SlugifyName converts a free-text dealer name to its canonical slug:
// lower-cased, runs of non-alphanumerics collapsed to single hyphens, no
// leading or trailing hyphen. Idempotent.
func SlugifyName(name string) string {
	s := strings.ToLower(name)
	s = nonSlugRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeDealerSlug strips a trailing access-code suffix ("-xxxxxx", six
// lowercase alphanumerics) if present and lower-cases the result. Input
// without a code suffix comes back lower-cased and otherwise unchanged.
func NormalizeDealerSlug(raw string) string {
	s := strings.ToLower(raw)
	return codeSuffix.ReplaceAllString(s, "")
}

// SplitAccessURL splits a "{slug}-{code}" portal path segment into its slug
// and access code. When no code suffix is present the code is empty.
func SplitAccessURL(raw string) (slug, code string) {
	s := strings.ToLower(raw)
	if loc := codeSuffix.FindStringIndex(s); loc != nil {
		return s[:loc[0]], s[loc[0]+1:]
	}
	return s, ""
}

// PrettifySlug turns a slug back into a display name: hyphens become spaces
// and each word is title-cased. Lossy with respect to SlugifyName.
func PrettifySlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// NewAccessCode mints a fresh 6-character lowercase alphanumeric access code.
func NewAccessCode() string {
	b := make([]byte, AccessCodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// an access code is not a secret, so fall back to a fixed rune.
			b[i] = 'x'
			continue
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b)
}

// ValidAccessCode reports whether s has the exact access-code shape.
func ValidAccessCode(s string) bool {
	return codeShape.MatchString(s)
}
