package slugs

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugifyName(t *testing.T) {
	cases := map[string]string{
		"Acme RV":            "acme-rv",
		"  Acme   RV  ":      "acme-rv",
		"Acme & Sons (West)": "acme-sons-west",
		"ACME-RV":            "acme-rv",
		"123 Caravans!":      "123-caravans",
		"":                   "",
		"---":                "",
	}
	for in, want := range cases {
		require.Equal(t, want, SlugifyName(in), "input %q", in)
	}
}

func TestSlugifyNameIdempotent(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9-]*$`)
	for _, in := range []string{"Acme RV", "Great Outdoors & Co.", "x", "A  B  C", "Ünïcode Dealer"} {
		once := SlugifyName(in)
		require.Equal(t, once, SlugifyName(once), "not idempotent for %q", in)
		require.True(t, shape.MatchString(once), "bad characters in %q", once)
		if once != "" {
			require.NotEqual(t, byte('-'), once[0])
			require.NotEqual(t, byte('-'), once[len(once)-1])
		}
	}
}

func TestNormalizeDealerSlug(t *testing.T) {
	require.Equal(t, "acme-rv", NormalizeDealerSlug("acme-rv-abc123"))
	require.Equal(t, "acme-rv", NormalizeDealerSlug("Acme-RV-ABC123"))
	// No code suffix: lower-cased input unchanged.
	require.Equal(t, "acme-rv", NormalizeDealerSlug("Acme-RV"))
	// A 5- or 7-char tail is not a code.
	require.Equal(t, "acme-ab12", NormalizeDealerSlug("acme-ab12"))
	require.Equal(t, "acme-abc1234", NormalizeDealerSlug("acme-abc1234"))
}

func TestNormalizeDealerSlugSuffixProperty(t *testing.T) {
	for _, s := range []string{"acme-rv", "jayco-adelaide", "x"} {
		require.Equal(t, NormalizeDealerSlug(s), NormalizeDealerSlug(s+"-abc123"))
	}
}

func TestSplitAccessURL(t *testing.T) {
	slug, code := SplitAccessURL("acme-rv-4kd92x")
	require.Equal(t, "acme-rv", slug)
	require.Equal(t, "4kd92x", code)

	slug, code = SplitAccessURL("acme-rv")
	require.Equal(t, "acme-rv", slug)
	require.Empty(t, code)
}

func TestPrettifySlug(t *testing.T) {
	require.Equal(t, "Acme Rv", PrettifySlug("acme-rv"))
	require.Equal(t, "Great Outdoors", PrettifySlug("great-outdoors"))
	require.Equal(t, "", PrettifySlug(""))
}

func TestNewAccessCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := NewAccessCode()
		require.True(t, ValidAccessCode(code), "bad code %q", code)
		seen[code] = true
	}
	// 50 draws from 36^6 should not collide down to a handful.
	require.Greater(t, len(seen), 45)
}

func TestValidAccessCode(t *testing.T) {
	require.True(t, ValidAccessCode("abc123"))
	require.False(t, ValidAccessCode("ABC123"))
	require.False(t, ValidAccessCode("abc12"))
	require.False(t, ValidAccessCode("abc1234"))
	require.False(t, ValidAccessCode(""))
}
