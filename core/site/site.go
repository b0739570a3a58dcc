// Package site maps raw resource URLs onto stable identities.
//
// The same file is linked from list pages, detail pages, forum posts and
// hand-edited catalog entries, with cosmetic variation: http vs https,
// retitled slugs, legacy path prefixes, session tokens. Canonical collapses
// that variation into the identity key used for indexing and
// reconciliation; Normalize produces the slightly looser form preferred
// when rewriting stored URLs.
package site

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Site identifies a supported file-sharing site, determined by host name.
type Site string

const (
	VPUniverse     Site = "VPU"
	VPForums       Site = "VPF"
	PinballNirvana Site = "Nirvana"
	Other          Site = "Other"
)

// For returns the site owning a parsed URL.
func For(u *url.URL) Site {
	switch u.Host {
	case "vpuniverse.com":
		return VPUniverse
	case "www.vpforums.org":
		return VPForums
	case "pinballnirvana.com":
		return PinballNirvana
	default:
		return Other
	}
}

// Of returns the site owning a raw URL, or Other if it does not parse.
func Of(raw string) Site {
	u, err := url.Parse(raw)
	if err != nil {
		return Other
	}
	return For(u)
}

// Canonical converts a URL into its canonical identity form, removing any
// parts that can vary without changing which resource the URL names. Two
// raw URLs with the same canonical form are the same resource.
//
// Malformed input is an error: canonicalization must never silently map a
// URL onto a different resource's identity.
func Canonical(raw string) (string, error) {
	u, err := parse(raw)
	if err != nil {
		return "", err
	}

	switch For(u) {
	case VPUniverse:
		// Any URL of the form
		//   https://vpuniverse.com/files/file/24527-any/
		// redirects to the current slug, e.g.
		//   https://vpuniverse.com/files/file/24527-rush-le-tribute-v104/
		// so the numeric id alone is the identity.
		rewriteLegacyPrefix(u)
		if strings.HasPrefix(u.Path, "/files/file/") {
			dir, last := path.Split(strings.TrimSuffix(u.Path, "/"))
			u.Path = dir + leadingDigits(last) + "-any/"
		}
		return u.String(), nil

	case VPForums:
		// https://www.vpforums.org/index.php?s=1626316605b94c...&app=downloads&showfile=17011
		stripSession(u)
		return u.String(), nil

	default:
		return u.String(), nil
	}
}

// Normalize converts a URL into its ideal stored form. Identity-wise it is
// never looser than Canonical for the same site, but for VPUniverse it also
// drops query noise (tab and comment selections) and ensures the trailing
// slash the site itself redirects to.
func Normalize(raw string) (string, error) {
	u, err := parse(raw)
	if err != nil {
		return "", err
	}

	switch For(u) {
	case VPUniverse:
		rewriteLegacyPrefix(u)
		u.RawQuery = ""
		u.Fragment = ""
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		return u.String(), nil

	case VPForums:
		stripSession(u)
		return u.String(), nil

	default:
		return u.String(), nil
	}
}

// parse validates the input and applies the scheme upgrade that precedes
// every other rule: a mismatched scheme must never split an identity.
func parse(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("canonicalize %q: not an absolute URL", raw)
	}
	if u.Scheme == "http" {
		u.Scheme = "https"
	}
	return u, nil
}

// rewriteLegacyPrefix rewrites the retired /forums/files/ prefix to the
// current /files/ prefix.
func rewriteLegacyPrefix(u *url.URL) {
	if strings.HasPrefix(u.Path, "/forums/files/") {
		u.Path = strings.TrimPrefix(u.Path, "/forums")
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
	}
}

// stripSession removes the session-token query parameter and any trailing
// fragment anchor.
func stripSession(u *url.URL) {
	q := u.Query()
	q.Del("s")
	u.RawQuery = q.Encode()
	u.Fragment = ""
}

func leadingDigits(s string) string {
	for i, r := range s {
		if r < '0' || r > '9' {
			return s[:i]
		}
	}
	return s
}
