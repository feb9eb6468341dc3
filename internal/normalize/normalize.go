// Package normalize canonicalizes job fields and derives the stable dedup
// key used to merge repeated sightings of the same posting.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// Query parameters that carry tracking state and churn between alert
// emails for the same posting.
var trackingParams = map[string]struct{}{
	"ref":       {},
	"refid":     {},
	"trk":       {},
	"trkemail":  {},
	"gh_src":    {},
	"lever-via": {},
	"source":    {},
	"src":       {},
	"mkt_tok":   {},
	"fbclid":    {},
	"gclid":     {},
}

var trackingPrefixes = []string{"utm_"}

func isTracking(key string) bool {
	key = strings.ToLower(key)
	if _, ok := trackingParams[key]; ok {
		return true
	}
	for _, prefix := range trackingPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// CanonicalURL lowercases the host, strips the trailing slash, drops
// tracking parameters, and re-serializes the query with keys sorted so the
// same posting always canonicalizes to the same string. Unparseable input
// is returned trimmed but otherwise untouched.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}

	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	parsed.Fragment = ""

	values := parsed.Query()
	keys := make([]string, 0, len(values))
	for key := range values {
		if isTracking(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var query strings.Builder
	for _, key := range keys {
		for _, value := range values[key] {
			if query.Len() > 0 {
				query.WriteByte('&')
			}
			query.WriteString(url.QueryEscape(key))
			query.WriteByte('=')
			query.WriteString(url.QueryEscape(value))
		}
	}
	parsed.RawQuery = query.String()

	return parsed.String()
}

// Field collapses internal whitespace and trims the value.
func Field(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Fold lowercases a field after whitespace collapse, for key material.
func Fold(value string) string {
	return strings.ToLower(Field(value))
}

// DedupKey derives the stable identifier for a posting: a hash of the
// canonical URL when present, otherwise of normalized title+company.
func DedupKey(rawURL, title, company string) string {
	canon := CanonicalURL(rawURL)
	if canon != "" {
		return shortHash(canon)
	}
	return shortHash(Fold(title) + "|" + Fold(company))
}

// ContentHash fingerprints the analyzable content of a job. Analysis and
// baseline scores are recomputed only when this changes.
func ContentHash(title, description string) string {
	return shortHash(Fold(title) + "|" + Fold(description))
}

func shortHash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])[:16]
}
