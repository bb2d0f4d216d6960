package signer

import (
	"fmt"
	"sort"
	"strings"
)

// Pair is a single request parameter. Repeated keys are carried as separate
// pairs so multi-valued parameters survive normalization.
type Pair struct {
	Key   string
	Value string
}

// PercentEncode percent encodes a string according to RFC 3986 2.1. The
// unreserved set (letters, digits, "-._~") passes through; every other UTF-8
// byte is escaped as uppercase hex. The encoding is stable: encoding an
// already-encoded string escapes the percent signs rather than silently
// double-encoding.
func PercentEncode(input string) string {
	var buf strings.Builder
	for _, b := range []byte(input) {
		if shouldEscape(b) {
			fmt.Fprintf(&buf, "%%%02X", b)
		} else {
			buf.WriteByte(b)
		}
	}
	return buf.String()
}

// shouldEscape reports whether the byte is outside the RFC 3986 2.3
// unreserved set.
func shouldEscape(c byte) bool {
	if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '.', '_', '~':
		return false
	}
	return true
}

// EncodePairs percent encodes every key and value and returns a new slice.
func EncodePairs(pairs []Pair) []Pair {
	encoded := make([]Pair, 0, len(pairs))
	for _, pair := range pairs {
		encoded = append(encoded, Pair{
			Key:   PercentEncode(pair.Key),
			Value: PercentEncode(pair.Value),
		})
	}
	return encoded
}

// SortPairs orders parameters by encoded key, breaking ties by encoded value,
// as RFC 5849 3.4.1.3.2 requires. Input order never influences the result.
func SortPairs(pairs []Pair) []Pair {
	sorted := append([]Pair(nil), pairs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Key != sorted[j].Key {
			return sorted[i].Key < sorted[j].Key
		}
		return sorted[i].Value < sorted[j].Value
	})
	return sorted
}

// NormalizedParameterString normalizes collected parameters (which must
// exclude oauth_signature and realm) into the RFC 5849 3.4.1.3.2 parameter
// string: encoded, sorted, joined key=value with "&".
func NormalizedParameterString(pairs []Pair) string {
	sorted := SortPairs(EncodePairs(pairs))
	parts := make([]string, 0, len(sorted))
	for _, pair := range sorted {
		parts = append(parts, pair.Key+"="+pair.Value)
	}
	return strings.Join(parts, "&")
}
