package signer

import (
	"math/rand"
	"net/url"
	"testing"
)

func TestPercentEncode(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"abcABC123", "abcABC123"},
		{"-._~", "-._~"},
		{"", ""},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"&=*", "%26%3D%2A"},
		{"\n", "%0A"},
		{"é", "%C3%A9"},
		{"☃", "%E2%98%83"},
		{"100%", "100%25"},
	}
	for _, tc := range cases {
		if got := PercentEncode(tc.input); got != tc.expected {
			t.Fatalf("encode %q: expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestPercentEncodeRoundTrip(t *testing.T) {
	inputs := []string{
		"plain",
		"with space",
		"snöwman ☃",
		"query=value&other=1",
		"100% + 50%",
		"~tilde-._",
	}
	for _, input := range inputs {
		decoded, err := url.PathUnescape(PercentEncode(input))
		if err != nil {
			t.Fatalf("unescape %q: %v", input, err)
		}
		if decoded != input {
			t.Fatalf("round trip %q: got %q", input, decoded)
		}
	}
}

func TestNormalizedParameterString(t *testing.T) {
	pairs := []Pair{
		{Key: "c", Value: "3"},
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
	}
	expected := "a=1&b=2&c=3"
	if got := NormalizedParameterString(pairs); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestNormalizedParameterStringEncodesBeforeSorting(t *testing.T) {
	pairs := []Pair{
		{Key: "a", Value: "hello world"},
		{Key: "q", Value: "=="},
	}
	expected := "a=hello%20world&q=%3D%3D"
	if got := NormalizedParameterString(pairs); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestNormalizedParameterStringRepeatedKeys(t *testing.T) {
	pairs := []Pair{
		{Key: "tag", Value: "zebra"},
		{Key: "tag", Value: "apple"},
		{Key: "a", Value: "1"},
	}
	expected := "a=1&tag=apple&tag=zebra"
	if got := NormalizedParameterString(pairs); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestNormalizedParameterStringPermutationInvariant(t *testing.T) {
	pairs := []Pair{
		{Key: "b", Value: "2"},
		{Key: "a", Value: "1"},
		{Key: "a", Value: "0"},
		{Key: "z", Value: "last"},
		{Key: "sp ace", Value: "v al"},
		{Key: "tag", Value: "x"},
		{Key: "tag", Value: "y"},
	}
	expected := NormalizedParameterString(pairs)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		shuffled := append([]Pair(nil), pairs...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := NormalizedParameterString(shuffled); got != expected {
			t.Fatalf("permutation %d: expected %q, got %q", i, expected, got)
		}
	}
}
