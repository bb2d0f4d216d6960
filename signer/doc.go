// Package signer implements OAuth1 request signing: RFC 3986 percent
// encoding, parameter normalization, signature base strings, and the three
// protocol signature methods (HMAC-SHA1, PLAINTEXT, RSA-SHA1). Everything in
// this package is stateless and safe for unrestricted concurrent use.
package signer
