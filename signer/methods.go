package signer

import (
	"crypto"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/guoxy2016/authlib/core"
)

// A Method signs a message to produce an oauth_signature value.
type Method interface {
	// Name returns the oauth_signature_method value.
	Name() string
	// Sign signs the message with the token secret and the method's own key
	// material.
	Sign(tokenSecret, message string) (string, error)
}

// signingKey builds the RFC 5849 3.4.2 key: the percent-encoded consumer
// secret and percent-encoded token secret joined with "&". An absent token
// secret still contributes the trailing separator.
func signingKey(consumerSecret, tokenSecret string) string {
	return PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
}

// HMACSigner signs messages with HMAC-SHA1 keyed by the concatenated
// consumer secret and token secret.
type HMACSigner struct {
	ConsumerSecret string
}

func (HMACSigner) Name() string { return string(core.SignatureHMACSHA1) }

func (s HMACSigner) Sign(tokenSecret, message string) (string, error) {
	mac := hmac.New(sha1.New, []byte(signingKey(s.ConsumerSecret, tokenSecret)))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// PlaintextSigner emits the signing key verbatim with no digest. The method
// offers no cryptographic protection on its own; RFC 5849 3.4.4 requires a
// secure channel such as TLS, which callers must arrange at the transport.
type PlaintextSigner struct {
	ConsumerSecret string
}

func (PlaintextSigner) Name() string { return string(core.SignaturePlaintext) }

func (s PlaintextSigner) Sign(tokenSecret, _ string) (string, error) {
	return signingKey(s.ConsumerSecret, tokenSecret), nil
}

// RSASigner signs SHA1 digests of messages with RSA PKCS1-v1_5. The token
// secret is unused by this scheme.
type RSASigner struct {
	PrivateKey *rsa.PrivateKey
}

func (RSASigner) Name() string { return string(core.SignatureRSASHA1) }

func (s RSASigner) Sign(_, message string) (string, error) {
	if s.PrivateKey == nil {
		return "", core.ErrInvalidKeyMaterial(fmt.Errorf("signer: rsa private key is required"))
	}
	digest := sha1.Sum([]byte(message))
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.PrivateKey, crypto.SHA1, digest[:])
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(signature), nil
}

// ForMethod dispatches over the closed set of protocol signature methods.
// For RSA-SHA1 the consumer secret is interpreted as a PEM private key.
func ForMethod(method core.SignatureMethod, credentials core.Credentials) (Method, error) {
	switch method {
	case "", core.SignatureHMACSHA1:
		return HMACSigner{ConsumerSecret: credentials.ConsumerSecret}, nil
	case core.SignaturePlaintext:
		return PlaintextSigner{ConsumerSecret: credentials.ConsumerSecret}, nil
	case core.SignatureRSASHA1:
		key, err := ParseRSAPrivateKey(credentials.ConsumerSecret)
		if err != nil {
			return nil, err
		}
		return RSASigner{PrivateKey: key}, nil
	default:
		return nil, core.ErrUnsupportedSignatureMethod(string(method))
	}
}

// ParseRSAPrivateKey decodes a PEM-encoded RSA private key in PKCS#1 or
// PKCS#8 form.
func ParseRSAPrivateKey(pemKey string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(strings.TrimSpace(pemKey)))
	if block == nil {
		return nil, core.ErrInvalidKeyMaterial(fmt.Errorf("signer: no pem block found"))
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, core.ErrInvalidKeyMaterial(err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, core.ErrInvalidKeyMaterial(fmt.Errorf("signer: pem block is not an rsa private key"))
	}
	return key, nil
}

var (
	_ Method = HMACSigner{}
	_ Method = PlaintextSigner{}
	_ Method = RSASigner{}
)
