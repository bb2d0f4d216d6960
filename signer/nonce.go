package signer

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/guoxy2016/authlib/core"
)

const nonceEntropyBytes = 32

// Base64Noncer reads 32 bytes from crypto/rand and returns them as a base64
// encoded string.
type Base64Noncer struct{}

func (Base64Noncer) Nonce() string {
	raw := make([]byte, nonceEntropyBytes)
	rand.Read(raw)
	return base64.StdEncoding.EncodeToString(raw)
}

// HexNoncer reads 32 bytes from crypto/rand and returns them as a hex
// encoded string.
type HexNoncer struct{}

func (HexNoncer) Nonce() string {
	raw := make([]byte, nonceEntropyBytes)
	rand.Read(raw)
	return hex.EncodeToString(raw)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Source produces the fresh nonce and current Unix timestamp that accompany
// every signed request. Both inputs are injectable so signatures are
// reproducible in tests.
type Source struct {
	Noncer core.Noncer
	Clock  core.Clock
}

func (s Source) Nonce() string {
	if s.Noncer != nil {
		return s.Noncer.Nonce()
	}
	return Base64Noncer{}.Nonce()
}

// Epoch returns wall-clock Unix seconds. Monotonicity is not required;
// accuracy is, so servers do not reject the request as stale.
func (s Source) Epoch() int64 {
	if s.Clock != nil {
		return s.Clock.Now().Unix()
	}
	return systemClock{}.Now().Unix()
}

var (
	_ core.Noncer = Base64Noncer{}
	_ core.Noncer = HexNoncer{}
	_ core.Clock  = systemClock{}
)
