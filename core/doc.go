// Package core contains canonical OAuth1 domain contracts, entities, and
// configuration. Signing and flow packages depend on this package; core must
// not depend on signer-specific or transport-specific implementations.
package core
