// Package client drives the OAuth1 three-legged authorization flow: the
// temporary-credential request, the authorization URL, the callback parse,
// the access-token exchange, and signing of protected-resource requests.
//
// A Client instance is not safe for concurrent mutation: the token
// replacement performed by FetchRequestToken and FetchAccessToken must be
// externally synchronized, typically by using one Client per logical
// authorization flow.
package client
