package ports

import "context"

// AuthClaims is the verified identity carried by a bearer token. Role comes
// only from server-controlled token metadata.
type AuthClaims struct {
	TokenIdentifier string
	Subject         string
	Email           string
	Role            string
}

type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (AuthClaims, error)
}
