package domain

import (
	"context"
	"fmt"
)

const CredentialStatusActive = "active"

type Credential struct {
	ID        string
	Connector ConnectorID
	Status    string
}

type CredentialResolver interface {
	// Resolve returns the credential id for the user/connector pair, served
	// from the credential cache when possible.
	Resolve(ctx context.Context, userID string, connector ConnectorID) (string, error)
	// Lookup always asks the vendor and never touches the cache.
	Lookup(ctx context.Context, userID string, connector ConnectorID) (Credential, error)
}

type IdentityMapper interface {
	MapUserID(identity string) string
}

func CredentialCacheKey(userID string, connector ConnectorID) string {
	return fmt.Sprintf("%s:%s", userID, connector)
}
