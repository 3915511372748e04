package domain

import "context"

// CredentialLink is the vendor-hosted URL a user follows to connect an app.
type CredentialLink struct {
	URL    string
	UserID string
}

type CredentialLinkManager interface {
	CreateLink(ctx context.Context, identity string, connector ConnectorID) (CredentialLink, error)
}
