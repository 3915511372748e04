package managers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/flowbaker/alloybridge/pkg/clients/runalloy"
	"github.com/flowbaker/alloybridge/pkg/domain"
	"github.com/rs/zerolog/log"
)

const (
	authenticationTypeOAuth2 = "oauth2"
	mondayLinkScopes         = "boards:read boards:write me:read"
)

type credentialLinkManager struct {
	client         runalloy.ClientInterface
	identityMapper domain.IdentityMapper
	redirectURI    string
}

type CredentialLinkManagerDependencies struct {
	Client         runalloy.ClientInterface
	IdentityMapper domain.IdentityMapper
	// RedirectURI is where RunAlloy sends the browser once the user connects
	RedirectURI string
}

func NewCredentialLinkManager(deps CredentialLinkManagerDependencies) domain.CredentialLinkManager {
	return &credentialLinkManager{
		client:         deps.Client,
		identityMapper: deps.IdentityMapper,
		redirectURI:    deps.RedirectURI,
	}
}

func (m *credentialLinkManager) CreateLink(ctx context.Context, identity string, connector domain.ConnectorID) (domain.CredentialLink, error) {
	userID := m.identityMapper.MapUserID(identity)

	response, err := m.client.CreateCredential(ctx, string(connector), &runalloy.CreateCredentialRequest{
		UserID:             userID,
		AuthenticationType: authenticationTypeOAuth2,
		RedirectURI:        m.redirectURI,
	})
	if err != nil {
		return domain.CredentialLink{}, toDomainError(err)
	}

	if response.OAuthURL == "" {
		return domain.CredentialLink{}, domain.NewVendorError(http.StatusBadGateway,
			"Invalid response from RunAlloy - missing oauthUrl", response)
	}

	linkURL := response.OAuthURL

	if connector == domain.ConnectorMonday {
		linkURL, err = withScope(response.OAuthURL, mondayLinkScopes)
		if err != nil {
			return domain.CredentialLink{}, domain.NewVendorError(http.StatusBadGateway,
				"Invalid response from RunAlloy - malformed oauthUrl", response.OAuthURL)
		}
	}

	log.Info().
		Str("user_id", userID).
		Str("connector", string(connector)).
		Msg("Created credential link")

	return domain.CredentialLink{
		URL:    linkURL,
		UserID: userID,
	}, nil
}

func withScope(rawURL, scope string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse oauth url: %w", err)
	}

	query := parsed.Query()
	query.Set("scope", scope)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
