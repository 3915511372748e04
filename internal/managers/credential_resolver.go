package managers

import (
	"context"
	"fmt"
	"time"

	"github.com/flowbaker/alloybridge/pkg/clients/runalloy"
	"github.com/flowbaker/alloybridge/pkg/domain"
	"github.com/rs/zerolog/log"
)

type credentialResolver struct {
	client         runalloy.ClientInterface
	store          domain.KeyValueStore
	identityMapper domain.IdentityMapper
	ttl            time.Duration
}

type CredentialResolverDependencies struct {
	Client         runalloy.ClientInterface
	Store          domain.KeyValueStore
	IdentityMapper domain.IdentityMapper
	// TTL bounds how long a cached credential id is trusted; zero never expires
	TTL time.Duration
}

func NewCredentialResolver(deps CredentialResolverDependencies) domain.CredentialResolver {
	return &credentialResolver{
		client:         deps.Client,
		store:          deps.Store,
		identityMapper: deps.IdentityMapper,
		ttl:            deps.TTL,
	}
}

// Resolve serves the credential id from the store, asking RunAlloy on a miss.
// Concurrent misses for one key each call the vendor; the last write wins.
func (r *credentialResolver) Resolve(ctx context.Context, userID string, connector domain.ConnectorID) (string, error) {
	runalloyUserID := r.identityMapper.MapUserID(userID)
	cacheKey := domain.CredentialCacheKey(runalloyUserID, connector)

	cached, ok, err := r.store.Get(ctx, cacheKey)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Credential cache read failed, asking RunAlloy")
	}

	if err == nil && ok && cached != "" {
		recordCacheLookup(true)
		log.Debug().Str("user_id", runalloyUserID).Str("connector", string(connector)).Msg("Using cached credential")

		return cached, nil
	}

	recordCacheLookup(false)

	credential, err := r.lookup(ctx, runalloyUserID, connector)
	if err != nil {
		return "", err
	}

	if err := r.store.Set(ctx, cacheKey, credential.ID, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache credential")
	}

	log.Info().
		Str("user_id", runalloyUserID).
		Str("connector", string(connector)).
		Str("credential_id", credential.ID).
		Msg("Resolved credential")

	return credential.ID, nil
}

func (r *credentialResolver) Lookup(ctx context.Context, userID string, connector domain.ConnectorID) (domain.Credential, error) {
	return r.lookup(ctx, r.identityMapper.MapUserID(userID), connector)
}

func (r *credentialResolver) lookup(ctx context.Context, runalloyUserID string, connector domain.ConnectorID) (domain.Credential, error) {
	response, err := r.client.ListUserCredentials(ctx, runalloyUserID)
	if err != nil {
		return domain.Credential{}, toDomainError(err)
	}

	for _, candidate := range response.Credentials {
		if !candidate.MatchesConnector(string(connector)) {
			continue
		}

		id := candidate.ResolvedID()
		if id == "" {
			continue
		}

		status := candidate.Status
		if status == "" {
			status = domain.CredentialStatusActive
		}

		return domain.Credential{
			ID:        id,
			Connector: connector,
			Status:    status,
		}, nil
	}

	return domain.Credential{}, domain.NewNotFoundError(
		fmt.Sprintf("No %s credential found for user %s", connector, runalloyUserID))
}
