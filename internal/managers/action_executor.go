package managers

import (
	"context"
	"time"

	"github.com/flowbaker/alloybridge/pkg/clients/runalloy"
	"github.com/flowbaker/alloybridge/pkg/domain"
	"github.com/rs/zerolog/log"
)

type actionExecutor struct {
	client         runalloy.ClientInterface
	resolver       domain.CredentialResolver
	identityMapper domain.IdentityMapper
}

type ActionExecutorDependencies struct {
	Client             runalloy.ClientInterface
	CredentialResolver domain.CredentialResolver
	IdentityMapper     domain.IdentityMapper
}

func NewActionExecutor(deps ActionExecutorDependencies) domain.ActionExecutor {
	return &actionExecutor{
		client:         deps.Client,
		resolver:       deps.CredentialResolver,
		identityMapper: deps.IdentityMapper,
	}
}

// Execute performs exactly one outbound call. Failures are returned as
// *domain.Error and never retried.
func (e *actionExecutor) Execute(ctx context.Context, connectorID domain.ConnectorID, actionID domain.ActionID, params domain.ActionParams) (any, error) {
	runalloyUserID := e.identityMapper.MapUserID(params.UserID)

	credentialID := params.CredentialID
	if credentialID == "" {
		resolved, err := e.resolver.Resolve(ctx, params.UserID, connectorID)
		if err != nil {
			return nil, err
		}
		credentialID = resolved
	}

	log.Info().
		Str("connector", string(connectorID)).
		Str("action", string(actionID)).
		Str("user_id", runalloyUserID).
		Str("credential_id", credentialID).
		Msg("RunAlloy: executing action")

	start := time.Now()

	result, err := e.client.ExecuteAction(ctx, &runalloy.ExecuteActionRequest{
		ConnectorID: string(connectorID),
		ActionID:    string(actionID),
		Payload:     params.Payload(credentialID),
		Headers: map[string]string{
			"x-alloy-userid":  runalloyUserID,
			"x-credential-id": credentialID,
		},
	})

	elapsed := time.Since(start)

	if err != nil {
		err = toDomainError(err)
		recordVendorRequest(string(connectorID), string(actionID), outcomeOf(err), elapsed)

		log.Error().
			Err(err).
			Str("connector", string(connectorID)).
			Str("action", string(actionID)).
			Dur("elapsed", elapsed).
			Msg("RunAlloy: action failed")

		return nil, err
	}

	recordVendorRequest(string(connectorID), string(actionID), outcomeOf(nil), elapsed)

	log.Debug().
		Str("connector", string(connectorID)).
		Str("action", string(actionID)).
		Dur("elapsed", elapsed).
		Interface("response", result).
		Msg("RunAlloy: action succeeded")

	return result, nil
}
