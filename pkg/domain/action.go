package domain

import "context"

type ConnectorID string

const (
	ConnectorMonday  ConnectorID = "monday"
	ConnectorZohoCRM ConnectorID = "zohoCRM"
)

type ActionID string

// ActionParams is the per-call bag handed to the action executor. CredentialID
// skips credential resolution when set.
type ActionParams struct {
	QueryParameters   map[string]any
	RequestBody       map[string]any
	AdditionalHeaders map[string]any
	PathParams        map[string]any
	CredentialID      string
	UserID            string
}

// ActionPayload is the body posted to the RunAlloy execute endpoint.
type ActionPayload struct {
	CredentialID      string         `json:"credentialId"`
	QueryParameters   map[string]any `json:"queryParameters"`
	RequestBody       map[string]any `json:"requestBody"`
	AdditionalHeaders map[string]any `json:"additionalHeaders"`
	PathParams        map[string]any `json:"pathParams"`
}

func (p ActionParams) Payload(credentialID string) ActionPayload {
	return ActionPayload{
		CredentialID:      credentialID,
		QueryParameters:   orEmpty(p.QueryParameters),
		RequestBody:       orEmpty(p.RequestBody),
		AdditionalHeaders: orEmpty(p.AdditionalHeaders),
		PathParams:        orEmpty(p.PathParams),
	}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}

	return m
}

// ActionExecutor runs a named connector action and returns the decoded vendor body.
type ActionExecutor interface {
	Execute(ctx context.Context, connectorID ConnectorID, actionID ActionID, params ActionParams) (any, error)
}
