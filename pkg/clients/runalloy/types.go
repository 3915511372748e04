package runalloy

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
)

type CreateCredentialRequest struct {
	UserID             string `json:"userId"`
	AuthenticationType string `json:"authenticationType"`
	RedirectURI        string `json:"redirectUri"`
}

type CreateCredentialResponse struct {
	OAuthURL     string `json:"oauthUrl"`
	CredentialID string `json:"credentialId,omitempty"`
}

// UserCredential is one entry of the user credential listing. The connector is
// named by Type, App or ConnectorID and the id by RawID, CredentialID or ID,
// depending on which API revision produced it.
type UserCredential struct {
	RawID        string `json:"_id"`
	CredentialID string `json:"credentialId"`
	ID           string `json:"id"`
	Type         string `json:"type"`
	App          string `json:"app"`
	ConnectorID  string `json:"connectorId"`
	Status       string `json:"status"`
}

func (c UserCredential) MatchesConnector(connector string) bool {
	return c.Type == connector || c.App == connector || c.ConnectorID == connector
}

func (c UserCredential) ResolvedID() string {
	switch {
	case c.RawID != "":
		return c.RawID
	case c.CredentialID != "":
		return c.CredentialID
	default:
		return c.ID
	}
}

var errCredentialNotObject = errors.New("credential entry is not an object")

// UnmarshalJSON reads each field as a string or a number, since revisions of
// the listing disagree on whether ids are quoted.
func (c *UserCredential) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		return err
	}

	if fields == nil {
		return errCredentialNotObject
	}

	*c = UserCredential{
		RawID:        looseString(fields["_id"]),
		CredentialID: looseString(fields["credentialId"]),
		ID:           looseString(fields["id"]),
		Type:         looseString(fields["type"]),
		App:          looseString(fields["app"]),
		ConnectorID:  looseString(fields["connectorId"]),
		Status:       looseString(fields["status"]),
	}

	return nil
}

func looseString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// ListCredentialsResponse accepts {credentials:[...]}, {data:[...]} or a bare array.
type ListCredentialsResponse struct {
	Credentials []UserCredential
}

func (r *ListCredentialsResponse) UnmarshalJSON(data []byte) error {
	if list, ok := decodeCredentialList(data); ok {
		r.Credentials = list
		return nil
	}

	// Anything that is not an object, or carries no usable list, means no credentials.
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil
	}

	for _, key := range []string{"credentials", "data"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}

		if list, ok := decodeCredentialList(raw); ok {
			r.Credentials = list
			return nil
		}
	}

	return nil
}

// decodeCredentialList decodes a JSON array entry by entry. Entries that are
// not objects are skipped so one malformed credential cannot hide the rest.
func decodeCredentialList(data []byte) ([]UserCredential, bool) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return nil, false
	}

	credentials := make([]UserCredential, 0, len(entries))

	for i, entry := range entries {
		var credential UserCredential
		if err := json.Unmarshal(entry, &credential); err != nil {
			log.Debug().Err(err).Int("index", i).Msg("Skipping unreadable RunAlloy credential entry")
			continue
		}

		credentials = append(credentials, credential)
	}

	return credentials, true
}
