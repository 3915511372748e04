package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/flowbaker/alloybridge/pkg/domain"
)

// FlexibleID accepts ids sent either as JSON strings or numbers.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}

	*id = FlexibleID(n.String())

	return nil
}

func (id FlexibleID) String() string {
	return string(id)
}

type DataResponse[T any] struct {
	Data T `json:"data"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type CreateBoardRequest struct {
	Name string `json:"name"`
}

type UpdateBoardRequest struct {
	ID   FlexibleID `json:"id"`
	Name string     `json:"name"`
}

type CreateItemRequest struct {
	Name string `json:"name"`
}

type UpdateItemRequest struct {
	ID           FlexibleID  `json:"id"`
	Name         *string     `json:"name,omitempty"`
	BoardID      *FlexibleID `json:"boardId,omitempty"`
	ColumnValues any         `json:"columnValues,omitempty"`
}

type CreateTaskRequest struct {
	Name string `json:"name"`
}

type UpdateTaskRequest struct {
	ID           FlexibleID           `json:"id"`
	Name         *string              `json:"name,omitempty"`
	ColumnValues []domain.ColumnValue `json:"columnValues,omitempty"`
}

type CreateLinkResponse struct {
	LinkURL string `json:"linkUrl"`
	UserID  string `json:"userId"`
}

type CredentialStatusResponse struct {
	HasCredential bool   `json:"hasCredential"`
	CredentialID  string `json:"credentialId,omitempty"`
	Status        string `json:"status,omitempty"`
	Error         string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}
