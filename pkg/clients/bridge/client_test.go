package bridge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	query  url.Values
	body   map[string]any
}

func newTestClient(t *testing.T, status int, response string) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded := recordedRequest{method: r.Method, path: r.URL.Path, query: r.URL.Query()}
		_ = json.NewDecoder(r.Body).Decode(&recorded.body)
		requests = append(requests, recorded)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return NewClient(WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client())), &requests
}

func TestClient_CheckStatus(t *testing.T) {
	client, requests := newTestClient(t, http.StatusOK, `{"hasCredential":true,"credentialId":"c1","status":"active"}`)

	status, err := client.CheckStatus(t.Context(), "ann@example.com", domain.ConnectorZohoCRM)
	require.NoError(t, err)

	assert.True(t, status.HasCredential)
	assert.Equal(t, "c1", status.CredentialID)

	require.Len(t, *requests, 1)
	got := (*requests)[0]
	assert.Equal(t, "/api/runalloy-auth", got.path)
	assert.Equal(t, "check-status", got.query.Get("action"))
	assert.Equal(t, "ann@example.com", got.query.Get("email"))
	assert.Equal(t, "zohoCRM", got.query.Get("connector"))
}

func TestClient_CreateLinkWithoutURL(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{"userId":"u1"}`)

	_, err := client.CreateLink(t.Context(), "ann@example.com", domain.ConnectorMonday)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestClient_ListTasks(t *testing.T) {
	client, requests := newTestClient(t, http.StatusOK, `{"data":[{"id":"1","name":"Buy milk","status":"Not Started"}]}`)

	tasks, err := client.ListTasks(t.Context(), "ann@example.com")
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Name)
	assert.Equal(t, http.MethodGet, (*requests)[0].method)
	assert.Equal(t, "/api/zoho-tasks", (*requests)[0].path)
}

func TestClient_Mutations(t *testing.T) {
	name := "Renamed"

	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
		wantQuery  map[string]string
		wantBody   map[string]any
	}{
		{
			name: "create task",
			call: func(c *Client) error {
				_, err := c.CreateTask(t.Context(), "a@b.c", "Buy milk")
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/zoho-tasks",
			wantQuery:  map[string]string{"email": "a@b.c"},
			wantBody:   map[string]any{"name": "Buy milk"},
		},
		{
			name: "update task",
			call: func(c *Client) error {
				_, err := c.UpdateTask(t.Context(), "a@b.c", UpdateTaskRequest{
					ID:           "t1",
					Name:         &name,
					ColumnValues: []domain.ColumnValue{{ID: "status", Text: "Done"}},
				})
				return err
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/zoho-tasks",
			wantQuery:  map[string]string{"email": "a@b.c"},
			wantBody: map[string]any{
				"id":           "t1",
				"name":         "Renamed",
				"columnValues": []any{map[string]any{"id": "status", "text": "Done"}},
			},
		},
		{
			name: "delete task",
			call: func(c *Client) error {
				_, err := c.DeleteTask(t.Context(), "a@b.c", "t9")
				return err
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/zoho-tasks",
			wantQuery:  map[string]string{"email": "a@b.c", "taskId": "t9"},
		},
		{
			name: "list items",
			call: func(c *Client) error {
				_, err := c.ListItems(t.Context(), "a@b.c", "42")
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/monday-items",
			wantQuery:  map[string]string{"email": "a@b.c", "boardId": "42"},
		},
		{
			name: "create board",
			call: func(c *Client) error {
				_, err := c.CreateBoard(t.Context(), "a@b.c", "Roadmap")
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/monday-boards",
			wantQuery:  map[string]string{"email": "a@b.c"},
			wantBody:   map[string]any{"name": "Roadmap"},
		},
		{
			name: "rename board",
			call: func(c *Client) error {
				_, err := c.UpdateBoard(t.Context(), "a@b.c", "42", "Roadmap 2")
				return err
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/monday-boards",
			wantQuery:  map[string]string{"email": "a@b.c"},
			wantBody:   map[string]any{"id": "42", "name": "Roadmap 2"},
		},
		{
			name: "delete board",
			call: func(c *Client) error {
				_, err := c.DeleteBoard(t.Context(), "a@b.c", "42")
				return err
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/monday-boards",
			wantQuery:  map[string]string{"email": "a@b.c", "boardId": "42"},
		},
		{
			name: "create item",
			call: func(c *Client) error {
				_, err := c.CreateItem(t.Context(), "a@b.c", "42", "Ship it")
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/monday-items",
			wantQuery:  map[string]string{"email": "a@b.c", "boardId": "42"},
			wantBody:   map[string]any{"name": "Ship it"},
		},
		{
			name: "update item",
			call: func(c *Client) error {
				boardID := FlexibleID("43")
				_, err := c.UpdateItem(t.Context(), "a@b.c", UpdateItemRequest{
					ID:           "i1",
					Name:         &name,
					BoardID:      &boardID,
					ColumnValues: map[string]any{"status": "Done"},
				})
				return err
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/monday-items",
			wantQuery:  map[string]string{"email": "a@b.c"},
			wantBody: map[string]any{
				"id":           "i1",
				"name":         "Renamed",
				"boardId":      "43",
				"columnValues": map[string]any{"status": "Done"},
			},
		},
		{
			name: "delete item",
			call: func(c *Client) error {
				_, err := c.DeleteItem(t.Context(), "a@b.c", "i1")
				return err
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/monday-items",
			wantQuery:  map[string]string{"email": "a@b.c", "itemId": "i1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, requests := newTestClient(t, http.StatusOK, `{"data":null}`)

			require.NoError(t, tt.call(client))
			require.Len(t, *requests, 1)

			got := (*requests)[0]
			assert.Equal(t, tt.wantMethod, got.method)
			assert.Equal(t, tt.wantPath, got.path)
			for key, value := range tt.wantQuery {
				assert.Equal(t, value, got.query.Get(key), key)
			}
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, got.body)
			}
		})
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	client, _ := newTestClient(t, http.StatusNotFound, `{"error":"No monday credential found for user default_user","details":{"k":"v"}}`)

	_, err := client.ListBoards(t.Context(), "ann@example.com")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "No monday credential found for user default_user", apiErr.Message)
	assert.Equal(t, map[string]any{"k": "v"}, apiErr.Details)
}

func TestClient_RoutePrefix(t *testing.T) {
	var path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithRoutePrefix(".netlify/functions/"))

	boards, err := client.ListBoards(t.Context(), "")
	require.NoError(t, err)

	assert.Empty(t, boards)
	assert.Equal(t, "/.netlify/functions/monday-boards", path)
}
