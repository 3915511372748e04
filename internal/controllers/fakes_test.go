package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
)

type serviceCall struct {
	method string
	userID string
	id     string
	name   string
}

type fakeConnectorService struct {
	mu    sync.Mutex
	calls []serviceCall

	boards   []domain.Board
	items    []domain.Item
	tasks    []domain.Task
	result   any
	err      error
	itemEdit domain.ItemUpdate
	taskEdit domain.TaskUpdate
}

func (f *fakeConnectorService) record(method, userID, id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, serviceCall{method: method, userID: userID, id: id, name: name})
}

func (f *fakeConnectorService) recorded() []serviceCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]serviceCall(nil), f.calls...)
}

func (f *fakeConnectorService) ListBoards(ctx context.Context, userID string) ([]domain.Board, error) {
	f.record("ListBoards", userID, "", "")
	return f.boards, f.err
}

func (f *fakeConnectorService) CreateBoard(ctx context.Context, userID, name string) (any, error) {
	f.record("CreateBoard", userID, "", name)
	return f.result, f.err
}

func (f *fakeConnectorService) UpdateBoard(ctx context.Context, userID, boardID, name string) (any, error) {
	f.record("UpdateBoard", userID, boardID, name)
	return f.result, f.err
}

func (f *fakeConnectorService) DeleteBoard(ctx context.Context, userID, boardID string) (any, error) {
	f.record("DeleteBoard", userID, boardID, "")
	return f.result, f.err
}

func (f *fakeConnectorService) ListItems(ctx context.Context, userID, boardID string) ([]domain.Item, error) {
	f.record("ListItems", userID, boardID, "")
	return f.items, f.err
}

func (f *fakeConnectorService) CreateItem(ctx context.Context, userID, boardID, name string) (any, error) {
	f.record("CreateItem", userID, boardID, name)
	return f.result, f.err
}

func (f *fakeConnectorService) UpdateItem(ctx context.Context, userID, itemID string, update domain.ItemUpdate) (any, error) {
	f.record("UpdateItem", userID, itemID, "")
	f.itemEdit = update
	return f.result, f.err
}

func (f *fakeConnectorService) DeleteItem(ctx context.Context, userID, itemID string) (any, error) {
	f.record("DeleteItem", userID, itemID, "")
	return f.result, f.err
}

func (f *fakeConnectorService) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	f.record("ListTasks", userID, "", "")
	return f.tasks, f.err
}

func (f *fakeConnectorService) CreateTask(ctx context.Context, userID, name string) (any, error) {
	f.record("CreateTask", userID, "", name)
	return f.result, f.err
}

func (f *fakeConnectorService) UpdateTask(ctx context.Context, userID, taskID string, update domain.TaskUpdate) (any, error) {
	f.record("UpdateTask", userID, taskID, "")
	f.taskEdit = update
	return f.result, f.err
}

func (f *fakeConnectorService) DeleteTask(ctx context.Context, userID, taskID string) (any, error) {
	f.record("DeleteTask", userID, taskID, "")
	return f.result, f.err
}

type fakeResolver struct {
	credential domain.Credential
	err        error
	lookups    int
}

func (f *fakeResolver) Resolve(ctx context.Context, userID string, connector domain.ConnectorID) (string, error) {
	return f.credential.ID, f.err
}

func (f *fakeResolver) Lookup(ctx context.Context, userID string, connector domain.ConnectorID) (domain.Credential, error) {
	f.lookups++
	return f.credential, f.err
}

type fakeLinkManager struct {
	link       domain.CredentialLink
	err        error
	identity   string
	connectors []domain.ConnectorID
}

func (f *fakeLinkManager) CreateLink(ctx context.Context, identity string, connector domain.ConnectorID) (domain.CredentialLink, error) {
	f.identity = identity
	f.connectors = append(f.connectors, connector)
	return f.link, f.err
}

type fakeSessionManager struct {
	mu       sync.Mutex
	sessions map[string]domain.OAuthSession
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{sessions: map[string]domain.OAuthSession{}}
}

func (f *fakeSessionManager) Create(ctx context.Context, session domain.OAuthSession) (domain.OAuthSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	session.ID = "session-1"
	f.sessions[session.ID] = session

	return session, nil
}

func (f *fakeSessionManager) Get(ctx context.Context, id string) (domain.OAuthSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if id == "" {
		return domain.OAuthSession{}, domain.NewValidationError("Session ID is required")
	}

	session, ok := f.sessions[id]
	if !ok {
		return domain.OAuthSession{}, domain.NewNotFoundError("Session not found or expired")
	}

	return session, nil
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &body))
	}

	return resp, body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return req
}
