package managers

import (
	"context"
	"sync"

	"github.com/flowbaker/alloybridge/pkg/clients/runalloy"
)

type fakeRunAlloyClient struct {
	mu sync.Mutex

	credentials    []runalloy.UserCredential
	credentialsErr error
	listCalls      int
	listedUsers    []string

	executeResult any
	executeErr    error
	executed      []*runalloy.ExecuteActionRequest

	createResponse *runalloy.CreateCredentialResponse
	createErr      error
	created        []*runalloy.CreateCredentialRequest
	createdFor     []string
}

func (f *fakeRunAlloyClient) ExecuteAction(ctx context.Context, req *runalloy.ExecuteActionRequest) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.executed = append(f.executed, req)

	return f.executeResult, f.executeErr
}

func (f *fakeRunAlloyClient) ListUserCredentials(ctx context.Context, userID string) (*runalloy.ListCredentialsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	f.listedUsers = append(f.listedUsers, userID)

	if f.credentialsErr != nil {
		return nil, f.credentialsErr
	}

	return &runalloy.ListCredentialsResponse{Credentials: f.credentials}, nil
}

func (f *fakeRunAlloyClient) CreateCredential(ctx context.Context, connectorID string, req *runalloy.CreateCredentialRequest) (*runalloy.CreateCredentialResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, req)
	f.createdFor = append(f.createdFor, connectorID)

	if f.createErr != nil {
		return nil, f.createErr
	}

	if f.createResponse == nil {
		return &runalloy.CreateCredentialResponse{}, nil
	}

	return f.createResponse, nil
}

type staticMapper map[string]string

func (m staticMapper) MapUserID(identity string) string {
	if userID, ok := m[identity]; ok {
		return userID
	}

	return identity
}
