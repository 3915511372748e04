package managers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/flowbaker/alloybridge/pkg/clients/runalloy"
	"github.com/flowbaker/alloybridge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	vendorFailure := &runalloy.Error{
		Type:       runalloy.ErrorTypeAPI,
		StatusCode: http.StatusUnauthorized,
		Message:    "Unauthorized",
		Details:    map[string]any{"error": "Unauthorized"},
	}

	tests := []struct {
		name       string
		err        error
		wantKind   domain.ErrorKind
		wantStatus int
	}{
		{name: "vendor error", err: vendorFailure, wantKind: domain.ErrorKindVendor, wantStatus: http.StatusUnauthorized},
		{
			name:       "wrapped vendor error",
			err:        fmt.Errorf("failed to execute action: %w", vendorFailure),
			wantKind:   domain.ErrorKindVendor,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrapped timeout",
			err:        fmt.Errorf("call: %w", &runalloy.Error{Type: runalloy.ErrorTypeTimeout, StatusCode: http.StatusRequestTimeout}),
			wantKind:   domain.ErrorKindTimeout,
			wantStatus: http.StatusRequestTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domainErr, ok := domain.AsError(toDomainError(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, domainErr.Kind)
			assert.Equal(t, tt.wantStatus, domainErr.StatusCode)
		})
	}
}

func TestToDomainError_PassesOtherErrorsThrough(t *testing.T) {
	err := errors.New("boom")
	assert.Same(t, err, toDomainError(err))
}
