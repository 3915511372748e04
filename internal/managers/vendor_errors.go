package managers

import (
	"fmt"

	"github.com/flowbaker/alloybridge/pkg/clients/runalloy"
	"github.com/flowbaker/alloybridge/pkg/domain"
)

// toDomainError converts RunAlloy client failures into the bridge taxonomy.
// Errors already in the taxonomy and unrelated errors are returned untouched.
func toDomainError(err error) error {
	if _, ok := domain.AsError(err); ok {
		return err
	}

	apiErr, ok := runalloy.IsRunAlloyError(err)
	if !ok {
		return err
	}

	switch apiErr.Type {
	case runalloy.ErrorTypeTimeout:
		return domain.NewTimeoutError(apiErr, fmt.Sprint(apiErr.Details))
	case runalloy.ErrorTypeNetwork:
		networkErr := domain.NewNetworkError(apiErr.Cause)
		networkErr.Message = apiErr.Message
		return networkErr
	default:
		vendorErr := domain.NewVendorError(apiErr.StatusCode, apiErr.Message, apiErr.Details)
		vendorErr.Cause = apiErr
		return vendorErr
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}

	if e, ok := domain.AsError(err); ok {
		return string(e.Kind)
	}

	return "error"
}
