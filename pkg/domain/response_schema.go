package domain

import (
	"encoding/json"
	"fmt"
)

// ResponseSchema describes where one vendor action puts its payload. Paths are
// tried in order; the first present one wins. RootFallback accepts the whole
// body when no path matches.
type ResponseSchema struct {
	Action       ActionID
	Version      string
	Paths        []string
	RootFallback bool
}

func (s ResponseSchema) Extract(response any) (any, error) {
	for _, path := range s.Paths {
		if value, ok := LookupPath(response, path); ok {
			return value, nil
		}
	}

	if s.RootFallback && response != nil {
		return response, nil
	}

	return nil, NewSchemaMismatchError(fmt.Sprintf("%s@%s", s.Action, s.Version), s.Paths)
}

// ExtractInto extracts the payload and decodes it into T.
func ExtractInto[T any](schema ResponseSchema, response any) (T, error) {
	var result T

	value, err := schema.Extract(response)
	if err != nil {
		return result, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return result, fmt.Errorf("failed to re-encode %s payload: %w", schema.Action, err)
	}

	if err := json.Unmarshal(encoded, &result); err != nil {
		mismatch := NewSchemaMismatchError(fmt.Sprintf("%s@%s", schema.Action, schema.Version), schema.Paths)
		mismatch.Cause = err

		return result, mismatch
	}

	return result, nil
}
