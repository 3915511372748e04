package domain

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSchema_Extract(t *testing.T) {
	schema := ResponseSchema{
		Action:  "listBoards",
		Version: "2025-06",
		Paths:   []string{"responseData.data.boards", "data.boards"},
	}

	t.Run("first present path wins", func(t *testing.T) {
		value, err := schema.Extract(map[string]any{
			"responseData": map[string]any{"data": map[string]any{"boards": []any{"first"}}},
			"data":         map[string]any{"boards": []any{"second"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []any{"first"}, value)
	})

	t.Run("later path used when earlier absent", func(t *testing.T) {
		value, err := schema.Extract(map[string]any{
			"data": map[string]any{"boards": []any{"second"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []any{"second"}, value)
	})

	t.Run("nothing present is a mismatch", func(t *testing.T) {
		_, err := schema.Extract(map[string]any{"other": true})
		require.Error(t, err)

		domainErr, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, ErrorKindSchemaMismatch, domainErr.Kind)
		assert.Equal(t, http.StatusBadGateway, domainErr.StatusCode)
		assert.Equal(t, "Unexpected response shape for listBoards@2025-06", domainErr.Message)
	})

	t.Run("root fallback", func(t *testing.T) {
		withRoot := schema
		withRoot.RootFallback = true

		response := map[string]any{"status": "ok"}
		value, err := withRoot.Extract(response)
		require.NoError(t, err)
		assert.Equal(t, response, value)

		_, err = withRoot.Extract(nil)
		assert.True(t, IsKind(err, ErrorKindSchemaMismatch))
	})
}

func TestExtractInto(t *testing.T) {
	schema := ResponseSchema{Action: "listBoards", Version: "v1", Paths: []string{"data.boards"}}

	boards, err := ExtractInto[[]Board](schema, map[string]any{
		"data": map[string]any{
			"boards": []any{map[string]any{"id": "1", "name": "Roadmap", "board_kind": "public"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []Board{{ID: "1", Name: "Roadmap", BoardKind: "public"}}, boards)

	_, err = ExtractInto[[]Board](schema, map[string]any{
		"data": map[string]any{"boards": "not a list"},
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrorKindSchemaMismatch))
}
