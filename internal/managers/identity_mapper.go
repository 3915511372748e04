package managers

import (
	"encoding/base64"
	"os"
	"strings"

	"github.com/flowbaker/alloybridge/pkg/domain"
	"github.com/rs/zerolog/log"
)

const userEnvVarPrefix = "RUNALLOY_USER_"

type EnvLookupFunc func(key string) (string, bool)

type identityMapper struct {
	lookupEnv     EnvLookupFunc
	mappings      map[string]string
	defaultUserID string
}

type IdentityMapperDependencies struct {
	// LookupEnv defaults to os.LookupEnv
	LookupEnv     EnvLookupFunc
	Mappings      map[string]string
	DefaultUserID string
}

func NewIdentityMapper(deps IdentityMapperDependencies) domain.IdentityMapper {
	lookupEnv := deps.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	mappings := make(map[string]string, len(deps.Mappings))
	for email, userID := range deps.Mappings {
		mappings[strings.ToLower(strings.TrimSpace(email))] = userID
	}

	return &identityMapper{
		lookupEnv:     lookupEnv,
		mappings:      mappings,
		defaultUserID: deps.DefaultUserID,
	}
}

// MapUserID turns a caller identity into a RunAlloy user id. Emails are looked
// up in the configured table, then in RUNALLOY_USER_<base64(email)>; an
// unmapped email falls back to the default user. Anything else is already an id.
func (m *identityMapper) MapUserID(identity string) string {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return m.defaultUserID
	}

	if userID, ok := m.mappings[strings.ToLower(identity)]; ok && userID != "" {
		return userID
	}

	envVar := UserEnvVarName(identity)
	if userID, ok := m.lookupEnv(envVar); ok && userID != "" {
		log.Debug().Str("identity", identity).Str("env_var", envVar).Msg("Mapped identity via environment")
		return userID
	}

	if strings.Contains(identity, "@") {
		log.Debug().Str("identity", identity).Str("user_id", m.defaultUserID).Msg("No mapping for email, using default user")
		return m.defaultUserID
	}

	return identity
}

// UserEnvVarName returns the variable consulted for email; base64 keeps the
// name free of characters shells reject.
func UserEnvVarName(email string) string {
	return userEnvVarPrefix + base64.StdEncoding.EncodeToString([]byte(email))
}
