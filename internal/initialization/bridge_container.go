package initialization

import (
	"context"
	"fmt"
	"net/http"

	"github.com/flowbaker/alloybridge/internal/auth"
	"github.com/flowbaker/alloybridge/internal/controllers"
	"github.com/flowbaker/alloybridge/internal/managers"
	"github.com/flowbaker/alloybridge/internal/server"
	"github.com/flowbaker/alloybridge/internal/version"
	"github.com/flowbaker/alloybridge/pkg/clients/runalloy"
	"github.com/flowbaker/alloybridge/pkg/domain"
	mondayintegration "github.com/flowbaker/alloybridge/pkg/integrations/monday"
	zohointegration "github.com/flowbaker/alloybridge/pkg/integrations/zoho"
	"github.com/flowbaker/alloybridge/pkg/store/inmemory"
	redisstore "github.com/flowbaker/alloybridge/pkg/store/redis"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

const redisKeyPrefix = "alloybridge"

// BridgeDependencies is everything the HTTP server is built from.
type BridgeDependencies struct {
	Store              domain.KeyValueStore
	RunAlloyClient     runalloy.ClientInterface
	IdentityMapper     domain.IdentityMapper
	CredentialResolver domain.CredentialResolver
	ActionExecutor     domain.ActionExecutor
	SessionManager     domain.OAuthSessionManager
	Monday             *mondayintegration.MondayIntegration
	Zoho               *zohointegration.ZohoIntegration
	Server             server.HTTPServerDependencies
}

type BridgeDependencyConfig struct {
	Config domain.BridgeConfig
	// Store overrides the store picked from Config.CacheDriver
	Store domain.KeyValueStore
	// HTTPClient is used for RunAlloy calls and the OAuth token exchange
	HTTPClient *http.Client
	// MondayAuthURL and MondayTokenURL override the Monday OAuth endpoints
	MondayAuthURL  string
	MondayTokenURL string
}

type BridgeContainer struct {
	configManager domain.ConfigManager
	closers       []func() error
}

func NewBridgeContainer() (*BridgeContainer, error) {
	configManager, err := domain.NewConfigManager()
	if err != nil {
		return nil, err
	}

	return &BridgeContainer{
		configManager: configManager,
	}, nil
}

func (c *BridgeContainer) GetConfigManager() domain.ConfigManager {
	return c.configManager
}

func (c *BridgeContainer) BuildBridgeDependencies(ctx context.Context, cfg BridgeDependencyConfig) (*BridgeDependencies, error) {
	log.Info().Msg("Building bridge dependencies")

	config := cfg.Config

	store := cfg.Store
	if store == nil {
		built, err := c.buildStore(ctx, config)
		if err != nil {
			return nil, err
		}
		store = built
	}

	clientOptions := []runalloy.ClientOption{
		runalloy.WithBaseURL(config.RunAlloyAPIURL),
		runalloy.WithAPIKey(config.RunAlloyAPIKey),
		runalloy.WithAPIVersion(config.RunAlloyAPIVersion),
		runalloy.WithTimeout(config.RequestTimeout),
		runalloy.WithUserAgent(fmt.Sprintf("%s/%s", version.ServiceName, version.GetVersion())),
	}
	if cfg.HTTPClient != nil {
		clientOptions = append(clientOptions, runalloy.WithHTTPClient(cfg.HTTPClient))
	}

	runalloyClient := runalloy.NewClient(clientOptions...)

	identityMapper := managers.NewIdentityMapper(managers.IdentityMapperDependencies{
		Mappings:      config.UserMappings,
		DefaultUserID: config.RunAlloyUserID,
	})

	credentialResolver := managers.NewCredentialResolver(managers.CredentialResolverDependencies{
		Client:         runalloyClient,
		Store:          store,
		IdentityMapper: identityMapper,
		TTL:            config.CredentialCacheTTL,
	})

	actionExecutor := managers.NewActionExecutor(managers.ActionExecutorDependencies{
		Client:             runalloyClient,
		CredentialResolver: credentialResolver,
		IdentityMapper:     identityMapper,
	})

	linkManager := managers.NewCredentialLinkManager(managers.CredentialLinkManagerDependencies{
		Client:         runalloyClient,
		IdentityMapper: identityMapper,
		RedirectURI:    config.AppURL,
	})

	sessionManager := managers.NewSessionManager(managers.SessionManagerDependencies{
		Store: store,
		TTL:   config.SessionTTL,
	})

	var stateSigner *auth.OAuthStateSigner
	if config.MondayClientSecret != "" {
		signer, err := auth.NewOAuthStateSigner(config.MondayClientSecret, auth.DefaultStateTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to create oauth state signer: %w", err)
		}
		stateSigner = signer
	}

	monday := mondayintegration.NewMondayIntegration(mondayintegration.MondayIntegrationDependencies{
		Executor: actionExecutor,
	})

	zoho := zohointegration.NewZohoIntegration(zohointegration.ZohoIntegrationDependencies{
		Executor:           actionExecutor,
		CredentialResolver: credentialResolver,
		IdentityMapper:     identityMapper,
		APIVersion:         config.RunAlloyAPIVersion,
	})

	serverDeps := server.HTTPServerDependencies{
		BoardsController: controllers.NewBoardsController(controllers.BoardsControllerDependencies{
			BoardService: monday,
		}),
		ItemsController: controllers.NewItemsController(controllers.ItemsControllerDependencies{
			ItemService: monday,
		}),
		TasksController: controllers.NewTasksController(controllers.TasksControllerDependencies{
			TaskService: zoho,
		}),
		AuthController: controllers.NewAuthController(controllers.AuthControllerDependencies{
			CredentialLinkManager: linkManager,
			CredentialResolver:    credentialResolver,
			AppURL:                config.AppURL,
		}),
		OAuthController: controllers.NewOAuthController(controllers.OAuthControllerDependencies{
			ClientID:       config.MondayClientID,
			ClientSecret:   config.MondayClientSecret,
			RedirectURI:    config.MondayRedirectURI,
			AppURL:         config.AppURL,
			AuthURL:        cfg.MondayAuthURL,
			TokenURL:       cfg.MondayTokenURL,
			StateSigner:    stateSigner,
			SessionManager: sessionManager,
			HTTPClient:     cfg.HTTPClient,
		}),
		SessionController: controllers.NewSessionController(controllers.SessionControllerDependencies{
			SessionManager: sessionManager,
		}),
	}

	return &BridgeDependencies{
		Store:              store,
		RunAlloyClient:     runalloyClient,
		IdentityMapper:     identityMapper,
		CredentialResolver: credentialResolver,
		ActionExecutor:     actionExecutor,
		SessionManager:     sessionManager,
		Monday:             monday,
		Zoho:               zoho,
		Server:             serverDeps,
	}, nil
}

// BuildHTTPServer wires the dependencies into a ready fiber app.
func (c *BridgeContainer) BuildHTTPServer(ctx context.Context, cfg BridgeDependencyConfig) (*fiber.App, error) {
	deps, err := c.BuildBridgeDependencies(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return server.NewHTTPServer(deps.Server), nil
}

func (c *BridgeContainer) buildStore(ctx context.Context, config domain.BridgeConfig) (domain.KeyValueStore, error) {
	switch config.CacheDriver {
	case domain.CacheDriverRedis:
		store, err := redisstore.New(ctx, redisstore.Opts{
			URL:       config.RedisURL,
			KeyPrefix: redisKeyPrefix,
		})
		if err != nil {
			return nil, err
		}

		c.closers = append(c.closers, store.Close)
		log.Info().Msg("Using Redis for credential cache and sessions")

		return store, nil
	default:
		log.Info().Msg("Using in-memory credential cache and sessions")
		return inmemory.New(), nil
	}
}

// Close releases connections opened while building dependencies.
func (c *BridgeContainer) Close() error {
	var firstErr error

	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	c.closers = nil

	return firstErr
}
