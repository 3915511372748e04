package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/flowbaker/alloybridge/internal/initialization"
	"github.com/flowbaker/alloybridge/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewServeCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the bridge HTTP server",
		Long:  `Start the HTTP server that exposes the board, item, task, OAuth and credential endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			address, _ := cmd.Flags().GetString("address")
			return runServe(bridgeContainer, address)
		},
	}

	cmd.Flags().String("address", "", "Listen address (defaults to HTTP_ADDRESS)")

	return cmd
}

func runServe(bridgeContainer *initialization.BridgeContainer, address string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	config, err := bridgeContainer.GetConfigManager().GetConfig(ctx)
	if err != nil {
		return err
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if address == "" {
		address = config.HTTPAddress
	}

	log.Info().
		Str("version", version.GetShortVersion()).
		Str("runalloy_api_url", config.RunAlloyAPIURL).
		Str("cache_driver", string(config.CacheDriver)).
		Msg("Bridge configuration loaded")

	app, err := bridgeContainer.BuildHTTPServer(ctx, initialization.BridgeDependencyConfig{
		Config: config,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := bridgeContainer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to release bridge resources")
		}
	}()

	log.Info().Str("address", address).Msg("Starting bridge server")

	if err := app.Listen(address, fiber.ListenConfig{
		GracefulContext:       ctx,
		DisableStartupMessage: true,
	}); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}

	log.Info().Msg("Bridge server stopped")

	return nil
}
