package cli

import (
	"context"
	"fmt"

	"github.com/flowbaker/alloybridge/internal/frontend"
	"github.com/flowbaker/alloybridge/internal/initialization"
	"github.com/flowbaker/alloybridge/internal/version"
	"github.com/flowbaker/alloybridge/pkg/clients/bridge"

	"github.com/spf13/cobra"
)

func newBridgeClient(ctx context.Context, cmd *cobra.Command, bridgeContainer *initialization.BridgeContainer) (*bridge.Client, error) {
	config, err := bridgeContainer.GetConfigManager().GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	serverURL := config.ServerURL
	if override, _ := cmd.Flags().GetString("server"); override != "" {
		serverURL = override
	}

	return bridge.NewClient(
		bridge.WithBaseURL(serverURL),
		bridge.WithTimeout(config.RequestTimeout),
		bridge.WithUserAgent(fmt.Sprintf("%s-cli/%s", version.ServiceName, version.GetVersion())),
	), nil
}

// emailFlag reads --email and falls back to an interactive prompt.
func emailFlag(cmd *cobra.Command) (string, error) {
	email, _ := cmd.Flags().GetString("email")
	if email != "" {
		return email, nil
	}

	return frontend.PromptEmail()
}

func addEmailFlag(cmd *cobra.Command) {
	cmd.Flags().String("email", "", "Email the RunAlloy credentials are linked to")
}
