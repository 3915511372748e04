package cli

import (
	"fmt"
	"os"

	"github.com/flowbaker/alloybridge/internal/initialization"
	"github.com/flowbaker/alloybridge/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "alloybridge",
		Short: "RunAlloy bridge for Monday and Zoho CRM",
		Long: `alloybridge serves the Monday board/item and Zoho CRM task endpoints on top of
RunAlloy, and ships a terminal client that drives them.`,
		Version:       version.GetShortVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("server", "", "Override the bridge server URL used by client commands")

	bridgeContainer, err := initialization.NewBridgeContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize bridge container: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(NewServeCommand(bridgeContainer))
	rootCmd.AddCommand(NewAppCommand(bridgeContainer))
	rootCmd.AddCommand(NewTasksCommand(bridgeContainer))
	rootCmd.AddCommand(NewBoardsCommand(bridgeContainer))
	rootCmd.AddCommand(NewItemsCommand(bridgeContainer))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
