package cli

import (
	"context"
	"fmt"

	"github.com/flowbaker/alloybridge/internal/frontend"
	"github.com/flowbaker/alloybridge/internal/initialization"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewAppCommand(bridgeContainer *initialization.BridgeContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Connect an account and show its tasks or boards",
		Long: `Check whether the email has a linked credential. Without one, print the RunAlloy
link to connect it; with one, fetch and show the task or board list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, _ := cmd.Flags().GetString("resource")
			return runApp(cmd, bridgeContainer, frontend.Resource(resource))
		},
	}

	addEmailFlag(cmd)
	cmd.Flags().String("resource", string(frontend.ResourceTasks), "What to show: tasks or boards")

	return cmd
}

func runApp(cmd *cobra.Command, bridgeContainer *initialization.BridgeContainer, resource frontend.Resource) error {
	ctx := context.Background()

	client, err := newBridgeClient(ctx, cmd, bridgeContainer)
	if err != nil {
		return err
	}

	flow, err := frontend.NewFlow(frontend.FlowDependencies{
		Backend:  client,
		Resource: resource,
		OnChange: func(from, to frontend.State) {
			log.Debug().Str("from", string(from)).Str("to", string(to)).Msg("App state changed")
		},
	})
	if err != nil {
		return err
	}

	email, err := emailFlag(cmd)
	if err != nil {
		return err
	}

	if err := flow.EnterEmail(email); err != nil {
		return err
	}

	if err := flow.Run(ctx); err != nil {
		fmt.Println(frontend.RenderError(err.Error()))
		return err
	}

	switch flow.State() {
	case frontend.StateRedirected:
		fmt.Println(frontend.RenderWarn(fmt.Sprintf("No %s connection for %s yet", flow.Resource(), flow.Email())))
		fmt.Printf("   Open this link to connect it:\n   %s\n", flow.LinkURL())
	case frontend.StateListShown:
		fmt.Println(frontend.RenderOK(fmt.Sprintf("Connected as %s", flow.Email())))
		if flow.Resource() == frontend.ResourceBoards {
			fmt.Println(frontend.RenderBoards(flow.Boards()))
		} else {
			fmt.Println(frontend.RenderTasks(flow.Tasks()))
		}
	}

	return nil
}
