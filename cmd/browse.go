package cmd

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"tasnim.dev/idc-audit/internal/audit"
	awsclient "tasnim.dev/idc-audit/internal/aws"
	"tasnim.dev/idc-audit/internal/config"
	"tasnim.dev/idc-audit/internal/tui"
)

func NewBrowseCmd() *cobra.Command {
	var profile string
	var region string
	var instanceARN string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse accounts, users, groups and permission sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			profile, region, instanceARN = cfg.Merge(profile, region, instanceARN)

			ctx := context.Background()
			client, err := awsclient.NewServiceClient(ctx, profile, region)
			if err != nil {
				return fmt.Errorf("initializing AWS client: %w", err)
			}

			inst, err := audit.ResolveInstance(ctx, client.SSOAdmin, instanceARN)
			if err != nil {
				return err
			}
			accountID := client.AccountID(ctx)

			model := tui.NewModel(client, inst, profile, accountID)
			p := tea.NewProgram(model)
			if _, err := p.Run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region to use")
	cmd.Flags().StringVar(&instanceARN, "instance-arn", "", "Identity Center instance ARN (default: first instance found)")

	return cmd
}
