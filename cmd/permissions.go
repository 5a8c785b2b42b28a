package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tasnim.dev/idc-audit/internal/audit"
	awsclient "tasnim.dev/idc-audit/internal/aws"
	"tasnim.dev/idc-audit/internal/config"
	"tasnim.dev/idc-audit/internal/output"
)

func NewPermissionsCmd() *cobra.Command {
	var profile string
	var region string
	var instanceARN string
	var user string
	var format string
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Report which accounts and permission sets users can reach",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown output format %q (want table or json)", format)
			}

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

			// Progress goes to stderr so json output stays parseable.
			collector := audit.NewCollector(client, inst, os.Stderr)
			rows, err := collector.Report(ctx, user)
			if err != nil {
				return err
			}

			if format == "json" {
				return output.RenderJSON(os.Stdout, rows)
			}
			output.RenderTable(os.Stdout, rows, output.TableOptions{
				Colored:    isatty.IsTerminal(os.Stdout.Fd()),
				IncludeIDs: showIDs,
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region to use")
	cmd.Flags().StringVar(&instanceARN, "instance-arn", "", "Identity Center instance ARN (default: first instance found)")
	cmd.Flags().StringVarP(&user, "user", "u", "", "limit the report to one user (user name or user ID)")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "output format: table or json")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "include user and account ID columns")

	return cmd
}
