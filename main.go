package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tasnim.dev/idc-audit/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "idc-audit",
		Short: "IAM Identity Center access auditing",
	}

	rootCmd.AddCommand(cmd.NewPermissionsCmd())
	rootCmd.AddCommand(cmd.NewBrowseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
