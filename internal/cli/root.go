package cli

import (
	"github.com/spf13/cobra"

	"github.com/newmesstuff/go-polarion/internal/cli/common"
	"github.com/newmesstuff/go-polarion/internal/cli/configcmd"
	testruncmd "github.com/newmesstuff/go-polarion/internal/cli/testrun"
)

// NewRootCommand assembles the polarionctl command tree.
func NewRootCommand() *cobra.Command {
	globalFlags := &common.GlobalFlags{}

	root := &cobra.Command{
		Use:           "polarionctl",
		Short:         "Client for a Polarion-style test-management service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	globalFlags.Register(root)

	root.AddCommand(testruncmd.NewCommand(globalFlags))
	root.AddCommand(configcmd.NewCommand(globalFlags))
	return root
}
