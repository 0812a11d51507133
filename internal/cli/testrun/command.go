package testrun

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newmesstuff/go-polarion/internal/cli/common"
	"github.com/newmesstuff/go-polarion/testrun"
)

// NewCommand builds the `testrun` command tree.
func NewCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "testrun",
		Short: "Inspect and update test runs",
	}

	command.AddCommand(newGetCommand(globalFlags))
	command.AddCommand(newUpdateCommand(globalFlags))
	command.AddCommand(newAddTestCaseCommand(globalFlags))
	command.AddCommand(newAttachmentCommand(globalFlags))
	return command
}

func newGetCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	var showRecords bool

	command := &cobra.Command{
		Use:   "get <uri>",
		Short: "Read a test run",
		Example: strings.Join([]string{
			"  polarionctl testrun get subterra:data-service:objects:/default/PRJ${TestRun}RUN-1",
			"  polarionctl testrun get <uri> --records",
		}, "\n"),
		Args: cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			svc, err := common.ResolveService(globalFlags)
			if err != nil {
				return err
			}

			ctx := common.RunContext(command, globalFlags)
			run, err := testrun.Load(ctx, svc, args[0])
			if err != nil {
				return err
			}

			out := command.OutOrStdout()
			fmt.Fprintln(out, run.String())
			fmt.Fprintf(out, "status: %s\n", run.Status)
			if run.FinishedOn != "" {
				fmt.Fprintf(out, "finished: %s\n", run.FinishedOn)
			}
			fmt.Fprintf(out, "records: %d\n", len(run.Records()))

			if showRecords {
				for _, record := range run.Records() {
					result := record.Result
					if result == "" {
						result = "-"
					}
					fmt.Fprintf(out, "  %3d  %-20s %s\n", record.Iteration, record.TestCaseID, result)
				}
			}
			return nil
		},
	}

	command.Flags().BoolVar(&showRecords, "records", false, "list the run's test records")
	return command
}

func newUpdateCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	var title string
	var status string

	command := &cobra.Command{
		Use:   "update <uri>",
		Short: "Change test run fields and save the delta",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if title == "" && status == "" {
				return fmt.Errorf("nothing to update: pass --title or --status")
			}

			svc, err := common.ResolveService(globalFlags)
			if err != nil {
				return err
			}

			ctx := common.RunContext(command, globalFlags)
			run, err := testrun.Load(ctx, svc, args[0])
			if err != nil {
				return err
			}

			if title != "" {
				run.Title = title
			}
			if status != "" {
				run.Status = status
			}
			if err := run.Save(ctx); err != nil {
				return err
			}

			fmt.Fprintln(command.OutOrStdout(), run.String())
			return nil
		},
	}

	command.Flags().StringVar(&title, "title", "", "new test run title")
	command.Flags().StringVar(&status, "status", "", "new test run status")
	return command
}

func newAddTestCaseCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	var params []string

	command := &cobra.Command{
		Use:   "add-testcase <run-uri> <testcase-uri>",
		Short: "Append a test record referencing a work item",
		Example: strings.Join([]string{
			"  polarionctl testrun add-testcase <run-uri> <testcase-uri>",
			"  polarionctl testrun add-testcase <run-uri> <testcase-uri> --param browser=firefox",
		}, "\n"),
		Args: cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			parameters, err := parseParameters(params)
			if err != nil {
				return err
			}

			svc, err := common.ResolveService(globalFlags)
			if err != nil {
				return err
			}

			ctx := common.RunContext(command, globalFlags)
			run, err := testrun.Load(ctx, svc, args[0])
			if err != nil {
				return err
			}

			if err := run.AddTestCase(ctx, args[1], parameters); err != nil {
				return err
			}
			fmt.Fprintf(command.OutOrStdout(), "added test case to %s (%d records)\n", run.ID, len(run.Records()))
			return nil
		},
	}

	command.Flags().StringArrayVar(&params, "param", nil, "test parameter as name=value (repeatable)")
	return command
}
