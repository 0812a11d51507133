package testrun

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/newmesstuff/go-polarion/internal/cli/common"
	"github.com/newmesstuff/go-polarion/testrun"
)

func newAttachmentCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "attachment",
		Short: "Manage test run attachments",
	}

	command.AddCommand(newAttachmentDownloadCommand(globalFlags))
	command.AddCommand(newAttachmentUploadCommand(globalFlags, false))
	command.AddCommand(newAttachmentUploadCommand(globalFlags, true))
	command.AddCommand(newAttachmentDeleteCommand(globalFlags))
	return command
}

func newAttachmentDownloadCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	var output string

	command := &cobra.Command{
		Use:   "download <run-uri> <file-name>",
		Short: "Download an attachment",
		Args:  cobra.ExactArgs(2),
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

			target := output
			if target == "" {
				target = args[1]
			}
			if err := run.SaveAttachmentToFile(ctx, args[1], target); err != nil {
				return err
			}
			fmt.Fprintf(command.OutOrStdout(), "saved %s to %s\n", args[1], target)
			return nil
		},
	}

	command.Flags().StringVarP(&output, "output", "o", "", "target file path (defaults to the attachment name)")
	return command
}

func newAttachmentUploadCommand(globalFlags *common.GlobalFlags, replace bool) *cobra.Command {
	use := "upload <run-uri> <file-path>"
	short := "Upload a new attachment"
	if replace {
		use = "replace <run-uri> <file-path>"
		short = "Replace an existing attachment's content"
	}

	var title string
	command := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
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

			op := run.AddAttachment
			if replace {
				op = run.UpdateAttachment
			}
			if err := op(ctx, args[1], title); err != nil {
				return err
			}
			fmt.Fprintf(command.OutOrStdout(), "uploaded %s\n", args[1])
			return nil
		},
	}

	command.Flags().StringVar(&title, "title", "", "attachment title")
	return command
}

func newAttachmentDeleteCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	var confirmDelete bool

	command := &cobra.Command{
		Use:   "delete <run-uri> <file-name>",
		Short: "Delete an attachment",
		Example: strings.Join([]string{
			"  polarionctl testrun attachment delete <run-uri> log.txt --confirm-delete",
		}, "\n"),
		Args: cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, args []string) error {
			if !confirmDelete {
				confirmed, err := promptDeleteConfirmation(command, args[1])
				if err != nil {
					return err
				}
				if !confirmed {
					return fmt.Errorf("deletion of %s not confirmed", args[1])
				}
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

			if err := run.DeleteAttachment(ctx, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(command.OutOrStdout(), "deleted %s\n", args[1])
			return nil
		},
	}

	command.Flags().BoolVar(&confirmDelete, "confirm-delete", false, "skip the interactive confirmation")
	return command
}

func promptDeleteConfirmation(command *cobra.Command, fileName string) (bool, error) {
	if !common.IsInteractiveTerminal(command) {
		return false, fmt.Errorf("flag --confirm-delete is required in non-interactive mode")
	}

	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete attachment %q?", fileName)).
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
