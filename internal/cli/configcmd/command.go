package configcmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/newmesstuff/go-polarion/config"
	"github.com/newmesstuff/go-polarion/internal/cli/common"
	configfile "github.com/newmesstuff/go-polarion/internal/providers/config/file"
)

// NewCommand builds the `config` command tree.
func NewCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Manage the client configuration",
	}

	command.AddCommand(newSetupCommand(globalFlags))
	command.AddCommand(newPathCommand(globalFlags))
	return command
}

func newSetupCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	var baseURL string
	var token string

	command := &cobra.Command{
		Use:   "setup",
		Short: "Write a client config file",
		Example: strings.Join([]string{
			"  polarionctl config setup --base-url https://polarion.example.com/api",
			"  polarionctl config setup --base-url https://polarion.example.com/api --token <token>",
		}, "\n"),
		RunE: func(command *cobra.Command, args []string) error {
			if strings.TrimSpace(baseURL) == "" {
				return fmt.Errorf("flag --base-url is required")
			}

			resolvedToken := token
			if resolvedToken == "" && common.IsInteractiveTerminal(command) {
				prompted, err := promptToken(command)
				if err != nil {
					return err
				}
				resolvedToken = prompted
			}

			cfg := config.Config{Server: config.Server{BaseURL: strings.TrimSpace(baseURL)}}
			if resolvedToken != "" {
				cfg.Server.Auth = &config.Auth{BearerToken: &config.BearerTokenAuth{Token: resolvedToken}}
			}

			path, err := configfile.Save(globalFlags.ConfigPath, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(command.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	command.Flags().StringVar(&baseURL, "base-url", "", "test-management API base url")
	command.Flags().StringVar(&token, "token", "", "bearer token (prompted when omitted on a terminal)")
	return command
}

func newPathCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the resolved config file path",
		RunE: func(command *cobra.Command, args []string) error {
			path, err := configfile.ResolveConfigPath(globalFlags.ConfigPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(command.OutOrStdout(), path)
			return nil
		},
	}
}

func promptToken(command *cobra.Command) (string, error) {
	in, ok := command.InOrStdin().(*os.File)
	if !ok {
		return "", nil
	}

	fmt.Fprint(command.OutOrStdout(), "bearer token (empty for anonymous): ")
	if term.IsTerminal(int(in.Fd())) {
		raw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(command.OutOrStdout())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
