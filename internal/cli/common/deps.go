package common

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/newmesstuff/go-polarion/config"
	"github.com/newmesstuff/go-polarion/debugctx"
	configfile "github.com/newmesstuff/go-polarion/internal/providers/config/file"
	servicehttp "github.com/newmesstuff/go-polarion/internal/providers/service/http"
	"github.com/newmesstuff/go-polarion/service"
)

type GlobalFlags struct {
	ConfigPath string
	Debug      bool
}

func (f *GlobalFlags) Register(command *cobra.Command) {
	command.PersistentFlags().StringVar(&f.ConfigPath, "config", "", "path to the client config file")
	command.PersistentFlags().BoolVar(&f.Debug, "debug", false, "print request/response debug traces")
}

// RunContext derives the command context, enabling debug tracing to stderr
// when requested.
func RunContext(command *cobra.Command, flags *GlobalFlags) context.Context {
	ctx := command.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if flags != nil && flags.Debug {
		ctx = debugctx.With(ctx, command.ErrOrStderr())
	}
	return ctx
}

// LoadConfig reads the client configuration honoring the --config flag.
func LoadConfig(flags *GlobalFlags) (config.Config, error) {
	path := ""
	if flags != nil {
		path = flags.ConfigPath
	}
	return configfile.Load(path)
}

// ResolveService builds the HTTP test-management gateway from the loaded
// configuration.
func ResolveService(flags *GlobalFlags) (service.TestManagement, error) {
	cfg, err := LoadConfig(flags)
	if err != nil {
		return nil, err
	}
	return servicehttp.NewPolarionGateway(cfg.Server)
}
