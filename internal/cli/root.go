// Package cli implements the restmapper command line: one-shot mapped
// calls, request previews and mapping validation against a service config.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/restmapper/config"
	"github.com/kbukum/restmapper/rest"
)

const defaultService = "restmapper"

type rootOptions struct {
	configFile string
	envFile    string
	envPrefix  string
	service    string
	output     string
}

// Execute runs the command line with args and returns the command error.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "restmapper",
		Short:         "Map entity operations to REST calls",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(opts.output)
		},
	}
	fs := cmd.PersistentFlags()
	fs.StringVarP(&opts.configFile, "config", "c", "", "config yaml path (default: <service>.yaml lookup)")
	fs.StringVar(&opts.envFile, "env-file", "", ".env file path")
	fs.StringVar(&opts.envPrefix, "env-prefix", "RESTMAPPER", "only bind environment variables with this prefix")
	fs.StringVar(&opts.service, "service", defaultService, "service name used for config lookup")
	fs.StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or yaml")

	cmd.AddCommand(
		newCallCmd(opts),
		newBuildCmd(opts),
		newValidateCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig loads the service config. Logs go to stderr so stdout only
// carries command output.
func (o *rootOptions) loadConfig() (*rest.FileConfig, error) {
	var loaderOpts []config.LoaderOption
	if o.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(o.envFile))
	}
	if o.envPrefix != "" {
		loaderOpts = append(loaderOpts, config.WithEnvPrefix(o.envPrefix))
	}
	cfg, err := rest.LoadConfig(o.service, loaderOpts...)
	if err != nil {
		return nil, err
	}
	cfg.Logging.Output = "stderr"
	return cfg, nil
}
