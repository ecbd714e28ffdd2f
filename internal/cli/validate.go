package cli

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/restmapper/rest"
)

type summary struct {
	Service string `json:"service" yaml:"service"`
	Client  string `json:"client" yaml:"client"`
	BaseURL string `json:"base_url" yaml:"base_url"`
	Codec   string `json:"codec" yaml:"codec"`
	Mapped  int    `json:"mapped" yaml:"mapped"`
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the config and mapping files and report what is mapped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			client, err := rest.New(cfg.REST, rest.WithLogger(cfg.Logger()))
			if err != nil {
				return err
			}
			defer client.Close(cmd.Context())

			return printValue(cmd.OutOrStdout(), opts.output, summary{
				Service: cfg.Name,
				Client:  client.Name(),
				BaseURL: client.BaseURL(),
				Codec:   client.Builder().Codec().Name(),
				Mapped:  client.Mapped(),
			})
		},
	}
}
