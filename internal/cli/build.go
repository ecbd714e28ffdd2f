package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/restmapper/codec"
	"github.com/kbukum/restmapper/rest"
	"github.com/kbukum/restmapper/urlbuilder"
)

// requestView is the printable form of a request descriptor. JSON bodies
// are shown as text.
type requestView struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Type    string            `json:"type" yaml:"type"`
	Method  string            `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    any               `json:"body,omitempty" yaml:"body,omitempty"`
}

func newRequestView(req *urlbuilder.Request, c codec.Codec) requestView {
	v := requestView{
		Kind:    req.Kind.String(),
		Type:    req.TypeName,
		Method:  req.Method,
		URL:     req.URL,
		Headers: req.Headers,
	}
	if req.HasBody {
		if c.Name() == codec.NameJSON {
			v.Body = string(req.Body)
		} else {
			v.Body = req.Body
		}
	}
	return v
}

func newBuildCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "build <kind> <type> [entity]",
		Short: "Print the request an operation maps to without sending it",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := parseOperation(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			client, err := rest.New(cfg.REST, rest.WithLogger(cfg.Logger()))
			if err != nil {
				return err
			}
			defer client.Close(cmd.Context())

			builder := client.Builder()
			req, ok, err := builder.Build(op.kind, op.typeName, op.entity)
			if !ok {
				return fmt.Errorf("no %s mapping for %q", op.kind, op.typeName)
			}
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), opts.output, newRequestView(req, builder.Codec()))
		},
	}
}
