package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/supermodeltools/pwakit/internal/logger"
	"github.com/supermodeltools/pwakit/internal/pwa/build"
)

func newValidateCmd(stdout, stderr io.Writer) *cobra.Command {
	var printJSON bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the manifest config against the public assets without writing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := loadConfig(cmd, stderr)
			if err != nil {
				return err
			}
			plan, err := build.NewBuilder(cfg, false).Plan(ctx)
			if err != nil {
				return err
			}
			if printJSON {
				_, err = stdout.Write(plan.Manifest)
				return err
			}
			logger.FromContext(ctx).Info("Manifest is valid",
				"icons", len(plan.Document.Icons()),
				"warnings", len(plan.Document.Warnings()),
			)
			fmt.Fprintf(stdout, "ok: %s\n", plan.Document.Name())
			return nil
		},
	}
	addConfigFlag(cmd)
	cmd.Flags().BoolVar(&printJSON, "print", false, "print the manifest JSON to stdout")
	return cmd
}
