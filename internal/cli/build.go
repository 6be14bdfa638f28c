package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/supermodeltools/pwakit/internal/pwa/build"
)

func newBuildCmd(stderr io.Writer) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Validate the manifest config and write the manifest into the output dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := loadConfig(cmd, stderr)
			if err != nil {
				return err
			}
			_, err = build.NewBuilder(cfg, force).Build(ctx)
			return err
		},
	}
	addConfigFlag(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "rewrite artifacts even when unchanged")
	return cmd
}
