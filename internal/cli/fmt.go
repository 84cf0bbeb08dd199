package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

type fmtOptions struct {
	Manifest string
	Check    bool
}

func newFmtCommand() *cobra.Command {
	opts := fmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite a manifest in canonical form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFmt(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "requirements.txt", "Requirements manifest path")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Report instead of rewriting")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	return cmd
}

func runFmt(ctx context.Context, cmd *cobra.Command, opts fmtOptions) error {
	service := newAppService()
	result, err := service.Fmt(ctx, app.FmtRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		Check:        resolveBool(cmd, opts.Check, "check", "check"),
	})
	if err != nil {
		return err
	}
	if opts.Check && result.Changed {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s is not in canonical form", result.Path))
	}
	if result.Changed {
		fmt.Printf("formatted: %s\n", result.Path)
	} else {
		fmt.Printf("already canonical: %s\n", result.Path)
	}
	return nil
}
