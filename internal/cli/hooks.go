package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

type hooksOptions struct {
	Manifest string
	Config   string
}

func newHooksCommand() *cobra.Command {
	opts := hooksOptions{}
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Check manifest pins against pre-commit hook revs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooks(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "requirements.txt", "Requirements manifest path")
	cmd.Flags().StringVar(&opts.Config, "pre-commit-config", ".pre-commit-config.yaml", "Pre-commit config path")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("pre_commit_config", cmd.Flags().Lookup("pre-commit-config"))
	return cmd
}

func runHooks(ctx context.Context, cmd *cobra.Command, opts hooksOptions) error {
	service := newAppService()
	result, err := service.Hooks(ctx, app.HooksRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		ConfigPath:   resolveString(cmd, opts.Config, "pre_commit_config", "pre-commit-config"),
		HookPackages: viper.GetStringMapString("hook_packages"),
	})
	for _, mismatch := range result.Mismatches {
		fmt.Println(mismatch.Reason)
	}
	if err != nil {
		return err
	}
	fmt.Printf("hooks in sync: %d pin(s) checked\n", len(result.Checked))
	return nil
}
