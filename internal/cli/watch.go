package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

type watchOptions struct {
	Manifest string
	Aptfile  string
	Config   string
	Hooks    bool
}

func newWatchCommand() *cobra.Command {
	opts := watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-validate the manifest whenever it changes on disk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "requirements.txt", "Requirements manifest path")
	cmd.Flags().StringVar(&opts.Aptfile, "aptfile", "", "Aptfile path (optional)")
	cmd.Flags().StringVar(&opts.Config, "pre-commit-config", "", "Pre-commit config to cross-check on every change")
	cmd.Flags().BoolVar(&opts.Hooks, "hooks", false, "Also check pre-commit hook revs on every change")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("aptfile", cmd.Flags().Lookup("aptfile"))
	_ = viper.BindPFlag("pre_commit_config", cmd.Flags().Lookup("pre-commit-config"))
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts watchOptions) error {
	rules, err := lintRulesFromConfig()
	if err != nil {
		return err
	}
	configPath := ""
	if opts.Hooks {
		configPath = resolveString(cmd, opts.Config, "pre_commit_config", "pre-commit-config")
		if configPath == "" {
			configPath = ".pre-commit-config.yaml"
		}
	}
	service := newAppService()
	return service.Watch(ctx, app.WatchRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		AptfilePath:  resolveString(cmd, opts.Aptfile, "aptfile", "aptfile"),
		ConfigPath:   configPath,
		LintRules:    rules,
		HookPackages: viper.GetStringMapString("hook_packages"),
	})
}
