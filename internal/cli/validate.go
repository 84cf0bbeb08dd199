package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
	"reqtool/internal/types"
)

type validateOptions struct {
	Manifest string
	Aptfile  string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a requirements manifest and its includes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "requirements.txt", "Requirements manifest path")
	cmd.Flags().StringVar(&opts.Aptfile, "aptfile", "", "System package manifest path")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("aptfile", cmd.Flags().Lookup("aptfile"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	rules, err := lintRulesFromConfig()
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		AptfilePath:  resolveString(cmd, opts.Aptfile, "aptfile", "aptfile"),
		LintRules:    rules,
	})
	for _, issue := range result.Issues {
		fmt.Println(issue.String())
	}
	for _, violation := range result.Violations {
		fmt.Println(violation.String())
	}
	if err != nil {
		return err
	}
	fmt.Printf("validated: %d requirement(s)\n", result.RequirementCount)
	return nil
}

// lintRulesFromConfig reads the optional "lint" rule list from the
// viper config file.
func lintRulesFromConfig() ([]types.LintRule, error) {
	var rules []types.LintRule
	if err := viper.UnmarshalKey("lint", &rules); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid lint rules in config").
			WithCause(err)
	}
	return rules, nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if configured := viper.GetString(key); configured != "" {
		return configured
	}
	return value
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if configured := viper.GetInt(key); configured != 0 {
		return configured
	}
	return value
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
