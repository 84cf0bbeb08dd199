package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

type inspectOptions struct {
	Manifest string
	Entries  bool
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a manifest and its includes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "requirements.txt", "Requirements manifest path")
	cmd.Flags().BoolVar(&opts.Entries, "entries", false, "List every entry with its nesting depth")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("requirements: %d (%d pinned)\n", result.Requirements, result.Pinned)
	fmt.Printf("editables:    %d\n", result.Editables)
	fmt.Printf("includes:     %d\n", result.Includes)
	fmt.Printf("options:      %d\n", result.Options)
	if !opts.Entries {
		return nil
	}
	for _, entry := range result.Entries {
		indent := strings.Repeat("  ", entry.Depth)
		if entry.Detail != "" {
			fmt.Printf("%s%s %s %s (%s:%d)\n", indent, entry.Kind, entry.Name, entry.Detail, entry.Source, entry.Line)
			continue
		}
		fmt.Printf("%s%s %s (%s:%d)\n", indent, entry.Kind, entry.Name, entry.Source, entry.Line)
	}
	return nil
}
