package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

type outdatedOptions struct {
	Manifest         string
	Aptfile          string
	Index            string
	PyPIURL          string
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func newOutdatedCommand() *cobra.Command {
	opts := outdatedOptions{}
	cmd := &cobra.Command{
		Use:   "outdated",
		Short: "Report pinned packages that lag behind the latest available version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOutdated(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "requirements.txt", "Requirements manifest path")
	cmd.Flags().StringVar(&opts.Aptfile, "aptfile", "", "Aptfile path (optional)")
	cmd.Flags().StringVar(&opts.Index, "index", "", "Version index file (YAML); overrides the network index")
	cmd.Flags().StringVar(&opts.PyPIURL, "pypi-url", "", "Base URL of the package index")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 0, "HTTP retry attempts")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 0, "Initial HTTP retry delay in milliseconds")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("aptfile", cmd.Flags().Lookup("aptfile"))
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("pypi_url", cmd.Flags().Lookup("pypi-url"))
	_ = viper.BindPFlag("http_timeout", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", cmd.Flags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", cmd.Flags().Lookup("http-retry-delay-ms"))
	return cmd
}

func runOutdated(ctx context.Context, cmd *cobra.Command, opts outdatedOptions) error {
	service := newAppService()
	result, err := service.Outdated(ctx, app.OutdatedRequest{
		ManifestPath:     resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		AptfilePath:      resolveString(cmd, opts.Aptfile, "aptfile", "aptfile"),
		IndexPath:        resolveString(cmd, opts.Index, "index", "index"),
		PyPIURL:          resolveString(cmd, opts.PyPIURL, "pypi_url", "pypi-url"),
		HTTPTimeoutSec:   resolveInt(cmd, opts.HTTPTimeoutSec, "http_timeout", "http-timeout"),
		HTTPRetries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
		HTTPRetryDelayMs: resolveInt(cmd, opts.HTTPRetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
	})
	if err != nil {
		return err
	}
	behind := 0
	for _, entry := range result.Entries {
		if !entry.Behind {
			continue
		}
		behind++
		fmt.Printf("%s/%s: pinned %s, latest %s\n", entry.Type, entry.Package, entry.Pinned, entry.Latest)
	}
	if behind == 0 {
		fmt.Printf("all %d pin(s) are up to date\n", len(result.Entries))
	}
	return nil
}
