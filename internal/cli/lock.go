package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
)

type lockOptions struct {
	Manifest  string
	Aptfile   string
	Index     string
	PyPIURL   string
	Output    string
	AptOutput string

	HTTPTimeout      int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func newLockCommand() *cobra.Command {
	opts := lockOptions{}
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Pin every requirement to an exact version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLock(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "requirements.txt", "Requirements manifest path")
	cmd.Flags().StringVar(&opts.Aptfile, "aptfile", "", "System package manifest path")
	cmd.Flags().StringVar(&opts.Index, "index", "", "File-based version index (YAML)")
	cmd.Flags().StringVar(&opts.PyPIURL, "pypi-url", "", "Base URL of a PyPI-compatible index")
	cmd.Flags().StringVar(&opts.Output, "output", "requirements.lock", "Lock file path")
	cmd.Flags().StringVar(&opts.AptOutput, "apt-output", "Aptfile.lock", "System package lock file path")
	cmd.Flags().IntVar(&opts.HTTPTimeout, "http-timeout", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 0, "HTTP retry count")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 0, "HTTP retry delay in milliseconds")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("aptfile", cmd.Flags().Lookup("aptfile"))
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("pypi_url", cmd.Flags().Lookup("pypi-url"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("apt_output", cmd.Flags().Lookup("apt-output"))
	_ = viper.BindPFlag("http_timeout", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", cmd.Flags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", cmd.Flags().Lookup("http-retry-delay-ms"))

	return cmd
}

func runLock(ctx context.Context, cmd *cobra.Command, opts lockOptions) error {
	service := newAppService()
	result, err := service.Lock(ctx, app.LockRequest{
		ManifestPath:     resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		AptfilePath:      resolveString(cmd, opts.Aptfile, "aptfile", "aptfile"),
		IndexPath:        resolveString(cmd, opts.Index, "index", "index"),
		PyPIURL:          resolveString(cmd, opts.PyPIURL, "pypi_url", "pypi-url"),
		Output:           resolveString(cmd, opts.Output, "output", "output"),
		AptOutput:        resolveString(cmd, opts.AptOutput, "apt_output", "apt-output"),
		HTTPTimeoutSec:   resolveInt(cmd, opts.HTTPTimeout, "http_timeout", "http-timeout"),
		HTTPRetries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
		HTTPRetryDelayMs: resolveInt(cmd, opts.HTTPRetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("locked: %d entries -> %s\n", len(result.Entries), result.OutputPath)
	return nil
}
