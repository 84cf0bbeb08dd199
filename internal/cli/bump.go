package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqtool/internal/app"
	"reqtool/internal/types"
)

type bumpOptions struct {
	VersionFile string
	Part        string
	PackageDir  string
	PackageName string
	RepoURL     string
}

func newBumpCommand() *cobra.Command {
	opts := bumpOptions{}
	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Bump the package version file and print the matching pin line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBump(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.VersionFile, "version-file", "version.txt", "Path of the version file")
	cmd.Flags().StringVar(&opts.Part, "part", "patch", "Version part to bump (major, minor, patch)")
	cmd.Flags().StringVar(&opts.PackageDir, "package-dir", ".", "Directory whose contents are hashed into the version line")
	cmd.Flags().StringVar(&opts.PackageName, "package", "", "Package name for the generated pin line")
	cmd.Flags().StringVar(&opts.RepoURL, "repo-url", "", "Repository URL for the generated pin line")
	_ = viper.BindPFlag("version_file", cmd.Flags().Lookup("version-file"))
	_ = viper.BindPFlag("package_dir", cmd.Flags().Lookup("package-dir"))
	_ = viper.BindPFlag("package", cmd.Flags().Lookup("package"))
	_ = viper.BindPFlag("repo_url", cmd.Flags().Lookup("repo-url"))
	return cmd
}

func runBump(ctx context.Context, cmd *cobra.Command, opts bumpOptions) error {
	service := newAppService()
	result, err := service.Bump(ctx, app.BumpRequest{
		VersionFile: resolveString(cmd, opts.VersionFile, "version_file", "version-file"),
		Part:        types.VersionPart(opts.Part),
		PackageDir:  resolveString(cmd, opts.PackageDir, "package_dir", "package-dir"),
		PackageName: resolveString(cmd, opts.PackageName, "package", "package"),
		RepoURL:     resolveString(cmd, opts.RepoURL, "repo_url", "repo-url"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("bumped %s -> %s\n", result.OldVersion, result.NewVersion)
	if result.PinLine != "" {
		fmt.Println(result.PinLine)
	}
	return nil
}
