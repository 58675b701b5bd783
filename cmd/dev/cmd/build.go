package cmd

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gophertribe/devtool/build"
)

// BuildCmd builds the imu cli natively, or inside the build image when
// targeting another platform (hid needs cgo, so cross builds go through docker).
func BuildCmd() *cobra.Command {
	var opts struct {
		version   string
		goos      string
		goarch    string
		crossOS   string
		crossArch string
		noCache   bool
	}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the imu cli",
		RunE: func(cmd *cobra.Command, args []string) error {
			goos, goarch := opts.goos, opts.goarch
			if goos == runtime.GOOS && goarch == runtime.GOARCH {
				if opts.crossOS != "" && opts.crossArch != "" {
					goos, goarch = opts.crossOS, opts.crossArch
				}
				slog.Info("building imu", "os", goos, "arch", goarch, "version", opts.version)
				return build.GoBuild("dist/imu", "./cmd/imu", build.GoBuildOpts{
					Version:       opts.version,
					InjectVersion: true,
					ConfigPackage: "main",
					EnableCgo:     true,
					Arch:          goarch,
					OS:            goos,
				})
			}
			slog.Info("building imu in docker", "os", goos, "arch", goarch)
			return build.Docker(cmd.Context(), fmt.Sprintf("./dev-%s-%s", goos, goarch),
				[]string{"build", "--version", opts.version, "--cross-os", opts.crossOS, "--cross-arch", opts.crossArch},
				build.DockerBuildOpts{
					NoCache: opts.noCache,
					Image:   "gophertribe/gobuild:1.25-bookworm",
				})
		},
	}
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not use cache when building the app")
	cmd.Flags().StringVar(&opts.version, "version", "latest", "version of the cli")
	cmd.Flags().StringVar(&opts.goos, "os", runtime.GOOS, "os to build for")
	cmd.Flags().StringVar(&opts.goarch, "arch", runtime.GOARCH, "arch to build for")
	cmd.Flags().StringVar(&opts.crossOS, "cross-os", "", "os to cross-compile for")
	cmd.Flags().StringVar(&opts.crossArch, "cross-arch", "", "arch to cross-compile for")
	return cmd
}
