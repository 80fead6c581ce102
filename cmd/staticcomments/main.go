// Command staticcomments builds a static blog with threaded Staticman comments.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"staticcomments/internal/config"
	"staticcomments/internal/logging"
	"staticcomments/internal/services"
	"staticcomments/internal/utils"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	siteDir     string
	outputDir   string
	failOnError bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "staticcomments",
	Short:         "Build a static blog with threaded Staticman comments",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site and its comments into the output directory",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build, then rebuild whenever posts or comments change",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&siteDir, "site", "", "site root (overrides SITE_DIR)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "output directory (overrides OUTPUT_DIR)")
	rootCmd.PersistentFlags().BoolVar(&failOnError, "fail-on-error", true, "abort the build on invalid comments (overrides COMMENTS_FAIL_ON_ERROR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(buildCmd, watchCmd)
}

// setup 合并环境变量和命令行参数
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg := config.Load()
	flags := cmd.Flags()
	if flags.Changed("site") {
		cfg.SiteDir = siteDir
	}
	if flags.Changed("output") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("fail-on-error") {
		cfg.FailOnCommentError = failOnError
	}
	if verbose {
		cfg.Debug = true
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return nil, nil, err
	}
	if err := utils.ConfigureRenderCache(cfg.RenderCacheSize); err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	return services.NewSite(cfg, logger).Build(cmd.Context())
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	s := services.NewSite(cfg, logger)
	if err := s.Build(cmd.Context()); err != nil {
		// 首次构建失败也继续监听，修好文件后自动重建
		logger.Error("initial build failed", zap.Error(err))
	}

	w, err := services.NewWatcher(cfg.PostsPath(), s.Build, logger)
	if err != nil {
		return err
	}
	return w.Run(cmd.Context())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
