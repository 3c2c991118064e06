package main

import (
	"context"
	"os"

	"github.com/aretw0/carousel"
	"github.com/aretw0/carousel/internal/cli"
	"github.com/aretw0/carousel/internal/presentation/tui"
	"github.com/aretw0/carousel/pkg/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <show.yaml>",
	Short: "Serve the show to kiosk browsers",
	Long: `Starts the kiosk HTTP server. Point a full-screen browser at / to display the show.
The server also exposes /events (command stream), /status, /health and /metrics.

With --redis, several replicas can serve the same show: one holds the leader lock
and rotates, the others relay its commands to their browsers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := config.LoadEnv()
		if err != nil {
			return err
		}
		logger, closeLog, err := commandLogger(cmd, env.LogLevel, env.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()

		addr := env.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		redisAddr := env.RedisAddr
		if cmd.Flags().Changed("redis") {
			redisAddr, _ = cmd.Flags().GetString("redis")
		}
		prefix, _ := cmd.Flags().GetString("redis-prefix")
		ttl, _ := cmd.Flags().GetDuration("lock-ttl")

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, carousel.Version)
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		err = cli.RunServe(sc, cli.ServeOptions{
			Path:        args[0],
			Addr:        addr,
			RedisAddr:   redisAddr,
			RedisPrefix: prefix,
			LockTTL:     ttl,
			Logger:      logger,
			Out:         os.Stdout,
		})
		if sig := sc.Signal(); sig != nil {
			logger.Info("shutdown requested", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Listen address (env CAROUSEL_ADDR)")
	serveCmd.Flags().String("redis", "", "Redis address for multi-replica coordination (env CAROUSEL_REDIS)")
	serveCmd.Flags().String("redis-prefix", cli.DefaultRedisPrefix, "Prefix for Redis keys and channels")
	serveCmd.Flags().Duration("lock-ttl", cli.DefaultLockTTL, "Leader lock TTL; bounds failover time")
}
