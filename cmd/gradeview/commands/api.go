package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/wonny/gradeview/internal/api"
	"github.com/wonny/gradeview/internal/api/handlers"
	"github.com/wonny/gradeview/internal/syllabus"
	"github.com/wonny/gradeview/pkg/redis"
)

var apiPort string

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the read-only HTTP API server",
	Long: `Start the gradebook HTTP API server.

The gradebook is loaded once at startup; restart to pick up file changes.
Responses for statistics are cached in Redis when REDIS_ENABLED=true.

Endpoints:
  GET /health
  GET /api/students/{name}/grade
  GET /api/assignments/{name}/stats
  GET /api/assignments/{name}/histogram`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVarP(&apiPort, "port", "p", "", "API server port (default $PORT or 8089)")
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	// 1. Load config, logger, syllabus
	a, err := bootstrap()
	if err != nil {
		return err
	}
	if apiPort != "" {
		a.cfg.Port = apiPort
	}
	log := a.log

	log.WithFields(map[string]interface{}{
		"env":      a.cfg.Env,
		"port":     a.cfg.Port,
		"data_dir": a.cfg.DataDir,
	}).Info("Initializing API server")

	// 2. Load gradebook
	gb, err := a.openGradebook()
	if err != nil {
		return err
	}

	// 3. Connect to Redis (optional)
	redisClient, err := redis.New(a.cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	// ⭐ 캐시 prefix에 syllabus hash 포함 (설정이 바뀌면 키도 바뀜)
	sylHash, err := syllabus.Hash(a.syllabus)
	if err != nil {
		return fmt.Errorf("hash syllabus: %w", err)
	}
	cache := redis.NewCache(redisClient, "gradeview:"+sylHash[:12])

	// 4. Create handler and router
	gradeHandler := handlers.NewGradeHandler(gb, cache, a.syllabus.Histogram.Edges, log)
	limiter := rate.NewLimiter(rate.Limit(a.cfg.API.RateLimit), a.cfg.API.RateBurst)
	router := api.NewRouter(gradeHandler, limiter, log)

	// 5. Run server until interrupted
	server := api.New(a.cfg, log, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Fprintln(out, "\nAvailable endpoints:")
	fmt.Fprintln(out, "  GET  /health")
	fmt.Fprintln(out, "  GET  /api/students/{name}/grade")
	fmt.Fprintln(out, "  GET  /api/assignments/{name}/stats")
	fmt.Fprintln(out, "  GET  /api/assignments/{name}/histogram")
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		log.WithError(err).Error("Server stopped with error")
		return err
	}

	log.Info("Server stopped")
	return nil
}
