// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ltp-analytics/dashboard/config"
	"github.com/ltp-analytics/dashboard/database"
	"github.com/ltp-analytics/dashboard/datafiles"
	"github.com/ltp-analytics/dashboard/handlers"
	"github.com/ltp-analytics/dashboard/logger"
	"github.com/ltp-analytics/dashboard/report"
	"github.com/ltp-analytics/dashboard/services"
	"github.com/spf13/cobra"
)

var (
	configPath string
	ltpFile    string
	afeFile    string
	plain      bool
	width      int
)

var rootCmd = &cobra.Command{
	Use:   "ltpdash",
	Short: "LTP Hub / AFE pipeline dashboard",
	Long: `ltpdash reconciles the LTP Hub project register with the AFE register
and reports pipeline metrics and per-planner statistics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadConfig(resolveConfigPath(configPath)); err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		return logger.Init(config.AppConfig.Logging.Level, config.AppConfig.Logging.Development)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the dashboard from two local register files",
	Long: `Reads an LTP Hub file and an AFE file (CSV, or IQY web query), runs the
reconciliation and prints the report.

Example:
  ltpdash report --ltp data/ltphub.csv --afe data/AFE_data.iqy`,
	RunE: runReport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config YAML (default config/config.yaml if present)")

	reportCmd.Flags().StringVar(&ltpFile, "ltp", "", "LTP Hub register file")
	reportCmd.Flags().StringVar(&afeFile, "afe", "", "AFE register file")
	reportCmd.Flags().BoolVar(&plain, "plain", false, "print raw Markdown instead of rendering it")
	reportCmd.Flags().IntVar(&width, "width", 100, "word wrap width for rendered output")
	cobra.CheckErr(reportCmd.MarkFlagRequired("ltp"))
	cobra.CheckErr(reportCmd.MarkFlagRequired("afe"))

	rootCmd.AddCommand(serveCmd, reportCmd)
}

// resolveConfigPath returns explicit when set, otherwise the first default
// location that exists. An empty result means defaults and environment only.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, p := range []string{"config/config.yaml", "backend/config/config.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.AppConfig
	logger.Log.Infof("Starting LTP dashboard backend (source: %s, data dir: %s)", cfg.Data.Source, cfg.Data.Directory)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files := datafiles.NewManager(cfg.Data)
	if err := files.EnsureDir(); err != nil {
		return err
	}

	api := &handlers.API{Config: cfg, Files: files}
	if cfg.Data.Source == config.SourceMySQL {
		if err := database.InitDB(ctx, cfg.Database); err != nil {
			return fmt.Errorf("error initializing database: %w", err)
		}
		defer database.CloseDB()
		api.DBPing = database.DB.PingContext
	}

	loader := services.NewHTTPLoader(cfg.Data)
	source, err := services.NewRegisterSource(cfg, files, loader)
	if err != nil {
		return err
	}
	api.Dashboard = services.NewDashboardService(source, loader)
	api.Updates = services.NewDataUpdateService(files)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handlers.NewRouter(api),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Server starting on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		logger.Log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runReport(cmd *cobra.Command, args []string) error {
	ltp, err := os.Open(ltpFile)
	if err != nil {
		return fmt.Errorf("failed to open LTP Hub file: %w", err)
	}
	defer ltp.Close()

	afe, err := os.Open(afeFile)
	if err != nil {
		return fmt.Errorf("failed to open AFE file: %w", err)
	}
	defer afe.Close()

	svc := services.NewDashboardService(nil, services.NewHTTPLoader(config.AppConfig.Data))
	result, err := svc.ComputeUploaded(cmd.Context(), ltpFile, ltp, afeFile, afe)
	if err != nil {
		return err
	}

	out := report.Markdown(result)
	if !plain {
		if out, err = report.Render(result, width); err != nil {
			return err
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
