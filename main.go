package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"datachat/ai"
	"datachat/auth"
	"datachat/config"
	"datachat/db"
	_ "datachat/docs" // Swagger docs
	"datachat/handlers"
	"datachat/logger"
	"datachat/service"
	"datachat/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	portFlag       string
	authConfigFlag string
)

var rootCmd = &cobra.Command{
	Use:   "datachat",
	Short: "Spreadsheet dashboard with a business-analyst chat model",
	Long: `datachat serves a login-protected dashboard where users upload a CSV or
Excel file, preview and chart it, ask a hosted language model about it and
download the latest answer as a PDF report.

Configuration comes from the environment (and .env); users and the session
cookie from the YAML credential file.`,
	SilenceUsage: true,
	RunE:         serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE:  serve,
}

var hashCmd = &cobra.Command{
	Use:   "hash [password]",
	Short: "Print the bcrypt hash of a password for the credential file",
	Long: `Prints the bcrypt hash to paste into the password field of the credential file.
Without an argument the password is read from the first line of stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: hashPassword,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVarP(&portFlag, "port", "p", "", "listen port (overrides PORT)")
		c.Flags().StringVar(&authConfigFlag, "auth-config", "", "credential file (overrides AUTH_CONFIG)")
	}
	rootCmd.AddCommand(serveCmd, hashCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if portFlag != "" {
		cfg.Port = portFlag
	}
	if authConfigFlag != "" {
		cfg.AuthConfig = authConfigFlag
	}

	log := logger.New(cfg.LogFilePath, cfg.IsProduction())
	defer log.Sync()
	gin.SetMode(cfg.GinMode)

	authFile, err := config.LoadAuthFile(cfg.AuthConfig)
	if err != nil {
		log.Error("main", "failed to load credential file", map[string]interface{}{"path": cfg.AuthConfig, "error": err})
		return err
	}
	authenticator := auth.New(authFile, cfg.IsProduction())

	store, err := openStore(cfg, authenticator.Lifetime())
	if err != nil {
		log.Error("main", "failed to open session store", map[string]interface{}{"store": cfg.Session.Store, "error": err})
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, err := ai.New(ctx, cfg.LLM)
	if err != nil {
		log.Error("main", "failed to initialise model client", map[string]interface{}{"provider": cfg.LLM.Provider, "error": err})
		return err
	}
	if model == nil {
		log.Warn("main", "GOOGLE_API_KEY is not set, chat is disabled", nil)
	}

	dashboard := service.NewDashboard(store, service.Options{
		Model:        model,
		SystemPrompt: cfg.LLM.SystemPrompt,
		PreviewRows:  cfg.PreviewRows,
	}, log)

	h, err := handlers.New(dashboard, authenticator, log, handlers.Options{
		StoreName:   cfg.Session.Store,
		MaxUploadMB: cfg.MaxUploadMB,
	})
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(log))
	if origins := splitOrigins(cfg.CorsOrigins); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	h.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("main", "server starting", map[string]interface{}{
			"port":  cfg.Port,
			"store": cfg.Session.Store,
			"model": cfg.LLM.Model,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("main", "server failed", map[string]interface{}{"error": err})
			return err
		}
	case <-ctx.Done():
	}

	log.Info("main", "shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(cfg *config.Config, ttl time.Duration) (session.Store, error) {
	switch cfg.Session.Store {
	case "badger":
		database, err := db.New(cfg.Session.DBPath)
		if err != nil {
			return nil, err
		}
		return session.NewBadgerStore(database, ttl), nil
	default:
		return session.NewMemoryStore(ttl), nil
	}
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func hashPassword(cmd *cobra.Command, args []string) error {
	var plain string
	if len(args) == 1 {
		plain = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		plain = strings.TrimRight(line, "\r\n")
	}

	hash, err := auth.HashPassword(plain)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
