package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"stationwatch/internal/handlers"
	"stationwatch/internal/logger"
	"stationwatch/internal/models"
	"stationwatch/internal/notify"
	"stationwatch/internal/repository"
	"stationwatch/internal/repository/db"
	"stationwatch/internal/server"
	"stationwatch/internal/service"
	"stationwatch/internal/source"
)

const defaultPollInterval = 5 * time.Minute

func main() {
	if err := loadConfig(); err != nil {
		// Logger level lives in the config, so bootstrap with defaults.
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	accounts, err := loadAccounts()
	if err != nil {
		log.Fatalw("invalid accounts config", "err", err)
	}

	sqldb, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqldb.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqldb)
	apiClient := source.NewClient(viper.GetString("source.base_url"), viper.GetDuration("source.timeout"))
	webhook := notify.NewWebhook(viper.GetString("notify.webhook_url"), viper.GetDuration("notify.timeout"))

	services := service.NewService(service.Deps{
		Repos:      repos,
		Roster:     apiClient,
		Devices:    apiClient,
		Notifier:   webhook,
		Accounts:   accounts,
		SigningKey: viper.GetString("auth.signing_key"),
		Log:        log,
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Poller.Run(ctx, pollInterval())

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// loadAccounts parses the configured account list into plain data.
func loadAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := viper.UnmarshalKey("accounts", &accounts); err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, errors.New("no accounts configured")
	}
	for _, a := range accounts {
		if a.Name == "" || a.APIKey == "" {
			return nil, errors.New("every account needs a name and an api_key")
		}
	}
	return accounts, nil
}

func pollInterval() time.Duration {
	if d := viper.GetDuration("poll_interval"); d > 0 {
		return d
	}
	return defaultPollInterval
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "stationwatch.db")
		dbPath = "stationwatch.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the poller
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
