// Command tablewise is the terminal client for the restaurant analytics
// service. This file is the composition root: it wires the driven
// adapters into the core services and hands them to the CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tablewise/tablewise-cli/internal/adapters/driven/backend"
	configfile "github.com/tablewise/tablewise-cli/internal/adapters/driven/config/file"
	recorderexec "github.com/tablewise/tablewise-cli/internal/adapters/driven/recorder/exec"
	"github.com/tablewise/tablewise-cli/internal/adapters/driven/storage/sqlite"
	"github.com/tablewise/tablewise-cli/internal/adapters/driving/cli"
	"github.com/tablewise/tablewise-cli/internal/core/domain"
	"github.com/tablewise/tablewise-cli/internal/core/services"
	"github.com/tablewise/tablewise-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	configStore, err := configfile.NewConfigStore(os.Getenv("TABLEWISE_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	client := backend.New(backendConfig(configStore))

	historyStore, err := sqlite.NewStore(configStore.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer func() {
		if err := historyStore.Close(); err != nil {
			logger.Warn("close history store: %v", err)
		}
	}()

	identity := domain.Identity{
		AccountID:  configStore.GetString("auth.account_id"),
		LoginEmail: configStore.GetString("auth.email"),
	}

	session := services.NewSession()
	orchestrator := services.NewQueryOrchestrator(client, historyStore, identity, session)
	capture := services.NewCaptureController(recorderexec.New(), client, orchestrator, session)
	export := services.NewExportDispatcher(client)

	cli.SetAssistantService(orchestrator)
	cli.SetCaptureService(capture)
	cli.SetExportService(export)
	cli.SetAnalyticsClient(client)
	cli.SetConfigStore(configStore)
	cli.SetVersion(version)

	return cli.Execute()
}

// backendConfig resolves the backend settings: environment first, then the
// config file, then the built-in defaults.
func backendConfig(store *configfile.ConfigStore) backend.Config {
	cfg := backend.Config{}

	if url := os.Getenv("TABLEWISE_BACKEND_URL"); url != "" {
		cfg.BaseURL = url
	} else if url := store.GetString("backend.url"); url != "" {
		cfg.BaseURL = url
	}

	if secs := store.GetInt("backend.timeout_seconds"); secs > 0 {
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	return cfg
}
