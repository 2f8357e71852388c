package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mattn/go-isatty"

	"github.com/buildagent/multibuild/internal/advisor"
	"github.com/buildagent/multibuild/internal/catalog"
	"github.com/buildagent/multibuild/internal/cli"
	"github.com/buildagent/multibuild/internal/db"
	"github.com/buildagent/multibuild/internal/engine"
	"github.com/buildagent/multibuild/internal/planner"
	"github.com/buildagent/multibuild/internal/quickcalc"
	"github.com/buildagent/multibuild/internal/recommend"
	"github.com/buildagent/multibuild/internal/session"
	"github.com/buildagent/multibuild/pkg/logx"
)

// appConfig covers the process-level settings; the advisor reads its own
// MULTIBUILD_ADVISOR_* block.
type appConfig struct {
	DB       string `envconfig:"DB"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env wins over the one written by 'multibuild setup'.
	_ = godotenv.Load()
	if envFile, err := cli.EnvFile(); err == nil {
		_ = godotenv.Load(envFile)
	}

	var cfg appConfig
	if err := envconfig.Process("multibuild", &cfg); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logx.New(logx.Options{
		Level:  cfg.LogLevel,
		Pretty: isatty.IsTerminal(os.Stderr.Fd()),
	})

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	quick, err := quickcalc.Load()
	if err != nil {
		return fmt.Errorf("loading oven data: %w", err)
	}

	dbPath := cfg.DB
	if dbPath == "" {
		dbPath = db.DefaultPath()
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	advisorCfg, err := advisor.Load()
	if err != nil {
		return err
	}
	adv := advisor.New(advisor.NewClient(advisorCfg, log), log)
	if !advisorCfg.Enabled() {
		log.Debug().Msg("no API key, advisor disabled")
	}

	eng := engine.New(cat, planner.New(cat), recommend.New(cat), adv,
		session.NewSQLiteStore(database), log)

	app := &cli.App{
		Engine:  eng,
		Catalog: cat,
		Quick:   quick,
		Log:     log,
	}
	return cli.NewRootCmd(app).Execute()
}
