package main

import (
	"os"

	"nettileffa/pkg/config"
	"nettileffa/pkg/logger"
	"nettileffa/sqlstore"

	"github.com/alecthomas/kong"
)

var args struct {
	Down bool `help:"Revert every applied migration instead of applying pending ones."`
}

func main() {
	kctx := kong.Parse(&args, kong.Name("migrate"), kong.Description("Apply the catalog schema migrations."))

	cfg, err := config.LoadConfig()
	kctx.FatalIfErrorf(err, "cannot load config")

	log, err := logger.New(cfg.AppEnv)
	kctx.FatalIfErrorf(err, "cannot create logger")
	defer func() { _ = log.Sync() }()

	db, err := sqlstore.NewConnection(sqlstore.FromConfig(cfg))
	if err != nil {
		log.Errorw("cannot connect to db", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}

	run, direction := sqlstore.Migrate, "up"
	if args.Down {
		run, direction = sqlstore.Rollback, "down"
	}

	total, err := run(db, cfg.DB.Driver)
	if err != nil {
		log.Errorw("cannot execute migration", "direction", direction, "error", err)
		os.Exit(1)
	}

	log.Infow("applied migrations", "direction", direction, "total", total)
}
