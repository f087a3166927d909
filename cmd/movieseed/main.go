package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nettileffa/movie"
	"nettileffa/pkg/config"
	"nettileffa/pkg/logger"
	"nettileffa/seed"
	"nettileffa/sqlstore"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

type cli struct {
	File    string `help:"Dataset file: movies-compact JSON, MovieLens movies.csv or a MovieLens zip." type:"existingfile" short:"f"`
	Format  string `help:"Dataset format." enum:"json,csv,zip,url" default:"json"`
	URL     string `help:"MovieLens archive downloaded when --format=url." default:"${movielens_url}"`
	Limit   int    `help:"Import at most this many MovieLens rows (0 imports all)."`
	Reset   bool   `help:"Delete all catalog data before importing."`
	Migrate bool   `help:"Apply pending migrations first." default:"true" negatable:""`
	Driver  string `help:"Database driver (sqlite or postgres); overrides DB_DRIVER."`
	DBPath  string `help:"SQLite database file; overrides DB_PATH." name:"db-path"`
}

func main() {
	var args cli
	kctx := kong.Parse(&args,
		kong.Name("movieseed"),
		kong.Description("Load a movie dataset into the catalog."),
		kong.Vars{"movielens_url": seed.DefaultMovieLensURL},
		kong.UsageOnError(),
	)

	cfg, err := config.LoadConfig()
	kctx.FatalIfErrorf(err, "cannot load config")

	log, err := logger.New(cfg.AppEnv)
	kctx.FatalIfErrorf(err, "cannot create logger")
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := args.run(ctx, cfg, log); err != nil {
		log.Errorw("seed failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) error {
	records, err := c.load(ctx, log)
	if err != nil {
		return err
	}

	opts := sqlstore.FromConfig(cfg)
	if c.Driver != "" {
		opts.Driver = c.Driver
	}
	if c.DBPath != "" {
		opts.Path = c.DBPath
	}

	db, err := sqlstore.NewConnection(opts)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}

	if c.Migrate {
		n, err := sqlstore.Migrate(db, opts.Driver)
		if err != nil {
			return fmt.Errorf("cannot execute migration: %w", err)
		}
		log.Infow("applied migrations", "total", n)
	}

	repo := sqlstore.NewMovieRepository(db, sqlstore.WithLogger(log))
	if c.Reset {
		if err := repo.Reset(ctx); err != nil {
			return fmt.Errorf("cannot reset catalog: %w", err)
		}
		log.Infow("catalog data deleted")
	}

	importer := seed.NewImporter(movie.NewUsecase(repo, movie.WithLogger(log)), seed.WithLogger(log))
	res, err := importer.Import(ctx, records)
	if err != nil {
		return err
	}

	log.Infow("import completed", "created", res.Created, "skipped", res.Skipped)
	return nil
}

func (c *cli) load(ctx context.Context, log *zap.SugaredLogger) ([]seed.Record, error) {
	if c.Format != "url" && c.File == "" {
		return nil, errors.New("--file is required for format " + c.Format)
	}

	var (
		records []seed.Record
		skipped int
		err     error
	)
	switch c.Format {
	case "json":
		var f *os.File
		if f, err = os.Open(c.File); err != nil {
			return nil, err
		}
		defer f.Close()
		records, err = seed.ReadCompact(f)
	case "csv":
		var f *os.File
		if f, err = os.Open(c.File); err != nil {
			return nil, err
		}
		defer f.Close()
		records, skipped, err = seed.ReadMovieLens(f, c.Limit)
	case "zip":
		records, skipped, err = seed.ReadMovieLensZip(c.File, c.Limit)
	case "url":
		log.Infow("downloading dataset", "url", c.URL)
		records, skipped, err = seed.DownloadMovieLens(ctx, c.URL, c.Limit)
	}
	if err != nil {
		return nil, err
	}

	log.Infow("dataset loaded", "format", c.Format, "records", len(records), "skipped_rows", skipped)
	return records, nil
}
