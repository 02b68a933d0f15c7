// Command migrate applies or rolls back the schema in migrations/.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"daytrip/internal/config"
	"daytrip/internal/logging"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the migration files")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-dir migrations] up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}
	logging.SetGlobalLogger(logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}))

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("create postgres driver")
	}

	absPath, err := filepath.Abs(*dir)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve migrations directory")
	}
	sourceURL := "file://" + filepath.ToSlash(absPath)

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		log.Fatal().Err(err).Msg("create migrate instance")
	}

	switch flag.Arg(0) {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal().Err(verr).Msg("read schema version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
		return
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("direction", flag.Arg(0)).Msg("migration failed")
	}
	log.Info().Str("direction", flag.Arg(0)).Msg("migrations applied")
}
