package main

import (
	"os"

	"github.com/yigit/campustrack/internal/app/services"
	"github.com/yigit/campustrack/internal/bootstrap"
	"github.com/yigit/campustrack/internal/db"
	"github.com/yigit/campustrack/internal/pkg/logger"
)

func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	var database *db.PostgresDB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	cli := commandLine{
		out:      os.Stdout,
		readFile: os.ReadFile,
		tokens:   bootstrap.NewJWTService(cfg),
		importService: func() (services.ImportService, error) {
			database, err = bootstrap.SetupDatabase(cfg, lgr)
			if err != nil {
				return nil, err
			}
			deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
			if err != nil {
				return nil, err
			}
			return deps.ImportService, nil
		},
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			lgr.Error().Err(err).Msg("Command failed")
		}
		if database != nil {
			database.Close()
		}
		os.Exit(1)
	}
}
