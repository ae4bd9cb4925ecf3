package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/campustrack/internal/app/controllers"
	"github.com/yigit/campustrack/internal/app/importer"
	appMigrations "github.com/yigit/campustrack/internal/app/migrations"
	appRepos "github.com/yigit/campustrack/internal/app/repositories"
	appRoutes "github.com/yigit/campustrack/internal/app/routes"
	appServices "github.com/yigit/campustrack/internal/app/services"
	"github.com/yigit/campustrack/internal/config"
	"github.com/yigit/campustrack/internal/db"
	appMiddleware "github.com/yigit/campustrack/internal/middleware"
	pkgAuth "github.com/yigit/campustrack/internal/pkg/auth"
	"github.com/yigit/campustrack/internal/pkg/filestorage"
	"github.com/yigit/campustrack/internal/pkg/helpers"
	"github.com/yigit/campustrack/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	ImportService     appServices.ImportService
	UserService       appServices.UserService
	SummaryService    appServices.SummaryService
	ImportController  *appControllers.ImportController
	UserController    *appControllers.UserController
	SummaryController *appControllers.SummaryController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Hasher            *pkgAuth.PasswordHasher
	Importer          *importer.Importer
	Archiver          filestorage.Archiver
	Logger            zerolog.Logger
}

// ConfigPath returns CONFIG_PATH or configs/config.yaml
func ConfigPath() string {
	return config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
}

// LoadConfigAndSetupLogger loads .env (when present) and configuration, then configures the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// NewArchiver builds the upload archive for cfg, or returns nil when archiving is disabled.
func NewArchiver(cfg *config.Config) (filestorage.Archiver, error) {
	if !cfg.Import.ArchiveUploads {
		return nil, nil
	}

	switch strings.ToLower(cfg.Storage.Driver) {
	case config.StorageDriverS3:
		s3 := cfg.Storage.S3
		return filestorage.NewS3Storage(filestorage.S3Config{
			Endpoint:        s3.Endpoint,
			Region:          s3.Region,
			Bucket:          s3.Bucket,
			AccessKeyID:     s3.AccessKeyID,
			SecretAccessKey: s3.SecretAccessKey,
			UseSSL:          s3.UseSSL,
			ForcePathStyle:  s3.ForcePathStyle,
		})
	default:
		return filestorage.NewLocalStorage(cfg.Storage.LocalPath)
	}
}

// NewJWTService builds the token service from cfg
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Hasher = pkgAuth.NewPasswordHasher(cfg.Import.BcryptCost)
	deps.JWTService = NewJWTService(cfg)

	archiver, err := NewArchiver(cfg)
	if err != nil {
		lgr.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to initialize upload archive")
		return nil, fmt.Errorf("failed to initialize upload archive: %w", err)
	}
	deps.Archiver = archiver

	deps.Importer = importer.New(deps.Repos.UserRepository, deps.Repos.UploadSummaryRepository, deps.Hasher, lgr)

	deps.ImportService = appServices.NewImportService(deps.Importer, deps.Archiver, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Hasher, lgr)
	deps.SummaryService = appServices.NewSummaryService(deps.Repos.UploadSummaryRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.ImportController = appControllers.NewImportController(deps.ImportService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.SummaryController = appControllers.NewSummaryController(deps.SummaryService)

	lgr.Info().
		Int("bcryptCost", deps.Hasher.Cost()).
		Bool("archiveUploads", deps.Archiver != nil).
		Msg("Dependencies initialized")
	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Import:  deps.ImportController,
		User:    deps.UserController,
		Summary: deps.SummaryController,
	}, deps.AuthMiddleware, cfg.Server.MaxUploadBytes)

	return router
}
