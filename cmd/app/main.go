package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"parceltrack/cmd"
	"parceltrack/internal/adapters/out/postgres/accountrepo"
	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/jobs"
	"parceltrack/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	adminID, err := seedSuperAdmin(context.Background(), app.CreateUnitOfWorkFactory(), configs)
	if err != nil {
		log.Fatalf("seeding super-admin: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateFlagOverdueParcelsCommandHandler(),
		adminID,
		configs.OverdueFlagSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:           goDotEnvVariable("JWT_SECRET"),
		OverdueFlagSchedule: goDotEnvVariable("OVERDUE_FLAG_SCHEDULE"),
		SuperAdminName:      goDotEnvVariable("SUPER_ADMIN_NAME"),
		SuperAdminEmail:     goDotEnvVariable("SUPER_ADMIN_EMAIL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&accountrepo.AccountDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.ParcelAgentDTO{},
		&parcelrepo.StatusLogDTO{},
	)
	if err != nil {
		log.Fatalf("running migrations: %v", err)
	}
}

// seedSuperAdmin ensures the bootstrap super-admin account exists and returns
// its identifier, which the background jobs use as their acting identity.
// Safe to run on every startup.
func seedSuperAdmin(ctx context.Context, factory ports.UnitOfWorkFactory, configs cmd.Config) (kernel.UUID, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()

	existing, err := accountRepo.GetByEmail(ctx, configs.SuperAdminEmail)
	if err == nil {
		return existing.ID(), nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, err
	}

	admin, err := account.NewAccount(
		kernel.NewUUID(), configs.SuperAdminName, configs.SuperAdminEmail, account.RoleSuperAdmin)
	if err != nil {
		return kernel.UUID{}, err
	}
	admin.MarkVerified()

	if err = accountRepo.Add(ctx, admin); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return admin.ID(), nil
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e, configs.JWTSecret)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
