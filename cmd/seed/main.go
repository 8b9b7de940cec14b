package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"trackline/internal/config"
	"trackline/internal/db"
	"trackline/internal/model"
	"trackline/internal/repository"
)

const (
	adminEmail     = "admin@trackline.local"
	adminPassword  = "admin"
	demoProject    = "Demo project"
	seedBcryptCost = 10
)

// Seeds the initial ADMIN user and a demo project so a fresh install is
// usable immediately. Safe to re-run: existing rows are left alone.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger.Info().Msg("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}

	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	projects := repository.NewProjectRepository(gormDB)

	admin, err := users.FindByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info().Str("email", admin.Email).Msg("admin user already present, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), seedBcryptCost)
	if err != nil {
		logger.Fatal().Err(err).Msg("hash admin password")
	}

	admin = &model.User{
		FirstName:      "Trackline",
		LastName:       "Admin",
		Email:          adminEmail,
		PasswordHash:   string(hash),
		Role:           model.RoleAdmin,
		NeverConnected: true,
	}
	if err := users.Create(ctx, admin); err != nil {
		logger.Fatal().Err(err).Msg("create admin user")
	}
	logger.Info().Str("email", admin.Email).Msg("admin user created")

	project := &model.Project{
		Name:        demoProject,
		Description: "Sample project created by the seed script",
		DueDate:     time.Now().AddDate(0, 1, 0),
		Status:      model.StatusNew,
		CreatorID:   admin.ID,
		Members:     []model.User{*admin},
	}
	if err := projects.Create(ctx, project); err != nil {
		logger.Fatal().Err(err).Msg("create demo project")
	}
	logger.Info().Str("name", project.Name).Uint("id", project.ID).Msg("demo project created")
}
