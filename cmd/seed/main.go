package main

import (
	"context"
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	"organizations-backend/shared/authz"
	"organizations-backend/shared/config"
	"organizations-backend/shared/database"
	"organizations-backend/shared/database/models"
	"organizations-backend/shared/logger"
	"organizations-backend/shared/repository"
	utils "organizations-backend/shared/utils/auth"
)

const demoOrganization = "Acme Inc"

func main() {
	cfg := config.LoadConfig()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Development: true})
	defer log.Sync()

	db, err := database.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.CloseDatabase(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		if password, err = utils.GenerateRandomToken(8); err != nil {
			log.Fatal("failed to generate password", zap.Error(err))
		}
		log.Info("generated seed password", zap.String("password", password))
	}

	users, err := database.SeedUsers(ctx, db, log, []database.SeedUser{
		{Name: "Olivia Owner", Email: "owner@example.com", Password: password},
		{Name: "Adam Admin", Email: "admin@example.com", Password: password},
		{Name: "Mia Member", Email: "member@example.com", Password: password},
	})
	if err != nil {
		log.Fatal("failed to seed users", zap.Error(err))
	}
	owner, admin, member := users[0], users[1], users[2]

	org := &models.Organization{
		Name:     demoOrganization,
		Email:    owner.Email,
		Type:     models.OrganizationTypeOrganization,
		IsActive: true,
	}
	org.SetOwner(models.UserOwner(owner.ID))

	orgs := repository.NewOrganizationRepository(db)
	switch err := orgs.Create(ctx, org); {
	case err == nil:
		roles := repository.NewRoleRepository(db)
		orgContext := authz.OrganizationContext(org.ID)
		if err := roles.AssignRole(ctx, admin.ID, authz.RoleAdmin, orgContext); err != nil {
			log.Fatal("failed to grant admin role", zap.Error(err))
		}
		if err := roles.AssignRole(ctx, member.ID, authz.RoleMember, orgContext); err != nil {
			log.Fatal("failed to grant member role", zap.Error(err))
		}
		log.Info("demo organization created", zap.String("id", org.ID.String()), zap.String("slug", org.Slug))
	case errors.Is(err, repository.ErrDuplicateName):
		log.Info("demo organization already exists", zap.String("name", demoOrganization))
	default:
		log.Fatal("failed to create demo organization", zap.Error(err))
	}

	for _, user := range users {
		token, err := utils.GenerateJWT(user.ID, user.Email, cfg.JWTSecret, cfg.GetJWTExpireDuration())
		if err != nil {
			log.Fatal("failed to issue token", zap.String("email", user.Email), zap.Error(err))
		}
		log.Info("access token", zap.String("email", user.Email), zap.String("token", token))
	}

	log.Info("database seeding completed")
}
