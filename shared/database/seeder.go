package database

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"organizations-backend/shared/database/models"
	utils "organizations-backend/shared/utils/auth"
)

// SeedUser describes a development account
type SeedUser struct {
	Name     string
	Email    string
	Password string
}

// SeedUsers creates the accounts that do not exist yet and returns all of
// them in input order. Existing accounts keep their password.
func SeedUsers(ctx context.Context, db *gorm.DB, log *zap.Logger, seeds []SeedUser) ([]models.User, error) {
	users := make([]models.User, 0, len(seeds))
	created := 0

	for _, seed := range seeds {
		var user models.User
		err := db.WithContext(ctx).Where("email = ?", seed.Email).First(&user).Error
		if err == nil {
			users = append(users, user)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lookup %s: %w", seed.Email, err)
		}

		hashed, err := utils.HashPassword(seed.Password)
		if err != nil {
			return nil, err
		}
		user = models.User{Name: seed.Name, Email: seed.Email, Password: hashed}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create %s: %w", seed.Email, err)
		}
		users = append(users, user)
		created++
	}

	if created > 0 {
		log.Info("seed users created", zap.Int("created", created))
	} else {
		log.Info("seed users are up to date")
	}
	return users, nil
}

// DropTables removes every table in Models
func DropTables(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()
	for _, model := range Models() {
		if !migrator.HasTable(model) {
			continue
		}
		if err := migrator.DropTable(model); err != nil {
			return fmt.Errorf("failed to drop %T: %w", model, err)
		}
		log.Info("table dropped", zap.String("model", fmt.Sprintf("%T", model)))
	}
	return nil
}
