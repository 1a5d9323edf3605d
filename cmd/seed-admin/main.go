// seed-admin creates or updates the console administrator user.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"gorm.io/gorm"
)

const (
	adminUsername = "altavistaAdmin"
	adminPassword = "Altav!staAdmin"
	adminName     = "Altavista Admin"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	// Attach a real property id (first property in DB) and bypass tenant scoping.
	var property models.Property
	if err := db.WithContext(ctx).Model(&models.Property{}).Select("id").First(&property).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			fmt.Fprintln(os.Stderr, "no properties found in DB. Create a property first, then rerun seed-admin.")
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "failed to lookup property: %v\n", err)
		os.Exit(1)
	}

	ctx = utils.SetPropertyIdInContext(ctx, property.ID)
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Seed")
	ctx = utils.SetUsernameInContext(ctx, adminUsername)
	ctx = utils.SetIsAdminInContext(ctx, true)
	ctx = utils.SetSkipTenantScopeInContext(ctx, true)

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	hashedStr := string(hashed)

	var existing models.AdminUser
	err = db.WithContext(ctx).Model(&models.AdminUser{}).Where("username = ?", adminUsername).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		u := models.AdminUser{
			PropertyId: property.ID,
			Username:   adminUsername,
			FullName:   adminName,
			Password:   hashedStr,
			IsActive:   utils.NewTrue(),
			Role:       models.UserRoleAdmin,
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user: username=%q (role=Admin)\n", adminUsername)
		return
	}

	// Existing user: reset password and ensure the admin role.
	if err := db.WithContext(ctx).Model(&models.AdminUser{}).Where("username = ?", adminUsername).Updates(map[string]any{
		"password":    hashedStr,
		"full_name":   adminName,
		"is_active":   utils.NewTrue(),
		"property_id": property.ID,
		"role":        models.UserRoleAdmin,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated admin user: username=%q (role=Admin)\n", adminUsername)
}
