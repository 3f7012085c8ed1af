package config

import (
	"log"
	"os"
	"time"

	"github.com/teriyakki-jin/Churn-Guard-AI/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DB is a global variable to hold the database connection
var DB *gorm.DB

// InitAdminUser makes sure a default admin account exists so the API is
// usable right after first startup. Credentials can be overridden via
// ADMIN_USERNAME / ADMIN_PASSWORD.
// This should be called on application startup, after migrations.
func InitAdminUser(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	var existing models.User
	result := db.Where("username = ?", username).First(&existing)
	if result.Error == nil {
		return nil // admin already present
	}
	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password123"
		log.Println("ADMIN_PASSWORD not set, using default admin credentials")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:  username,
		Email:     "admin@churnguard.ai",
		Password:  string(hashed),
		FullName:  "Admin User",
		Role:      "admin",
		CreatedAt: time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Admin user created: %s", username)
	return nil
}
