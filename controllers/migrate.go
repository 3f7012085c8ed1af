package controllers

import (
	"github.com/teriyakki-jin/Churn-Guard-AI/config"
	"github.com/teriyakki-jin/Churn-Guard-AI/models"

	"gorm.io/gorm"
)

// MigrateModels runs the database migrations
func MigrateModels(db *gorm.DB) {
	config.DB = db
	db.AutoMigrate(&models.User{}, &models.PredictionHistory{})
}
