package controllers

import (
	"fmt"
	"net/http"

	"github.com/teriyakki-jin/Churn-Guard-AI/config"
	"github.com/teriyakki-jin/Churn-Guard-AI/models"
	"github.com/teriyakki-jin/Churn-Guard-AI/utils"

	"github.com/gin-gonic/gin"
)

// GetHistory returns prediction history. Admins can see every user's
// records (optionally filtered by user_id); other users only their own.
func GetHistory(c *gin.Context) {
	var records []models.PredictionHistory
	userIDFromToken, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userIDFromToken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
		return
	}

	requestedUserID := c.Query("user_id")

	if user.Role == "admin" {
		if requestedUserID != "" {
			if err := config.DB.Where("user_id = ?", requestedUserID).Order("timestamp desc").Find(&records).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data for requested user"})
				return
			}
		} else {
			if err := config.DB.Order("timestamp desc").Find(&records).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch all data"})
				return
			}
		}
	} else {
		if err := config.DB.Where("user_id = ?", userIDFromToken).Order("timestamp desc").Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user data"})
			return
		}
	}

	c.JSON(http.StatusOK, records)
}

// DownloadCSV sends the caller's prediction history as a CSV file.
func DownloadCSV(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	config.DB.First(&user, userID)
	query := config.DB.Order("timestamp desc")
	if user.Role != "admin" {
		query = query.Where("user_id = ?", userID)
	}

	var records []models.PredictionHistory
	query.Find(&records)

	data, err := utils.BuildHistoryCSV(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create CSV data"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=prediction_history.csv")
	c.Data(http.StatusOK, "text/csv", data)
}

// DeleteMyRecords allows users to delete all their own prediction records.
func DeleteMyRecords(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	result := config.DB.Where("user_id = ?", userID).Delete(&models.PredictionHistory{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete your records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("Successfully deleted all %d records for your account", result.RowsAffected),
		"deleted_count": result.RowsAffected,
		"username":      user.Username,
	})
}

// DeleteAllRecords deletes all prediction history records (admin only).
func DeleteAllRecords(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	config.DB.First(&user, userID)
	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to delete all records"})
		return
	}

	result := config.DB.Where("1 = 1").Delete(&models.PredictionHistory{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "All records deleted successfully",
		"deleted_count": result.RowsAffected,
	})
}
