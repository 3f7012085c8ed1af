package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/teriyakki-jin/Churn-Guard-AI/churn"
	"github.com/teriyakki-jin/Churn-Guard-AI/config"
	"github.com/teriyakki-jin/Churn-Guard-AI/models"

	"github.com/gin-gonic/gin"
)

// churnService is the prediction orchestrator, built once in main and
// injected here before the router starts serving.
var churnService *churn.Service

// SetChurnService wires the loaded prediction service into the handlers.
func SetChurnService(svc *churn.Service) {
	churnService = svc
}

// Predict scores a customer profile and returns the churn risk with
// factors and retention suggestions. The result is also persisted to the
// caller's prediction history and broadcast to websocket dashboards.
func Predict(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var profile models.CustomerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PredictionError", "message": "Invalid customer data"})
		return
	}

	result, err := churnService.Predict(&profile)
	if err != nil {
		var predErr *churn.PredictionError
		switch {
		case errors.Is(err, churn.ErrModelNotLoaded):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ModelLoadError", "message": "Prediction model is not available"})
		case errors.As(err, &predErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "PredictionError", "message": predErr.Message})
		default:
			log.Printf("Prediction error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "InternalServerError", "message": "An unexpected error occurred."})
		}
		return
	}

	// Convert userID to uint
	var uid uint
	switch v := userID.(type) {
	case float64:
		uid = uint(v)
	case uint:
		uid = v
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID type"})
		return
	}

	record := churnService.HistoryRecord(uid, result)
	record.Timestamp = time.Now()
	if err := config.DB.Create(&record).Error; err != nil {
		// History is best-effort; the prediction itself already succeeded.
		log.Printf("Failed to save prediction history: %v", err)
	}

	BroadcastPrediction(record)

	c.JSON(http.StatusOK, result)
}

// GetModelInfo returns metadata about the loaded prediction model.
func GetModelInfo(c *gin.Context) {
	if !churnService.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ModelLoadError", "message": "Prediction model is not available"})
		return
	}

	artifact := churnService.Artifact()
	info := gin.H{
		"version":       artifact.Version,
		"type":          "Ensemble (XGBoost + RandomForest + GradientBoosting)",
		"feature_count": len(artifact.Schema),
	}
	if artifact.Metadata != nil {
		info["metadata"] = artifact.Metadata
	}
	c.JSON(http.StatusOK, info)
}
