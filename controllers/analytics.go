package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/teriyakki-jin/Churn-Guard-AI/churn"

	"github.com/gin-gonic/gin"
)

// GetStats returns aggregate churn metrics over the reference dataset.
func GetStats(c *gin.Context) {
	stats, err := churnService.Stats()
	if err != nil {
		if errors.Is(err, churn.ErrNoReferenceData) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "DatabaseError", "message": "Reference dataset is not available"})
			return
		}
		log.Printf("Stats error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "InternalServerError", "message": "An unexpected error occurred."})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetAnalysis returns high-risk segment and financial impact analysis.
func GetAnalysis(c *gin.Context) {
	analysis, err := churnService.Analysis()
	if err != nil {
		if errors.Is(err, churn.ErrNoReferenceData) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "DatabaseError", "message": "Reference dataset is not available"})
			return
		}
		log.Printf("Analysis error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "InternalServerError", "message": "An unexpected error occurred."})
		return
	}
	c.JSON(http.StatusOK, analysis)
}
