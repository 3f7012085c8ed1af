package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/teriyakki-jin/Churn-Guard-AI/models"
)

// BuildHistoryCSV converts prediction history records to CSV format.
func BuildHistoryCSV(records []models.PredictionHistory) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"timestamp", "churn_probability", "prediction", "risk_level", "model_version"}); err != nil {
		return nil, err
	}

	for _, record := range records {
		row := []string{
			record.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.4f", record.ChurnProbability),
			record.Prediction,
			record.RiskLevel,
			record.ModelVersion,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
