package churn

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

// ReferenceRecord is one row of the training reference dataset. The CSV
// headers are the telco dataset column names.
type ReferenceRecord struct {
	CustomerID       string `csv:"customerID"`
	Gender           string `csv:"gender"`
	SeniorCitizen    int    `csv:"SeniorCitizen"`
	Partner          string `csv:"Partner"`
	Dependents       string `csv:"Dependents"`
	Tenure           int    `csv:"tenure"`
	PhoneService     string `csv:"PhoneService"`
	MultipleLines    string `csv:"MultipleLines"`
	InternetService  string `csv:"InternetService"`
	OnlineSecurity   string `csv:"OnlineSecurity"`
	OnlineBackup     string `csv:"OnlineBackup"`
	DeviceProtection string `csv:"DeviceProtection"`
	TechSupport      string `csv:"TechSupport"`
	StreamingTV      string `csv:"StreamingTV"`
	StreamingMovies  string `csv:"StreamingMovies"`
	Contract         string `csv:"Contract"`
	PaperlessBilling string `csv:"PaperlessBilling"`
	PaymentMethod    string `csv:"PaymentMethod"`
	MonthlyCharges   float64 `csv:"MonthlyCharges"`
	// TotalCharges is blank for brand-new customers in the source data, so
	// it is read as text and coerced on access.
	TotalCharges string `csv:"TotalCharges"`
	Churn        string `csv:"Churn"`
}

// TotalChargesValue coerces the raw TotalCharges column; unparseable or
// blank values count as zero, matching the training pipeline's cleaning.
func (r *ReferenceRecord) TotalChargesValue() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.TotalCharges), 64)
	if err != nil {
		return 0
	}
	return v
}

// LoadReferenceDataset parses the reference CSV used for normalization
// constants and aggregate analytics.
func LoadReferenceDataset(path string) ([]*ReferenceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference dataset: %w", err)
	}
	defer f.Close()

	var records []*ReferenceRecord
	if err := gocsv.Unmarshal(f, &records); err != nil {
		return nil, fmt.Errorf("parse reference dataset %s: %w", path, err)
	}
	return records, nil
}

// computeReferenceStats derives the max-charge normalization constants
// from the dataset. Called once at startup; the result is cached on the
// service so per-request work never rescans the dataset.
func computeReferenceStats(records []*ReferenceRecord) ReferenceStats {
	var stats ReferenceStats
	for _, r := range records {
		if r.MonthlyCharges > stats.MaxMonthlyCharges {
			stats.MaxMonthlyCharges = r.MonthlyCharges
		}
		if total := r.TotalChargesValue(); total > stats.MaxTotalCharges {
			stats.MaxTotalCharges = total
		}
	}
	return stats
}
