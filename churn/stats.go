package churn

import (
	"errors"
	"math"
	"strings"

	"github.com/teriyakki-jin/Churn-Guard-AI/models"
)

// ErrNoReferenceData is returned by the analytics methods when the
// reference dataset was not available at startup.
var ErrNoReferenceData = errors.New("reference dataset not loaded")

// fallbackFeatureImportance is reported when the model metadata does not
// carry importances (v1 artifacts).
var fallbackFeatureImportance = map[string]float64{
	"MonthlyCharges": 0.42,
	"Contract":       0.31,
	"TotalCharges":   0.15,
	"Tenure":         0.12,
}

// Stats aggregates churn rates over the reference dataset, broken down by
// the strongest categorical drivers.
func (s *Service) Stats() (*models.StatsResponse, error) {
	if len(s.dataset) == 0 {
		return nil, ErrNoReferenceData
	}

	total := len(s.dataset)
	churned := 0
	for _, r := range s.dataset {
		if r.Churn == "Yes" {
			churned++
		}
	}
	churnRate := float64(churned) / float64(total)

	resp := &models.StatsResponse{
		OverallChurnRate: map[string]float64{
			"Yes": round4(churnRate),
			"No":  round4(1 - churnRate),
		},
		ContractImpact:   s.churnPctBy(func(r *ReferenceRecord) string { return r.Contract }),
		PaymentImpact:    s.churnPctBy(func(r *ReferenceRecord) string { return r.PaymentMethod }),
		InternetImpact:   s.churnPctBy(func(r *ReferenceRecord) string { return r.InternetService }),
		TotalCustomers:   total,
		ChurnedCustomers: churned,
		ModelVersion:     s.Version(),
	}

	if s.artifact != nil && s.artifact.Metadata != nil && len(s.artifact.Metadata.FeatureImportance) > 0 {
		resp.FeatureImportance = s.artifact.Metadata.FeatureImportance
		resp.ModelMetrics = s.artifact.Metadata.EnsembleMetrics
	} else {
		resp.FeatureImportance = fallbackFeatureImportance
	}

	return resp, nil
}

// churnPctBy groups the dataset by a key and returns the churn percentage
// of each group.
func (s *Service) churnPctBy(key func(*ReferenceRecord) string) map[string]float64 {
	counts := make(map[string]int)
	churned := make(map[string]int)
	for _, r := range s.dataset {
		k := key(r)
		counts[k]++
		if r.Churn == "Yes" {
			churned[k]++
		}
	}
	pct := make(map[string]float64, len(counts))
	for k, n := range counts {
		pct[k] = round1(float64(churned[k]) / float64(n) * 100)
	}
	return pct
}

// Analysis reports high-risk segments and the financial exposure of the
// churned population.
func (s *Service) Analysis() (*models.AnalysisResponse, error) {
	if len(s.dataset) == 0 {
		return nil, ErrNoReferenceData
	}

	segments := []struct {
		name   string
		member func(*ReferenceRecord) bool
	}{
		{"Month-to-month + E-check", func(r *ReferenceRecord) bool {
			return r.Contract == "Month-to-month" && r.PaymentMethod == "Electronic check"
		}},
		{"Two year + Auto-payment", func(r *ReferenceRecord) bool {
			return r.Contract == "Two year" && strings.Contains(r.PaymentMethod, "automatic")
		}},
		{"Senior + Month-to-month", func(r *ReferenceRecord) bool {
			return r.SeniorCitizen == 1 && r.Contract == "Month-to-month"
		}},
		{"Fiber + No Security", func(r *ReferenceRecord) bool {
			return r.InternetService == "Fiber optic" && r.OnlineSecurity == "No"
		}},
		{"New Customer (<6mo)", func(r *ReferenceRecord) bool {
			return r.Tenure <= 6
		}},
	}

	total := len(s.dataset)
	results := make([]models.SegmentAnalysis, 0, len(segments))
	for _, seg := range segments {
		size := 0
		churned := 0
		for _, r := range s.dataset {
			if seg.member(r) {
				size++
				if r.Churn == "Yes" {
					churned++
				}
			}
		}
		rate := 0.0
		if size > 0 {
			rate = float64(churned) / float64(size) * 100
		}
		results = append(results, models.SegmentAnalysis{
			Segment:    seg.name,
			ChurnRate:  round1(rate),
			Size:       size,
			PctOfTotal: round1(float64(size) / float64(total) * 100),
		})
	}

	var monthlySum, tenureSum float64
	churnedCount := 0
	for _, r := range s.dataset {
		if r.Churn == "Yes" {
			monthlySum += r.MonthlyCharges
			tenureSum += float64(r.Tenure)
			churnedCount++
		}
	}
	var avgMonthly, avgTenure float64
	if churnedCount > 0 {
		avgMonthly = monthlySum / float64(churnedCount)
		avgTenure = tenureSum / float64(churnedCount)
	}

	const retentionCost = 300.0
	impact := models.FinancialImpact{
		AvgMonthlyLoss:           round2(avgMonthly),
		AvgAnnualLossPerCustomer: round2(avgMonthly * 12),
		TotalAnnualExposure:      round2(avgMonthly * 12 * float64(churnedCount)),
		AvgCustomerLifetime:      round1(avgTenure),
		RetentionCostEstimate:    retentionCost,
		ROIPerSavedCustomer:      round2(avgMonthly*12 - retentionCost),
	}

	return &models.AnalysisResponse{
		Segments:        results,
		FinancialImpact: impact,
		ModelVersion:    s.Version(),
	}, nil
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
