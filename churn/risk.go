package churn

import (
	"math"

	"github.com/teriyakki-jin/Churn-Guard-AI/models"
)

// RiskSummary buckets a churn probability into the five-tier scheme used
// by the prediction endpoint.
func RiskSummary(prob float64) string {
	switch {
	case prob > 0.7:
		return "Critical Risk"
	case prob > 0.5:
		return "High Risk"
	case prob > 0.3:
		return "Moderate Risk"
	case prob > 0.15:
		return "Low Risk"
	default:
		return "Minimal Risk"
	}
}

// RiskSummaryCoarse is the simplified three-tier scheme kept for prediction
// history rows and websocket alerts. The two schemes coexist on purpose;
// they predate this service and both have downstream consumers.
func RiskSummaryCoarse(prob float64) string {
	switch {
	case prob > 0.6:
		return "High Risk"
	case prob > 0.3:
		return "Moderate Risk"
	default:
		return "Low Risk"
	}
}

// Confidence is the doubled distance from the decision boundary,
// clamped to [0,1]. 0.5 scores zero confidence, 0 or 1 score full.
func Confidence(prob float64) float64 {
	return clamp01(math.Abs(prob-0.5) * 2)
}

// AnalyzeRiskFactors evaluates every risk rule against the customer and
// returns the ones that fire, in fixed rule order. It never fails.
func AnalyzeRiskFactors(p *models.CustomerProfile) []models.RiskFactor {
	factors := []models.RiskFactor{}

	if p.Contract == "Month-to-month" {
		factors = append(factors, models.RiskFactor{
			Factor:      "Month-to-month Contract",
			Impact:      "high",
			Description: "3.7x higher churn rate than 2-year contracts",
		})
	}

	if p.PaymentMethod == "Electronic check" {
		factors = append(factors, models.RiskFactor{
			Factor:      "Electronic Check Payment",
			Impact:      "high",
			Description: "45% churn rate vs 15-19% for automatic payments",
		})
	}

	if p.InternetService == "Fiber optic" {
		factors = append(factors, models.RiskFactor{
			Factor:      "Fiber Optic Service",
			Impact:      "medium",
			Description: "41.9% churn rate, 2.2x higher than DSL",
		})
	}

	if p.Tenure <= 6 {
		factors = append(factors, models.RiskFactor{
			Factor:      "New Customer",
			Impact:      "high",
			Description: "Customers under 6 months have highest churn",
		})
	} else if p.Tenure <= 12 {
		factors = append(factors, models.RiskFactor{
			Factor:      "Early-stage Customer",
			Impact:      "medium",
			Description: "First year is critical retention period",
		})
	}

	if p.MonthlyCharges > 70 {
		factors = append(factors, models.RiskFactor{
			Factor:      "High Monthly Charges",
			Impact:      "medium",
			Description: "Higher bills correlate with increased churn",
		})
	}

	if p.InternetService != "No" && p.OnlineSecurity == "No" {
		factors = append(factors, models.RiskFactor{
			Factor:      "No Online Security",
			Impact:      "medium",
			Description: "Customers without security features churn more",
		})
	}

	if p.SeniorCitizen == 1 {
		factors = append(factors, models.RiskFactor{
			Factor:      "Senior Citizen",
			Impact:      "low",
			Description: "Senior citizens show higher churn tendency",
		})
	}

	return factors
}

// GenerateSuggestions returns retention actions mirroring the risk rules.
// The list is never empty: when no rule fires, a single loyalty-recognition
// suggestion is emitted instead.
func GenerateSuggestions(p *models.CustomerProfile) []models.RetentionSuggestion {
	suggestions := []models.RetentionSuggestion{}

	if p.Contract == "Month-to-month" {
		suggestions = append(suggestions, models.RetentionSuggestion{
			Action:         "Offer Contract Upgrade",
			Priority:       "high",
			Details:        "Provide 15-20% discount for 1-year contract commitment",
			ExpectedImpact: "Reduce churn risk by 70%",
		})
	}

	if p.PaymentMethod == "Electronic check" {
		suggestions = append(suggestions, models.RetentionSuggestion{
			Action:         "Promote Auto-Pay",
			Priority:       "high",
			Details:        "$5/month credit for switching to automatic payment",
			ExpectedImpact: "Reduce churn risk by 60%",
		})
	}

	if p.InternetService == "Fiber optic" {
		suggestions = append(suggestions, models.RetentionSuggestion{
			Action:         "Service Quality Check",
			Priority:       "medium",
			Details:        "Proactive call to ensure satisfaction with fiber service",
			ExpectedImpact: "Address service issues early",
		})
	}

	if p.MonthlyCharges > 70 {
		suggestions = append(suggestions, models.RetentionSuggestion{
			Action:         "Bundle Optimization",
			Priority:       "medium",
			Details:        "Review services and offer optimized bundle pricing",
			ExpectedImpact: "Improve perceived value",
		})
	}

	if p.OnlineSecurity == "No" && p.InternetService != "No" {
		suggestions = append(suggestions, models.RetentionSuggestion{
			Action:         "Upsell Security Package",
			Priority:       "medium",
			Details:        "Offer 3-month free trial of online security",
			ExpectedImpact: "Increase stickiness with additional services",
		})
	}

	if p.Tenure <= 6 {
		suggestions = append(suggestions, models.RetentionSuggestion{
			Action:         "New Customer Onboarding",
			Priority:       "high",
			Details:        "Personal check-in call and welcome package",
			ExpectedImpact: "Build relationship in critical early period",
		})
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, models.RetentionSuggestion{
			Action:         "Loyalty Recognition",
			Priority:       "low",
			Details:        "Send appreciation message and loyalty rewards",
			ExpectedImpact: "Maintain positive relationship",
		})
	}

	return suggestions
}
