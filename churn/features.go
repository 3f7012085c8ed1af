package churn

import (
	"github.com/teriyakki-jin/Churn-Guard-AI/models"
)

// ReferenceStats are normalization constants captured from the training
// population. They must match the values used at training time, otherwise
// the engineered features drift between training and serving.
type ReferenceStats struct {
	MaxMonthlyCharges float64 `json:"max_monthly_charges"`
	MaxTotalCharges   float64 `json:"max_total_charges"`
}

// defaultReferenceStats are the constants of the telco training dataset,
// used when neither model metadata nor the reference CSV provides them.
var defaultReferenceStats = ReferenceStats{
	MaxMonthlyCharges: 118.75,
	MaxTotalCharges:   8684.8,
}

var contractStability = map[string]float64{
	"Month-to-month": 1,
	"One year":       2,
	"Two year":       3,
}

var paymentRisk = map[string]float64{
	"Electronic check":          3,
	"Mailed check":              2,
	"Bank transfer (automatic)": 1,
	"Credit card (automatic)":   1,
}

var tenureGroups = []string{"New", "Growing", "Mature", "Loyal"}

// EngineerFeatures computes the derived feature columns for a customer.
// The formulas replicate the training pipeline exactly, including the
// tenure=0 division guards.
func EngineerFeatures(p *models.CustomerProfile, stats ReferenceStats) map[string]float64 {
	feats := make(map[string]float64, 16)

	tenure := float64(p.Tenure)
	monthly := p.MonthlyCharges
	total := p.TotalCharges

	feats["CustomerValueScore"] = tenure*0.3 +
		(monthly/stats.MaxMonthlyCharges)*100*0.4 +
		(total/stats.MaxTotalCharges)*100*0.3

	var serviceCount float64
	for _, val := range []string{
		p.PhoneService, p.MultipleLines, p.InternetService,
		p.OnlineSecurity, p.OnlineBackup, p.DeviceProtection,
		p.TechSupport, p.StreamingTV, p.StreamingMovies,
	} {
		if val == "Yes" || val == "DSL" || val == "Fiber optic" {
			serviceCount++
		}
	}
	feats["ServiceCount"] = serviceCount

	stability, ok := contractStability[p.Contract]
	if !ok {
		stability = 1
	}
	feats["ContractStability"] = stability

	risk, ok := paymentRisk[p.PaymentMethod]
	if !ok {
		risk = 2
	}
	feats["PaymentRisk"] = risk

	group := tenureGroup(p.Tenure)
	for _, grp := range tenureGroups {
		val := 0.0
		if grp == group {
			val = 1
		}
		feats["TenureGroup_"+grp] = val
	}

	// tenure=0 substitutes a denominator of 1 rather than dividing by zero.
	tenureDenom := tenure
	if tenureDenom < 1 {
		tenureDenom = 1
	}
	if total > 0 {
		feats["ChargeRatio"] = monthly / (total / tenureDenom)
	} else {
		feats["ChargeRatio"] = 1
	}

	if p.Tenure > 0 {
		feats["AvgMonthlySpend"] = total / tenureDenom
	} else {
		feats["AvgMonthlySpend"] = monthly
	}

	if p.SeniorCitizen == 1 && p.Contract == "Month-to-month" {
		feats["SeniorMonthly"] = 1
	} else {
		feats["SeniorMonthly"] = 0
	}

	var premium float64
	for _, val := range []string{p.OnlineSecurity, p.OnlineBackup, p.DeviceProtection, p.TechSupport} {
		if val == "Yes" {
			premium++
		}
	}
	feats["PremiumServices"] = premium

	if p.InternetService == "Fiber optic" && p.OnlineSecurity == "No" {
		feats["FiberNoSecurity"] = 1
	} else {
		feats["FiberNoSecurity"] = 0
	}

	return feats
}

func tenureGroup(tenure int) string {
	switch {
	case tenure <= 12:
		return "New"
	case tenure <= 24:
		return "Growing"
	case tenure <= 48:
		return "Mature"
	default:
		return "Loyal"
	}
}
