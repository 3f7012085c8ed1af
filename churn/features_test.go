package churn

import (
	"testing"

	"github.com/teriyakki-jin/Churn-Guard-AI/models"

	"github.com/stretchr/testify/assert"
)

var testStats = ReferenceStats{MaxMonthlyCharges: 118.75, MaxTotalCharges: 8684.8}

func sampleProfile() *models.CustomerProfile {
	return &models.CustomerProfile{
		Gender:           "Male",
		SeniorCitizen:    0,
		Partner:          "No",
		Dependents:       "No",
		Tenure:           10,
		PhoneService:     "Yes",
		MultipleLines:    "No",
		InternetService:  "Fiber optic",
		OnlineSecurity:   "No",
		OnlineBackup:     "No",
		DeviceProtection: "No",
		TechSupport:      "No",
		StreamingTV:      "Yes",
		StreamingMovies:  "No",
		Contract:         "Month-to-month",
		PaperlessBilling: "Yes",
		PaymentMethod:    "Electronic check",
		MonthlyCharges:   80.0,
		TotalCharges:     800.0,
	}
}

func TestCustomerValueScore(t *testing.T) {
	p := sampleProfile()
	feats := EngineerFeatures(p, testStats)

	expected := 10*0.3 + (80.0/118.75)*100*0.4 + (800.0/8684.8)*100*0.3
	assert.InDelta(t, expected, feats["CustomerValueScore"], 1e-9)
}

func TestServiceCount(t *testing.T) {
	p := sampleProfile()
	feats := EngineerFeatures(p, testStats)
	// PhoneService=Yes, InternetService=Fiber optic, StreamingTV=Yes
	assert.Equal(t, 3.0, feats["ServiceCount"])

	p.InternetService = "DSL"
	feats = EngineerFeatures(p, testStats)
	assert.Equal(t, 3.0, feats["ServiceCount"], "DSL still counts as an active service")

	p.InternetService = "No"
	feats = EngineerFeatures(p, testStats)
	assert.Equal(t, 2.0, feats["ServiceCount"])
}

func TestContractStability(t *testing.T) {
	p := sampleProfile()
	for contract, want := range map[string]float64{
		"Month-to-month": 1,
		"One year":       2,
		"Two year":       3,
		"Decade":         1, // unmapped defaults to 1
	} {
		p.Contract = contract
		feats := EngineerFeatures(p, testStats)
		assert.Equal(t, want, feats["ContractStability"], contract)
	}
}

func TestPaymentRisk(t *testing.T) {
	p := sampleProfile()
	for method, want := range map[string]float64{
		"Electronic check":          3,
		"Mailed check":              2,
		"Bank transfer (automatic)": 1,
		"Credit card (automatic)":   1,
		"Cash":                      2, // unmapped defaults to 2
	} {
		p.PaymentMethod = method
		feats := EngineerFeatures(p, testStats)
		assert.Equal(t, want, feats["PaymentRisk"], method)
	}
}

func TestTenureGroups(t *testing.T) {
	cases := []struct {
		tenure int
		group  string
	}{
		{0, "New"}, {12, "New"}, {13, "Growing"}, {24, "Growing"},
		{25, "Mature"}, {48, "Mature"}, {49, "Loyal"}, {72, "Loyal"},
	}
	p := sampleProfile()
	for _, c := range cases {
		p.Tenure = c.tenure
		feats := EngineerFeatures(p, testStats)
		for _, grp := range tenureGroups {
			want := 0.0
			if grp == c.group {
				want = 1
			}
			assert.Equal(t, want, feats["TenureGroup_"+grp], "tenure=%d group=%s", c.tenure, grp)
		}
	}
}

func TestChargeRatio(t *testing.T) {
	p := sampleProfile()
	feats := EngineerFeatures(p, testStats)
	assert.InDelta(t, 80.0/(800.0/10.0), feats["ChargeRatio"], 1e-9)

	p.TotalCharges = 0
	feats = EngineerFeatures(p, testStats)
	assert.Equal(t, 1.0, feats["ChargeRatio"], "zero total charges falls back to 1")
}

func TestZeroTenureGuards(t *testing.T) {
	p := sampleProfile()
	p.Tenure = 0
	p.TotalCharges = 0

	feats := EngineerFeatures(p, testStats)
	assert.Equal(t, 1.0, feats["ChargeRatio"])
	assert.Equal(t, p.MonthlyCharges, feats["AvgMonthlySpend"], "tenure=0 falls back to monthly charge")

	// Non-zero total with zero tenure still must not divide by zero.
	p.TotalCharges = 50
	feats = EngineerFeatures(p, testStats)
	assert.InDelta(t, 80.0/(50.0/1.0), feats["ChargeRatio"], 1e-9)
}

func TestAvgMonthlySpend(t *testing.T) {
	p := sampleProfile()
	feats := EngineerFeatures(p, testStats)
	assert.InDelta(t, 800.0/10.0, feats["AvgMonthlySpend"], 1e-9)
}

func TestSeniorMonthly(t *testing.T) {
	p := sampleProfile()
	p.SeniorCitizen = 1
	p.Contract = "Month-to-month"
	feats := EngineerFeatures(p, testStats)
	assert.Equal(t, 1.0, feats["SeniorMonthly"])

	p.Contract = "Two year"
	feats = EngineerFeatures(p, testStats)
	assert.Equal(t, 0.0, feats["SeniorMonthly"])

	p.SeniorCitizen = 0
	p.Contract = "Month-to-month"
	feats = EngineerFeatures(p, testStats)
	assert.Equal(t, 0.0, feats["SeniorMonthly"])
}

func TestPremiumServices(t *testing.T) {
	p := sampleProfile()
	p.OnlineSecurity = "Yes"
	p.TechSupport = "Yes"
	feats := EngineerFeatures(p, testStats)
	assert.Equal(t, 2.0, feats["PremiumServices"])
}

func TestFiberNoSecurity(t *testing.T) {
	p := sampleProfile()
	feats := EngineerFeatures(p, testStats)
	assert.Equal(t, 1.0, feats["FiberNoSecurity"])

	p.OnlineSecurity = "Yes"
	feats = EngineerFeatures(p, testStats)
	assert.Equal(t, 0.0, feats["FiberNoSecurity"])

	p.OnlineSecurity = "No"
	p.InternetService = "DSL"
	feats = EngineerFeatures(p, testStats)
	assert.Equal(t, 0.0, feats["FiberNoSecurity"])
}
