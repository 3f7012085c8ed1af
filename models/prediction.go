package models

import "time"

// RiskFactor describes one condition contributing to the churn risk.
type RiskFactor struct {
	Factor      string `json:"factor"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

// RetentionSuggestion is an actionable recommendation for keeping a customer.
type RetentionSuggestion struct {
	Action         string `json:"action"`
	Priority       string `json:"priority"`
	Details        string `json:"details"`
	ExpectedImpact string `json:"expected_impact"`
}

// PredictionResponse is the full churn prediction payload returned by /api/predict.
type PredictionResponse struct {
	ChurnRiskScore float64               `json:"churn_risk_score"`
	Prediction     string                `json:"prediction"`
	Summary        string                `json:"summary"`
	Confidence     float64               `json:"confidence"`
	RiskFactors    []RiskFactor          `json:"risk_factors"`
	Suggestions    []RetentionSuggestion `json:"suggestions"`
	ModelVersion   string                `json:"model_version"`
}

// PredictionHistory stores one prediction result per requesting user.
// Suggestions are kept as a JSON blob, same as the rest of the response.
type PredictionHistory struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"not null"`
	Timestamp        time.Time `json:"timestamp"`
	ChurnProbability float64   `json:"churn_probability"`
	Prediction       string    `json:"prediction"`
	RiskLevel        string    `json:"risk_level"` // coarse tier: Low Risk / Moderate Risk / High Risk
	Suggestions      string    `json:"suggestions"`
	ModelVersion     string    `json:"model_version"`
}

// StatsResponse aggregates churn metrics over the reference dataset.
type StatsResponse struct {
	OverallChurnRate  map[string]float64 `json:"overall_churn_rate"`
	ContractImpact    map[string]float64 `json:"contract_impact"`
	PaymentImpact     map[string]float64 `json:"payment_impact"`
	InternetImpact    map[string]float64 `json:"internet_impact"`
	TotalCustomers    int                `json:"total_customers"`
	ChurnedCustomers  int                `json:"churned_customers"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
	ModelVersion      string             `json:"model_version"`
	ModelMetrics      map[string]float64 `json:"model_metrics,omitempty"`
}

// SegmentAnalysis reports the churn rate of one high-risk customer segment.
type SegmentAnalysis struct {
	Segment    string  `json:"segment"`
	ChurnRate  float64 `json:"churn_rate"`
	Size       int     `json:"size"`
	PctOfTotal float64 `json:"pct_of_total"`
}

// FinancialImpact models the revenue exposure of churned customers.
type FinancialImpact struct {
	AvgMonthlyLoss           float64 `json:"avg_monthly_loss"`
	AvgAnnualLossPerCustomer float64 `json:"avg_annual_loss_per_customer"`
	TotalAnnualExposure      float64 `json:"total_annual_exposure"`
	AvgCustomerLifetime      float64 `json:"avg_customer_lifetime_months"`
	RetentionCostEstimate    float64 `json:"retention_cost_estimate"`
	ROIPerSavedCustomer      float64 `json:"roi_per_saved_customer"`
}

// AnalysisResponse is the detailed churn analysis payload.
type AnalysisResponse struct {
	Segments        []SegmentAnalysis `json:"segments"`
	FinancialImpact FinancialImpact   `json:"financial_impact"`
	ModelVersion    string            `json:"model_version"`
}
