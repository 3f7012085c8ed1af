package churn

import (
	"github.com/teriyakki-jin/Churn-Guard-AI/models"
)

// FeatureVector holds the numeric representation of one customer, with
// values stored in schema order. Keeping the values in a slice indexed by
// the schema makes column-order mismatches impossible by construction.
type FeatureVector struct {
	schema FeatureSchema
	index  map[string]int
	values []float64
}

// NewFeatureVector returns a zero-filled vector aligned to the schema.
func NewFeatureVector(schema FeatureSchema) *FeatureVector {
	index := make(map[string]int, len(schema))
	for i, name := range schema {
		index[name] = i
	}
	return &FeatureVector{
		schema: schema,
		index:  index,
		values: make([]float64, len(schema)),
	}
}

// Set assigns a value to the named column. Columns outside the schema are
// ignored and reported as false; raw fields the model was not trained on
// contribute nothing.
func (v *FeatureVector) Set(name string, value float64) bool {
	i, ok := v.index[name]
	if !ok {
		return false
	}
	v.values[i] = value
	return true
}

// Get returns the value of the named column.
func (v *FeatureVector) Get(name string) (float64, bool) {
	i, ok := v.index[name]
	if !ok {
		return 0, false
	}
	return v.values[i], true
}

// Values returns the vector in schema order, ready for scoring.
func (v *FeatureVector) Values() []float64 {
	return v.values
}

// Len returns the number of columns, which always equals the schema length.
func (v *FeatureVector) Len() int {
	return len(v.values)
}

// categoricalField enumerates the known categories of one raw input field.
// One-hot columns are named "{field}_{value}"; a value outside the known
// categories (or one whose column the model was not trained with) sets no
// column at all, reproducing the training-time encoding.
type categoricalField struct {
	name       string
	categories []string
	value      func(p *models.CustomerProfile) string
}

var categoricalFields = []categoricalField{
	{"gender", []string{"Male", "Female"}, func(p *models.CustomerProfile) string { return p.Gender }},
	{"Partner", yesNo, func(p *models.CustomerProfile) string { return p.Partner }},
	{"Dependents", yesNo, func(p *models.CustomerProfile) string { return p.Dependents }},
	{"PhoneService", yesNo, func(p *models.CustomerProfile) string { return p.PhoneService }},
	{"MultipleLines", []string{"Yes", "No", "No phone service"}, func(p *models.CustomerProfile) string { return p.MultipleLines }},
	{"InternetService", []string{"DSL", "Fiber optic", "No"}, func(p *models.CustomerProfile) string { return p.InternetService }},
	{"OnlineSecurity", internetAddon, func(p *models.CustomerProfile) string { return p.OnlineSecurity }},
	{"OnlineBackup", internetAddon, func(p *models.CustomerProfile) string { return p.OnlineBackup }},
	{"DeviceProtection", internetAddon, func(p *models.CustomerProfile) string { return p.DeviceProtection }},
	{"TechSupport", internetAddon, func(p *models.CustomerProfile) string { return p.TechSupport }},
	{"StreamingTV", internetAddon, func(p *models.CustomerProfile) string { return p.StreamingTV }},
	{"StreamingMovies", internetAddon, func(p *models.CustomerProfile) string { return p.StreamingMovies }},
	{"Contract", []string{"Month-to-month", "One year", "Two year"}, func(p *models.CustomerProfile) string { return p.Contract }},
	{"PaperlessBilling", yesNo, func(p *models.CustomerProfile) string { return p.PaperlessBilling }},
	{"PaymentMethod", []string{"Electronic check", "Mailed check", "Bank transfer (automatic)", "Credit card (automatic)"}, func(p *models.CustomerProfile) string { return p.PaymentMethod }},
}

var (
	yesNo         = []string{"Yes", "No"}
	internetAddon = []string{"Yes", "No", "No internet service"}
)

// BuildVector assembles the feature vector for a customer: numeric
// passthrough columns, one-hot categorical columns, then the engineered
// columns (nil when the model does not use them) merged by name.
func BuildVector(p *models.CustomerProfile, schema FeatureSchema, engineered map[string]float64) *FeatureVector {
	vec := NewFeatureVector(schema)

	vec.Set("SeniorCitizen", float64(p.SeniorCitizen))
	vec.Set("tenure", float64(p.Tenure))
	vec.Set("MonthlyCharges", p.MonthlyCharges)
	vec.Set("TotalCharges", p.TotalCharges)

	for _, field := range categoricalFields {
		val := field.value(p)
		for _, category := range field.categories {
			if val == category {
				vec.Set(field.name+"_"+category, 1)
				break
			}
		}
	}

	for name, value := range engineered {
		vec.Set(name, value)
	}

	return vec
}
