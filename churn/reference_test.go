package churn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `customerID,gender,SeniorCitizen,Partner,Dependents,tenure,PhoneService,MultipleLines,InternetService,OnlineSecurity,OnlineBackup,DeviceProtection,TechSupport,StreamingTV,StreamingMovies,Contract,PaperlessBilling,PaymentMethod,MonthlyCharges,TotalCharges,Churn
7590-VHVEG,Female,0,Yes,No,1,No,No phone service,DSL,No,Yes,No,No,No,No,Month-to-month,Yes,Electronic check,29.85,29.85,No
5575-GNVDE,Male,0,No,No,34,Yes,No,DSL,Yes,No,Yes,No,No,No,One year,No,Mailed check,56.95,1889.5,No
3668-QPYBK,Male,1,No,No,0,Yes,No,Fiber optic,No,No,No,No,No,No,Month-to-month,Yes,Electronic check,70.70, ,Yes
`

func writeTestCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "churn.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))
	return path
}

func TestLoadReferenceDataset(t *testing.T) {
	records, err := LoadReferenceDataset(writeTestCSV(t))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "7590-VHVEG", first.CustomerID)
	assert.Equal(t, 1, first.Tenure)
	assert.Equal(t, "Month-to-month", first.Contract)
	assert.Equal(t, 29.85, first.MonthlyCharges)
	assert.Equal(t, "No", first.Churn)

	assert.Equal(t, 1, records[2].SeniorCitizen)
	assert.Equal(t, "Yes", records[2].Churn)
}

func TestLoadReferenceDatasetMissing(t *testing.T) {
	_, err := LoadReferenceDataset(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestTotalChargesCoercion(t *testing.T) {
	assert.Equal(t, 1889.5, (&ReferenceRecord{TotalCharges: "1889.5"}).TotalChargesValue())
	assert.Equal(t, 120.0, (&ReferenceRecord{TotalCharges: " 120 "}).TotalChargesValue())
	// Blank TotalCharges appears in the source data for zero-tenure customers.
	assert.Equal(t, 0.0, (&ReferenceRecord{TotalCharges: " "}).TotalChargesValue())
	assert.Equal(t, 0.0, (&ReferenceRecord{TotalCharges: "n/a"}).TotalChargesValue())
}

func TestComputeReferenceStats(t *testing.T) {
	records, err := LoadReferenceDataset(writeTestCSV(t))
	require.NoError(t, err)

	stats := computeReferenceStats(records)
	assert.Equal(t, 70.70, stats.MaxMonthlyCharges)
	assert.Equal(t, 1889.5, stats.MaxTotalCharges)
}
