package churn

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FeatureSchema is the ordered list of feature columns the trained model
// expects. The order is part of the model contract: vectors handed to the
// scorer must follow it exactly.
type FeatureSchema []string

// Metadata is the optional training metadata written alongside a model.
type Metadata struct {
	EnsembleMetrics    map[string]float64 `json:"ensemble_metrics,omitempty"`
	FeatureImportance  map[string]float64 `json:"feature_importance,omitempty"`
	ReferenceStats     *ReferenceStats    `json:"reference_stats,omitempty"`
	FeatureEngineering bool               `json:"feature_engineering,omitempty"`
	TrainedAt          string             `json:"trained_at,omitempty"`
	TrainingSamples    int                `json:"training_samples,omitempty"`
}

// ModelArtifact bundles a loaded scorer with its schema and metadata.
// It is built once at startup and read-only afterwards.
type ModelArtifact struct {
	Scorer   Scorer
	Schema   FeatureSchema
	Metadata *Metadata
	Version  string

	// UseEngineered marks models trained on engineered features. It is a
	// capability of the artifact, resolved once at load time.
	UseEngineered bool
}

// LoadArtifact loads the model, feature names, and metadata for the given
// version from dir. When the versioned files are absent it falls back to
// the unsuffixed v1 artifact and reports the resolved version.
func LoadArtifact(dir, version string) (*ModelArtifact, error) {
	modelFile := filepath.Join(dir, fmt.Sprintf("churn_model_%s.json", version))
	featureFile := filepath.Join(dir, fmt.Sprintf("feature_names_%s.json", version))
	metadataFile := filepath.Join(dir, fmt.Sprintf("model_metadata_%s.json", version))

	if _, err := os.Stat(modelFile); os.IsNotExist(err) {
		modelFile = filepath.Join(dir, "churn_model.json")
		featureFile = filepath.Join(dir, "feature_names.json")
		metadataFile = filepath.Join(dir, "model_metadata.json")
		version = "v1"
	}

	f, err := os.Open(modelFile)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	scorer, err := LoadScorer(f)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", modelFile, err)
	}

	schema, err := loadFeatureNames(featureFile)
	if err != nil {
		return nil, err
	}
	if len(schema) == 0 {
		return nil, fmt.Errorf("feature schema %s is empty", featureFile)
	}

	artifact := &ModelArtifact{
		Scorer:  scorer,
		Schema:  schema,
		Version: version,
	}

	// Metadata is optional: a missing file is skipped, any other read
	// error fails the load.
	data, err := os.ReadFile(metadataFile)
	switch {
	case err == nil:
		var md Metadata
		if err := json.Unmarshal(data, &md); err != nil {
			return nil, fmt.Errorf("parse metadata %s: %w", metadataFile, err)
		}
		artifact.Metadata = &md
		artifact.UseEngineered = md.FeatureEngineering
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read metadata %s: %w", metadataFile, err)
	}

	return artifact, nil
}

func loadFeatureNames(path string) (FeatureSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open feature names: %w", err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse feature names %s: %w", path, err)
	}
	return FeatureSchema(names), nil
}
