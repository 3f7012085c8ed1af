package churn

import (
	"encoding/json"
	"log"
	"math"

	"github.com/teriyakki-jin/Churn-Guard-AI/models"
)

// Service is the prediction orchestrator. It is constructed once at
// startup and holds only read-only state (artifact, reference stats,
// dataset), so one instance serves concurrent requests without locking.
type Service struct {
	artifact *ModelArtifact
	stats    ReferenceStats
	dataset  []*ReferenceRecord
}

// NewService loads the model artifact and reference dataset. A missing or
// corrupt artifact does not abort startup: the service comes up degraded
// and Predict returns ErrModelNotLoaded until a valid model is deployed.
func NewService(modelDir, dataPath, version string) *Service {
	s := &Service{}

	artifact, err := LoadArtifact(modelDir, version)
	if err != nil {
		log.Printf("Error loading model: %v", err)
	} else {
		s.artifact = artifact
		log.Printf("Model %s loaded successfully (%d features)", artifact.Version, len(artifact.Schema))
	}

	dataset, err := LoadReferenceDataset(dataPath)
	if err != nil {
		log.Printf("Reference dataset unavailable: %v", err)
	} else {
		s.dataset = dataset
	}

	// Normalization constants: model metadata wins, then the dataset,
	// then the baked-in training constants.
	switch {
	case s.artifact != nil && s.artifact.Metadata != nil && s.artifact.Metadata.ReferenceStats != nil:
		s.stats = *s.artifact.Metadata.ReferenceStats
	case len(s.dataset) > 0:
		s.stats = computeReferenceStats(s.dataset)
	default:
		s.stats = defaultReferenceStats
	}

	return s
}

// NewServiceWithArtifact builds a service around an already-loaded
// artifact. Used by tests to inject fake models.
func NewServiceWithArtifact(artifact *ModelArtifact, stats ReferenceStats) *Service {
	return &Service{artifact: artifact, stats: stats}
}

// Ready reports whether a model artifact is loaded.
func (s *Service) Ready() bool {
	return s.artifact != nil
}

// Version returns the resolved model version, or "none" when degraded.
func (s *Service) Version() string {
	if s.artifact == nil {
		return "none"
	}
	return s.artifact.Version
}

// Artifact exposes the loaded artifact for the model-info endpoint.
func (s *Service) Artifact() *ModelArtifact {
	return s.artifact
}

// ReferenceStatsInUse returns the cached normalization constants.
func (s *Service) ReferenceStatsInUse() ReferenceStats {
	return s.stats
}

// Predict runs the full pipeline: engineered features, vector assembly,
// scoring, and risk explanation. The input is not mutated and the result
// is freshly allocated, so identical inputs yield identical results.
func (s *Service) Predict(p *models.CustomerProfile) (*models.PredictionResponse, error) {
	if s.artifact == nil {
		return nil, ErrModelNotLoaded
	}

	var engineered map[string]float64
	if s.artifact.UseEngineered {
		engineered = EngineerFeatures(p, s.stats)
	}

	vec := BuildVector(p, s.artifact.Schema, engineered)

	prob, err := s.artifact.Scorer.PredictProba(vec.Values())
	if err != nil {
		return nil, &PredictionError{Message: "failed to score customer", Err: err}
	}
	prob = clamp01(prob)

	prediction := "No"
	if prob > 0.5 {
		prediction = "Yes"
	}

	return &models.PredictionResponse{
		ChurnRiskScore: round4(prob),
		Prediction:     prediction,
		Summary:        RiskSummary(prob),
		Confidence:     round4(Confidence(prob)),
		RiskFactors:    AnalyzeRiskFactors(p),
		Suggestions:    GenerateSuggestions(p),
		ModelVersion:   s.artifact.Version,
	}, nil
}

// HistoryRecord converts a prediction into its persisted form, using the
// coarse risk tier that history consumers expect.
func (s *Service) HistoryRecord(userID uint, result *models.PredictionResponse) models.PredictionHistory {
	suggestions, err := json.Marshal(result.Suggestions)
	if err != nil {
		suggestions = []byte("[]")
	}
	return models.PredictionHistory{
		UserID:           userID,
		ChurnProbability: result.ChurnRiskScore,
		Prediction:       result.Prediction,
		RiskLevel:        RiskSummaryCoarse(result.ChurnRiskScore),
		Suggestions:      string(suggestions),
		ModelVersion:     result.ModelVersion,
	}
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
