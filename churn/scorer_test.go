package churn

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogisticRegression(t *testing.T) {
	model := &LogisticRegression{Bias: -1, Coefs: []float64{2, -0.5}}

	p, err := model.PredictProba([]float64{1, 2})
	require.NoError(t, err)
	// sigmoid(-1 + 2*1 - 0.5*2) = sigmoid(0) = 0.5
	assert.InDelta(t, 0.5, p, 1e-9)

	p, err = model.PredictProba([]float64{3, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-5)), p, 1e-9)
}

func TestLogisticRegressionLengthMismatch(t *testing.T) {
	model := &LogisticRegression{Bias: 0, Coefs: []float64{1, 2, 3}}
	_, err := model.PredictProba([]float64{1, 2})
	assert.Error(t, err)
}

func stumpTree(featureIndex int, threshold, left, right float64) DecisionTree {
	return DecisionTree{
		Nodes: []Node{{
			FeatureIndex: featureIndex,
			Threshold:    threshold,
			LeftChild:    0,
			LeftIsLeaf:   true,
			RightChild:   1,
			RightIsLeaf:  true,
		}},
		Outputs:     []float64{left, right},
		FeatureSize: 2,
		Depth:       1,
	}
}

func TestDecisionTreeEvaluate(t *testing.T) {
	tree := stumpTree(0, 2.5, -3, 11)

	out, err := tree.Evaluate([]float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, -3.0, out)

	out, err = tree.Evaluate([]float64{5, 0})
	require.NoError(t, err)
	assert.Equal(t, 11.0, out)

	_, err = tree.Evaluate([]float64{1})
	assert.Error(t, err, "wrong feature size must not score")
}

func TestBoostedTrees(t *testing.T) {
	model := &BoostedTrees{
		Trees:     []DecisionTree{stumpTree(0, 1, -1, 1), stumpTree(1, 1, -0.5, 0.5)},
		BaseScore: 0.2,
	}

	p, err := model.PredictProba([]float64{2, 2})
	require.NoError(t, err)
	assert.InDelta(t, sigmoid(0.2+1+0.5), p, 1e-9)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}

func TestForestAveragesProbabilities(t *testing.T) {
	model := &Forest{
		Trees: []DecisionTree{stumpTree(0, 1, 0.2, 0.8), stumpTree(0, 1, 0.4, 0.6)},
	}

	p, err := model.PredictProba([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, p, 1e-9)

	p, err = model.PredictProba([]float64{5, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, p, 1e-9)
}

func TestVotingEnsembleWeightedMean(t *testing.T) {
	ensemble := &VotingEnsemble{Members: []WeightedScorer{
		{Name: "a", Weight: 1, Scorer: &Forest{Trees: []DecisionTree{stumpTree(0, 1, 0.2, 0.2)}}},
		{Name: "b", Weight: 3, Scorer: &Forest{Trees: []DecisionTree{stumpTree(0, 1, 0.6, 0.6)}}},
	}}

	p, err := ensemble.PredictProba([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, (0.2*1+0.6*3)/4, p, 1e-9)
}

func TestLoadScorerLogisticRegression(t *testing.T) {
	raw := `{
		"scorer_type": "logistic_regression",
		"scorer": {"bias": [-0.5], "coefs": [[1.0, 2.0]]}
	}`
	scorer, err := LoadScorer(strings.NewReader(raw))
	require.NoError(t, err)

	lr, ok := scorer.(*LogisticRegression)
	require.True(t, ok)
	assert.Equal(t, -0.5, lr.Bias)
	assert.Equal(t, []float64{1, 2}, lr.Coefs)
}

func TestLoadScorerVotingEnsemble(t *testing.T) {
	raw := `{
		"scorer_type": "voting_ensemble",
		"scorer": {"estimators": [
			{"name": "xgb", "weight": 2, "scorer_type": "boosted_trees", "scorer": {
				"base_score": 0.0,
				"trees": [{"nodes": [{"feature_index": 0, "threshold": 1, "left_child": 0, "left_is_leaf": true, "right_child": 1, "right_is_leaf": true}], "outputs": [-2, 2], "feature_size": 1, "depth": 1}]
			}},
			{"name": "lr", "scorer_type": "logistic_regression", "scorer": {"bias": [0], "coefs": [[0]]}}
		]}
	}`
	scorer, err := LoadScorer(strings.NewReader(raw))
	require.NoError(t, err)

	ensemble, ok := scorer.(*VotingEnsemble)
	require.True(t, ok)
	require.Len(t, ensemble.Members, 2)
	assert.Equal(t, 2.0, ensemble.Members[0].Weight)
	assert.Equal(t, 1.0, ensemble.Members[1].Weight, "missing weight defaults to 1")

	p, err := ensemble.PredictProba([]float64{2})
	require.NoError(t, err)
	// (sigmoid(2)*2 + 0.5*1) / 3
	assert.InDelta(t, (sigmoid(2)*2+0.5)/3, p, 1e-9)
}

func TestLoadScorerUnknownType(t *testing.T) {
	_, err := LoadScorer(strings.NewReader(`{"scorer_type": "svm", "scorer": {}}`))
	assert.Error(t, err)
}

func TestLoadScorerEmptyModels(t *testing.T) {
	for _, raw := range []string{
		`{"scorer_type": "logistic_regression", "scorer": {"bias": [], "coefs": []}}`,
		`{"scorer_type": "boosted_trees", "scorer": {"trees": []}}`,
		`{"scorer_type": "forest", "scorer": {"trees": []}}`,
		`{"scorer_type": "voting_ensemble", "scorer": {"estimators": []}}`,
	} {
		_, err := LoadScorer(strings.NewReader(raw))
		assert.Error(t, err, raw)
	}
}
