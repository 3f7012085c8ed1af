package churn

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Scorer turns a feature vector into the probability of the churn class.
// Implementations hold only immutable model parameters, so a loaded scorer
// is safe for concurrent use.
type Scorer interface {
	PredictProba(features []float64) (float64, error)
}

// LoadScorer reads a serialized model of the form
// {"scorer_type": "...", "scorer": {...}} produced by the training pipeline.
func LoadScorer(r io.Reader) (Scorer, error) {
	var intermediate struct {
		ScorerType string          `json:"scorer_type"`
		Scorer     json.RawMessage `json:"scorer"`
	}
	if err := json.NewDecoder(r).Decode(&intermediate); err != nil {
		return nil, err
	}
	return decodeScorer(intermediate.ScorerType, intermediate.Scorer)
}

func decodeScorer(scorerType string, raw json.RawMessage) (Scorer, error) {
	switch scorerType {
	case "logistic_regression":
		// The exporter writes one bias/coef row per class; binary models
		// carry a single row.
		var multiclass struct {
			Bias  []float64   `json:"bias"`
			Coefs [][]float64 `json:"coefs"`
		}
		if err := json.Unmarshal(raw, &multiclass); err != nil {
			return nil, err
		}
		if len(multiclass.Bias) == 0 || len(multiclass.Coefs) == 0 {
			return nil, fmt.Errorf("logistic regression model has no coefficients")
		}
		return &LogisticRegression{
			Bias:  multiclass.Bias[0],
			Coefs: multiclass.Coefs[0],
		}, nil

	case "boosted_trees":
		var model BoostedTrees
		if err := json.Unmarshal(raw, &model); err != nil {
			return nil, err
		}
		if len(model.Trees) == 0 {
			return nil, fmt.Errorf("boosted trees model has no trees")
		}
		return &model, nil

	case "forest":
		var model Forest
		if err := json.Unmarshal(raw, &model); err != nil {
			return nil, err
		}
		if len(model.Trees) == 0 {
			return nil, fmt.Errorf("forest model has no trees")
		}
		return &model, nil

	case "voting_ensemble":
		var intermediate struct {
			Estimators []struct {
				Name       string          `json:"name"`
				Weight     float64         `json:"weight"`
				ScorerType string          `json:"scorer_type"`
				Scorer     json.RawMessage `json:"scorer"`
			} `json:"estimators"`
		}
		if err := json.Unmarshal(raw, &intermediate); err != nil {
			return nil, err
		}
		if len(intermediate.Estimators) == 0 {
			return nil, fmt.Errorf("voting ensemble has no estimators")
		}
		ensemble := &VotingEnsemble{}
		for _, est := range intermediate.Estimators {
			member, err := decodeScorer(est.ScorerType, est.Scorer)
			if err != nil {
				return nil, fmt.Errorf("estimator %q: %w", est.Name, err)
			}
			weight := est.Weight
			if weight == 0 {
				weight = 1
			}
			ensemble.Members = append(ensemble.Members, WeightedScorer{
				Name:   est.Name,
				Weight: weight,
				Scorer: member,
			})
		}
		return ensemble, nil

	default:
		return nil, fmt.Errorf("unknown scorer type %q", scorerType)
	}
}

// LogisticRegression is a binary logistic regression classifier.
type LogisticRegression struct {
	Bias  float64
	Coefs []float64
}

// PredictProba returns sigmoid(w·x + b).
func (l *LogisticRegression) PredictProba(features []float64) (float64, error) {
	if len(features) != len(l.Coefs) {
		return 0, fmt.Errorf("feature vector has %d columns, model expects %d", len(features), len(l.Coefs))
	}
	score := l.Bias
	for i, c := range l.Coefs {
		score += features[i] * c
	}
	return sigmoid(score), nil
}

// A Node is one splitting decision of the form "x[FeatureIndex] < Threshold ?".
type Node struct {
	FeatureIndex int     `json:"feature_index"`
	Threshold    float64 `json:"threshold"`
	LeftChild    int     `json:"left_child"`
	LeftIsLeaf   bool    `json:"left_is_leaf"`
	RightChild   int     `json:"right_child"`
	RightIsLeaf  bool    `json:"right_is_leaf"`
}

// A DecisionTree maps a feature vector to the output of the leaf it lands in.
// Nodes are stored flat; children are indexes into Nodes or, for leaves,
// into Outputs.
type DecisionTree struct {
	Nodes       []Node    `json:"nodes"`
	Outputs     []float64 `json:"outputs"`
	FeatureSize int       `json:"feature_size"`
	Depth       int       `json:"depth"`
}

// Evaluate drops a feature vector down the tree and returns the leaf output.
func (t *DecisionTree) Evaluate(x []float64) (float64, error) {
	if len(x) != t.FeatureSize {
		return 0, fmt.Errorf("feature vector has %d columns, tree expects %d", len(x), t.FeatureSize)
	}
	if len(t.Nodes) == 0 {
		return 0, fmt.Errorf("tree has no nodes")
	}
	cur := t.Nodes[0]
	for i := 0; i < t.Depth; i++ {
		if x[cur.FeatureIndex] < cur.Threshold {
			if cur.LeftIsLeaf {
				return t.Outputs[cur.LeftChild], nil
			}
			cur = t.Nodes[cur.LeftChild]
		} else {
			if cur.RightIsLeaf {
				return t.Outputs[cur.RightChild], nil
			}
			cur = t.Nodes[cur.RightChild]
		}
	}
	return 0, fmt.Errorf("tree traversal did not terminate")
}

// BoostedTrees is a gradient-boosted ensemble: the trees' raw outputs are
// summed onto BaseScore and squashed through a sigmoid link.
type BoostedTrees struct {
	Trees     []DecisionTree `json:"trees"`
	BaseScore float64        `json:"base_score"`
}

func (b *BoostedTrees) PredictProba(features []float64) (float64, error) {
	margin := b.BaseScore
	for i := range b.Trees {
		out, err := b.Trees[i].Evaluate(features)
		if err != nil {
			return 0, err
		}
		margin += out
	}
	return sigmoid(margin), nil
}

// Forest is a bagged ensemble whose leaves hold class-1 probabilities;
// the prediction is the mean leaf probability across trees.
type Forest struct {
	Trees []DecisionTree `json:"trees"`
}

func (f *Forest) PredictProba(features []float64) (float64, error) {
	var sum float64
	for i := range f.Trees {
		out, err := f.Trees[i].Evaluate(features)
		if err != nil {
			return 0, err
		}
		sum += out
	}
	return clamp01(sum / float64(len(f.Trees))), nil
}

// WeightedScorer is one member of a soft-voting ensemble.
type WeightedScorer struct {
	Name   string
	Weight float64
	Scorer Scorer
}

// VotingEnsemble soft-votes its members: the churn probability is the
// weighted mean of the member probabilities.
type VotingEnsemble struct {
	Members []WeightedScorer
}

func (v *VotingEnsemble) PredictProba(features []float64) (float64, error) {
	var weighted, total float64
	for _, m := range v.Members {
		p, err := m.Scorer.PredictProba(features)
		if err != nil {
			return 0, err
		}
		weighted += p * m.Weight
		total += m.Weight
	}
	return clamp01(weighted / total), nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
