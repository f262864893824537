package model

import (
	"fmt"
	"math"

	"peoplelens/domain/core"
)

// Node is one splitting decision of the form "x[FeatureIndex] < Threshold ?".
// Child indexes point into the flat node list, or into the outputs array when
// the corresponding leaf flag is set.
type Node struct {
	FeatureIndex int     `json:"feature_index"`
	Threshold    float64 `json:"threshold"`
	LeftChild    int     `json:"left_child"`
	LeftIsLeaf   bool    `json:"left_is_leaf"`
	RightChild   int     `json:"right_child"`
	RightIsLeaf  bool    `json:"right_is_leaf"`
}

// Tree is a single regression tree stored as a flat node list.
type Tree struct {
	Nodes       []Node    `json:"nodes"`
	Outputs     []float64 `json:"outputs"`
	FeatureSize int       `json:"feature_size"`
	Depth       int       `json:"depth"`
}

// bin walks a feature vector down the tree and returns the output index it
// lands in.
func (t *Tree) bin(x []float64) (int, error) {
	if len(x) != t.FeatureSize {
		return 0, fmt.Errorf("feature vector has %d values, tree expects %d", len(x), t.FeatureSize)
	}
	if len(t.Nodes) == 0 {
		return 0, fmt.Errorf("tree has no nodes")
	}

	cur := t.Nodes[0]
	for i := 0; i < t.Depth; i++ {
		if cur.FeatureIndex < 0 || cur.FeatureIndex >= len(x) {
			return 0, fmt.Errorf("node references feature %d out of %d", cur.FeatureIndex, len(x))
		}
		if x[cur.FeatureIndex] < cur.Threshold {
			if cur.LeftIsLeaf {
				return cur.LeftChild, nil
			}
			cur = t.Nodes[cur.LeftChild]
		} else {
			if cur.RightIsLeaf {
				return cur.RightChild, nil
			}
			cur = t.Nodes[cur.RightChild]
		}
	}
	return 0, fmt.Errorf("traversal did not reach a leaf within depth %d", t.Depth)
}

func (t *Tree) evaluate(x []float64) (float64, error) {
	idx, err := t.bin(x)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(t.Outputs) {
		return 0, fmt.Errorf("leaf index %d out of %d outputs", idx, len(t.Outputs))
	}
	return t.Outputs[idx], nil
}

// Artifact is the parsed attrition model: a boosted tree ensemble plus the
// identity stamped at load time. The dashboard reads only the metadata; the
// evaluation path exists for offline sanity checks.
type Artifact struct {
	ID       core.ModelID   `json:"-"`
	Hash     core.ModelHash `json:"-"`
	LoadedAt core.LoadedAt  `json:"-"`

	Name     string   `json:"algorithm"`
	Features []string `json:"features"`
	Trees    []Tree   `json:"trees"`
}

// Algorithm names the training algorithm recorded in the artifact.
func (a *Artifact) Algorithm() string {
	return a.Name
}

// NumTrees returns the ensemble size.
func (a *Artifact) NumTrees() int {
	return len(a.Trees)
}

// NumInputs returns the number of input features the ensemble expects.
func (a *Artifact) NumInputs() int {
	return len(a.Features)
}

// HashShort returns a display-length content fingerprint.
func (a *Artifact) HashShort() string {
	return a.Hash.Short()
}

// Validate checks the structural invariants that the evaluation walk relies
// on: at least one tree, consistent feature sizes, and child indexes that stay
// inside their node and output arrays.
func (a *Artifact) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("artifact has no algorithm name")
	}
	if len(a.Trees) == 0 {
		return fmt.Errorf("artifact has no trees")
	}
	if len(a.Features) == 0 {
		return fmt.Errorf("artifact has no feature names")
	}

	for ti, t := range a.Trees {
		if t.FeatureSize != len(a.Features) {
			return fmt.Errorf("tree %d expects %d features, artifact lists %d", ti, t.FeatureSize, len(a.Features))
		}
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range t.Nodes {
			if n.FeatureIndex < 0 || n.FeatureIndex >= t.FeatureSize {
				return fmt.Errorf("tree %d node %d references feature %d out of %d", ti, ni, n.FeatureIndex, t.FeatureSize)
			}
			if err := checkChild(n.LeftChild, n.LeftIsLeaf, len(t.Nodes), len(t.Outputs)); err != nil {
				return fmt.Errorf("tree %d node %d left: %w", ti, ni, err)
			}
			if err := checkChild(n.RightChild, n.RightIsLeaf, len(t.Nodes), len(t.Outputs)); err != nil {
				return fmt.Errorf("tree %d node %d right: %w", ti, ni, err)
			}
		}
	}
	return nil
}

func checkChild(child int, isLeaf bool, numNodes, numOutputs int) error {
	if isLeaf {
		if child < 0 || child >= numOutputs {
			return fmt.Errorf("leaf index %d out of %d outputs", child, numOutputs)
		}
		return nil
	}
	if child < 0 || child >= numNodes {
		return fmt.Errorf("child index %d out of %d nodes", child, numNodes)
	}
	return nil
}

// Margin sums the tree outputs for one feature vector.
func (a *Artifact) Margin(x []float64) (float64, error) {
	var sum float64
	for ti := range a.Trees {
		out, err := a.Trees[ti].evaluate(x)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", ti, err)
		}
		sum += out
	}
	return sum, nil
}

// Probability maps the ensemble margin through the logistic function,
// yielding the attrition probability for one feature vector.
func (a *Artifact) Probability(x []float64) (float64, error) {
	margin, err := a.Margin(x)
	if err != nil {
		return 0, err
	}
	return 1 / (1 + math.Exp(-margin)), nil
}
