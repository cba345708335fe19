package predictor

import (
	"context"
	"lottoLens/domain"
)

const (
	treeMaxDepth    = 4
	treeMinLeafSize = 5
)

// decisionTreeModel fits one depth-limited regression tree per number
// position.
type decisionTreeModel struct{}

func newDecisionTreeModel() *decisionTreeModel {
	return &decisionTreeModel{}
}

func (m *decisionTreeModel) Kind() string {
	return domain.ModelDecisionTree
}

func (m *decisionTreeModel) Predict(ctx context.Context, game domain.Game, draws []domain.DrawRecord, freq []int) ([6]int, error) {
	if err := ctx.Err(); err != nil {
		return [6]int{}, err
	}

	if len(draws) < minHistory {
		return topByFrequency(freq, game), nil
	}

	X, y := trainingSet(draws)
	if len(X) == 0 {
		return topByFrequency(freq, game), nil
	}

	latest := latestFeatures(draws)
	estimates := make([]float64, 6)

	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}

	for pos := 0; pos < 6; pos++ {
		target := make([]float64, len(y))
		for i := range y {
			target[i] = float64(y[i][pos])
		}

		root := buildTree(X, target, idx, 0)
		estimates[pos] = root.predict(latest)
	}

	return fillDistinct(estimates, freq, game), nil
}

type treeNode struct {
	feature   int
	threshold float64
	value     float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) predict(x [featureDim]float64) float64 {
	if n.left == nil {
		return n.value
	}
	if x[n.feature] <= n.threshold {
		return n.left.predict(x)
	}
	return n.right.predict(x)
}

func buildTree(X [][featureDim]float64, y []float64, idx []int, depth int) *treeNode {
	node := &treeNode{value: mean(y, idx)}

	if depth >= treeMaxDepth || len(idx) < 2*treeMinLeafSize {
		return node
	}

	f, t, ok := bestSplit(X, y, idx)
	if !ok {
		return node
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if X[i][f] <= t {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	if len(leftIdx) < treeMinLeafSize || len(rightIdx) < treeMinLeafSize {
		return node
	}

	node.feature = f
	node.threshold = t
	node.left = buildTree(X, y, leftIdx, depth+1)
	node.right = buildTree(X, y, rightIdx, depth+1)

	return node
}
