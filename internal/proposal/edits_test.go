package proposal_test

import (
    "math"
    "slices"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/mock/gomock"

    "bartwalk/internal/data"
    "bartwalk/internal/params"
    "bartwalk/internal/proposal"
    "bartwalk/internal/rng"
    "bartwalk/internal/rng/mocks"
    "bartwalk/internal/tree"
)

func newWalker(t *testing.T, hp params.Hyperparameters, src rng.Source) *proposal.Walker {
    t.Helper()
    w, err := proposal.NewWalker(hp, src)
    require.NoError(t, err)
    return w
}

func syntheticDataset(t *testing.T, n int, seed uint64) *tree.Dataset {
    t.Helper()
    tbl, err := data.Synthetic(n, 7, 0.5, seed)
    require.NoError(t, err)
    ds, err := tbl.Dataset()
    require.NoError(t, err)
    return ds
}

// randomTree cresce a partir do toco um número de vezes que depende da semente.
func randomTree(t *testing.T, ds *tree.Dataset, seed uint64) *tree.Node {
    t.Helper()
    hp := params.Default()
    w := newWalker(t, hp, rng.New(seed*31))
    growModel, pruneModel := proposal.GrowProbModel(hp), proposal.PruneProbModel(hp)
    cur := tree.NewStump(ds)
    for i := uint64(0); i < seed%6; i++ {
        next := cur.Clone()
        if s := w.GrowStep(cur, next, growModel, pruneModel); !s.Rejected { cur = next }
    }
    require.NoError(t, tree.CheckPartition(cur))
    return cur
}

func TestGrowExampleScenario(t *testing.T) {
    hp := params.Default()
    ctrl := gomock.NewController(t)
    src := mocks.NewMockSource(ctrl)
    gomock.InOrder(
        src.EXPECT().Float64().Return(0.5), // edição: toco força crescer
        src.EXPECT().Float64().Return(0.0), // nó
        src.EXPECT().Float64().Return(0.0), // preditor
        src.EXPECT().Float64().Return(0.0), // corte
    )
    w := newWalker(t, hp, src)
    current := tree.NewStump(exampleDataset(t))
    res := w.OneStep(current, current.Clone())

    require.False(t, res.Rejected())
    assert.Equal(t, []proposal.EditKind{proposal.Grow}, res.Edits())
    root := res.Tree
    require.False(t, root.IsTerminal)
    assert.Equal(t, tree.Decision{Predictor: 0, Threshold: 0}, *root.Decision)
    assert.Equal(t, []int{0, 1}, root.Left.DataIndices)
    assert.Equal(t, []int{2, 3}, root.Right.DataIndices)
    assert.NoError(t, tree.CheckPartition(root))

    // 1 × 1/1 nó × 1/1 preditor × 1/1 corte
    assert.InDelta(t, math.Log(1.0), res.LogForward, 1e-12)
    assert.InDelta(t, math.Log(hp.ProbPrune), res.LogBackward, 1e-12)
    assert.True(t, current.IsStump())
}

func TestGrowRejectedWhenLeafTooSmall(t *testing.T) {
    hp := params.Default()
    hp.MinLeafSize = 3
    ctrl := gomock.NewController(t)
    src := mocks.NewMockSource(ctrl)
    src.EXPECT().Float64().Return(0.0).Times(4)
    w := newWalker(t, hp, src)

    current := tree.NewStump(exampleDataset(t))
    proposed := current.Clone()
    res := w.OneStep(current, proposed)
    assert.True(t, res.Rejected())
    assert.Equal(t, [2]float64{math.Inf(-1), math.Inf(-1)}, res.LogProbs())
    assert.True(t, tree.Equal(current, proposed))
}

func TestGrowThenPruneAreInverse(t *testing.T) {
    hp := params.Default()
    growModel, pruneModel := proposal.GrowProbModel(hp), proposal.PruneProbModel(hp)
    ds := syntheticDataset(t, 80, 5)

    checked := 0
    for seed := uint64(1); seed <= 30; seed++ {
        base := randomTree(t, ds, seed)
        grown := base.Clone()
        g := newWalker(t, hp, rng.New(seed)).GrowStep(base, grown, growModel, pruneModel)
        if g.Rejected { continue }
        require.NoError(t, tree.CheckPartition(grown))

        internals := grown.PrunableAndChangeable()
        idx := slices.Index(internals, g.Node)
        require.GreaterOrEqual(t, idx, 0)

        ctrl := gomock.NewController(t)
        src := mocks.NewMockSource(ctrl)
        src.EXPECT().Float64().Return((float64(idx) + 0.5) / float64(len(internals)))
        pruned := grown.Clone()
        p := newWalker(t, hp, src).PruneStep(grown, pruned, growModel, pruneModel)
        require.False(t, p.Rejected)

        assert.True(t, tree.Equal(base, pruned), "seed %d", seed)
        assert.InDelta(t, g.LogForward, p.LogBackward, 1e-12, "seed %d", seed)
        assert.InDelta(t, g.LogBackward, p.LogForward, 1e-12, "seed %d", seed)
        checked++
    }
    assert.Greater(t, checked, 10)
}

func TestPruneAndChangeOnStumpAreRejected(t *testing.T) {
    hp := params.Default()
    ctrl := gomock.NewController(t)
    src := mocks.NewMockSource(ctrl)
    w := newWalker(t, hp, src)
    growModel, pruneModel := proposal.GrowProbModel(hp), proposal.PruneProbModel(hp)

    current := tree.NewStump(exampleDataset(t))
    proposed := current.Clone()
    p := w.PruneStep(current, proposed, growModel, pruneModel)
    c := w.ChangeStep(current, proposed, hp.ProbChange())
    for _, s := range []proposal.Step{p, c} {
        assert.True(t, s.Rejected)
        assert.True(t, math.IsInf(s.LogForward, -1))
        assert.True(t, math.IsInf(s.LogBackward, -1))
    }
    assert.True(t, tree.Equal(current, proposed))
}

func TestPruneCollapsesWholeSubtree(t *testing.T) {
    hp := params.Default()
    growModel, pruneModel := proposal.GrowProbModel(hp), proposal.PruneProbModel(hp)
    current := tree.NewStump(twoPredictorDataset(t))
    require.True(t, current.Split(tree.Decision{Predictor: 0, Threshold: 0}, 1))
    require.True(t, current.Right.Split(tree.Decision{Predictor: 1, Threshold: 3}, 1))

    ctrl := gomock.NewController(t)
    src := mocks.NewMockSource(ctrl)
    src.EXPECT().Float64().Return(0.1) // raiz, primeira em pré-ordem
    proposed := current.Clone()
    s := newWalker(t, hp, src).PruneStep(current, proposed, growModel, pruneModel)

    require.False(t, s.Rejected)
    assert.True(t, proposed.IsStump())
    assert.NoError(t, tree.CheckPartition(proposed))
    assert.InDelta(t, math.Log(hp.ProbPrune)-math.Log(2), s.LogForward, 1e-12)
    // volta: toco força crescer, 1 nó, 2 preditores, 1 corte no preditor 0
    assert.InDelta(t, -math.Log(2), s.LogBackward, 1e-12)
}

func TestChangeReplacesDecision(t *testing.T) {
    hp := params.Default()
    current := tree.NewStump(twoPredictorDataset(t))
    require.True(t, current.Split(tree.Decision{Predictor: 0, Threshold: 0}, 1))

    ctrl := gomock.NewController(t)
    src := mocks.NewMockSource(ctrl)
    gomock.InOrder(
        src.EXPECT().Float64().Return(0.0), // nó
        src.EXPECT().Float64().Return(0.9), // preditor 1
        src.EXPECT().Float64().Return(0.5), // corte 2 entre {1, 2, 3}
    )
    proposed := current.Clone()
    s := newWalker(t, hp, src).ChangeStep(current, proposed, hp.ProbChange())

    require.False(t, s.Rejected)
    assert.Equal(t, tree.Decision{Predictor: 1, Threshold: 2}, *proposed.Decision)
    assert.Equal(t, tree.Decision{Predictor: 0, Threshold: 0}, *current.Decision)
    assert.Equal(t, []int{0, 1}, proposed.Left.DataIndices)
    assert.NoError(t, tree.CheckPartition(proposed))

    logPc := math.Log(hp.ProbChange())
    assert.InDelta(t, logPc-math.Log(2)-math.Log(3), s.LogForward, 1e-12)
    assert.InDelta(t, logPc-math.Log(2), s.LogBackward, 1e-12)
}

func TestChangeRejectedLeavesTreeUntouched(t *testing.T) {
    hp := params.Default()
    current := tree.NewStump(twoPredictorDataset(t))
    require.True(t, current.Split(tree.Decision{Predictor: 0, Threshold: 0}, 1))
    hp.MinLeafSize = 2

    ctrl := gomock.NewController(t)
    src := mocks.NewMockSource(ctrl)
    gomock.InOrder(
        src.EXPECT().Float64().Return(0.0),
        src.EXPECT().Float64().Return(0.9),
        src.EXPECT().Float64().Return(0.0), // corte 1 deixa uma observação à esquerda
    )
    proposed := current.Clone()
    s := newWalker(t, hp, src).ChangeStep(current, proposed, hp.ProbChange())

    assert.True(t, s.Rejected)
    assert.True(t, tree.Equal(current, proposed))
}
