package tree

import (
    "slices"
    "sort"

    "gonum.org/v1/gonum/floats"
    "gonum.org/v1/gonum/stat"

    "bartwalk/internal/rng"
)

type Decision struct {
    Predictor int
    Threshold float64
}

func (d Decision) GoesLeft(row []float64) bool { return row[d.Predictor] <= d.Threshold }

// Node é terminal (sem decisão e sem filhos) ou interno (decisão e dois filhos).
// Um nó interno mantém em DataIndices a união dos índices dos filhos.
type Node struct {
    IsTerminal          bool
    Decision            *Decision
    Left                *Node
    Right               *Node
    DataIndices         []int
    Depth               int
    PredictorsAvailable []int
    LeafValue           *float64

    data *Dataset
}

func NewStump(ds *Dataset) *Node {
    idx := make([]int, ds.NumObs())
    for i := range idx { idx[i] = i }
    return &Node{
        IsTerminal:          true,
        DataIndices:         idx,
        PredictorsAvailable: ds.predictorsWithSplits(idx),
        data:                ds,
    }
}

func newChild(parent *Node, idx []int) *Node {
    return &Node{
        IsTerminal:          true,
        DataIndices:         idx,
        Depth:               parent.Depth + 1,
        PredictorsAvailable: parent.data.predictorsWithSplits(idx),
        data:                parent.data,
    }
}

func (n *Node) Dataset() *Dataset { return n.data }

func (n *Node) IsStump() bool { return n.IsTerminal }

func (n *Node) NumObs() int { return len(n.DataIndices) }

func (n *Node) Clone() *Node {
    if n == nil { return nil }
    c := &Node{
        IsTerminal:          n.IsTerminal,
        DataIndices:         slices.Clone(n.DataIndices),
        Depth:               n.Depth,
        PredictorsAvailable: slices.Clone(n.PredictorsAvailable),
        data:                n.data,
    }
    if n.Decision != nil {
        d := *n.Decision
        c.Decision = &d
    }
    if n.LeafValue != nil {
        v := *n.LeafValue
        c.LeafValue = &v
    }
    c.Left = n.Left.Clone()
    c.Right = n.Right.Clone()
    return c
}

// Assign sobrescreve n, no lugar, com uma cópia profunda de src. Quem aponta para n continua válido.
func (n *Node) Assign(src *Node) { *n = *src.Clone() }

func (n *Node) walk(fn func(*Node)) {
    if n == nil { return }
    fn(n)
    n.Left.walk(fn)
    n.Right.walk(fn)
}

func (n *Node) Terminals() []*Node { return n.TerminalsWithAtLeast(0) }

func (n *Node) TerminalsWithAtLeast(minObs int) []*Node {
    out := []*Node{}
    n.walk(func(c *Node) {
        if c.IsTerminal && len(c.DataIndices) >= minObs { out = append(out, c) }
    })
    return out
}

// PrunableAndChangeable devolve todos os nós internos em pré-ordem; o mesmo conjunto serve para poda e troca.
func (n *Node) PrunableAndChangeable() []*Node {
    out := []*Node{}
    n.walk(func(c *Node) {
        if !c.IsTerminal { out = append(out, c) }
    })
    return out
}

func (n *Node) NumTerminals() int { return len(n.Terminals()) }

func (n *Node) MaxDepth() int {
    d := 0
    n.walk(func(c *Node) { if c.Depth > d { d = c.Depth } })
    return d
}

// SplitValues devolve os valores distintos (ordenados) do preditor nos dados do nó, sem o máximo:
// um limiar igual ao máximo deixaria o filho direito vazio.
func (n *Node) SplitValues(predictor int) []float64 {
    if len(n.DataIndices) == 0 { return nil }
    vals := make([]float64, len(n.DataIndices))
    for j, i := range n.DataIndices { vals[j] = n.data.X[i][predictor] }
    sort.Float64s(vals)
    vals = slices.Compact(vals)
    return vals[:len(vals)-1]
}

func (n *Node) PickPredictor(src rng.Source) (int, bool) {
    if len(n.PredictorsAvailable) == 0 { return -1, false }
    return n.PredictorsAvailable[rng.Index(src, len(n.PredictorsAvailable))], true
}

func (n *Node) PickSplitValue(src rng.Source, predictor int) (float64, bool) {
    vals := n.SplitValues(predictor)
    if len(vals) == 0 { return 0, false }
    return vals[rng.Index(src, len(vals))], true
}

// Split instala dec em n com dois filhos terminais novos e reparte os dados.
// Se algum filho ficar com menos de minLeaf observações, n não é alterado e devolve false.
func (n *Node) Split(dec Decision, minLeaf int) bool {
    if minLeaf < 1 { minLeaf = 1 }
    l, r := splitIdx(n.data.X, n.DataIndices, dec)
    if len(l) < minLeaf || len(r) < minLeaf { return false }
    n.IsTerminal = false
    n.Decision = &dec
    n.LeafValue = nil
    n.Left = newChild(n, l)
    n.Right = newChild(n, r)
    return true
}

// Collapse descarta decisão e filhos de n; os dados passam a ser a união dos dados das folhas abaixo.
func (n *Node) Collapse() bool {
    if n.IsTerminal { return false }
    idx := []int{}
    for _, leaf := range n.Terminals() { idx = append(idx, leaf.DataIndices...) }
    if len(idx) == 0 { return false }
    sort.Ints(idx)
    n.IsTerminal = true
    n.Decision = nil
    n.Left = nil
    n.Right = nil
    n.LeafValue = nil
    n.DataIndices = idx
    n.PredictorsAvailable = n.data.predictorsWithSplits(idx)
    return true
}

func splitIdx(X [][]float64, idx []int, dec Decision) ([]int, []int) {
    l := make([]int, 0, len(idx))
    r := make([]int, 0, len(idx))
    for _, i := range idx {
        if dec.GoesLeft(X[i]) { l = append(l, i) } else { r = append(r, i) }
    }
    return l, r
}

func (n *Node) Responses() []float64 {
    out := make([]float64, len(n.DataIndices))
    for j, i := range n.DataIndices { out[j] = n.data.Y[i] }
    return out
}

func (n *Node) ResponseMean() float64 {
    if len(n.DataIndices) == 0 { return 0 }
    return stat.Mean(n.Responses(), nil)
}

// SSE é a soma dos quadrados dos desvios das respostas em torno da média do nó.
func (n *Node) SSE() float64 {
    ys := n.Responses()
    if len(ys) == 0 { return 0 }
    floats.AddConst(-stat.Mean(ys, nil), ys)
    return floats.Dot(ys, ys)
}

func (n *Node) SetLeafValue(v float64) {
    if !n.IsTerminal { return }
    n.LeafValue = &v
}

func Equal(a, b *Node) bool {
    if a == nil || b == nil { return a == b }
    if a.IsTerminal != b.IsTerminal || a.Depth != b.Depth { return false }
    if !slices.Equal(a.DataIndices, b.DataIndices) { return false }
    if (a.Decision == nil) != (b.Decision == nil) { return false }
    if a.Decision != nil && *a.Decision != *b.Decision { return false }
    return Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
}
