package proposal

import (
    "bartwalk/internal/rng"
    "bartwalk/internal/tree"
)

func SelectEditKind(src rng.Source, current *tree.Node, growModel, pruneModel ProbModel) EditKind {
    pg := growModel(current)
    pp := pruneModel(current)
    r := src.Float64()
    if r < pg { return Grow }
    if r < pg+pp { return Prune }
    return Change
}

// SelectGrowNode sorteia entre os terminais com pelo menos minObs observações.
// Devolve nil se não houver candidatos ou se o sorteado não tiver preditores disponíveis.
func SelectGrowNode(src rng.Source, root *tree.Node, minObs int) *tree.Node {
    nodes := root.TerminalsWithAtLeast(minObs)
    if len(nodes) == 0 { return nil }
    n := nodes[rng.Index(src, len(nodes))]
    if len(n.PredictorsAvailable) == 0 { return nil }
    return n
}

func SelectPruneOrChangeNode(src rng.Source, root *tree.Node) *tree.Node {
    if root.IsStump() { return nil }
    nodes := root.PrunableAndChangeable()
    if len(nodes) == 0 { return nil }
    return nodes[rng.Index(src, len(nodes))]
}
