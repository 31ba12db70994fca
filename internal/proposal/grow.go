package proposal

import (
    "bartwalk/internal/tree"
)

// GrowStep transforma um terminal da árvore proposta em nó interno com dois filhos.
// current só é lido para a probabilidade de ida.
func (w *Walker) GrowStep(current, proposal *tree.Node, growModel, pruneModel ProbModel) Step {
    node := SelectGrowNode(w.src, proposal, w.params.MinGrowSize)
    if node == nil { return rejection(Grow, causeNoGrowNode) }

    predictor, ok := node.PickPredictor(w.src)
    if !ok { return rejection(Grow, causeNoPredictor) }
    threshold, ok := node.PickSplitValue(w.src, predictor)
    if !ok { return rejection(Grow, causeNoSplit) }

    if !node.Split(tree.Decision{Predictor: predictor, Threshold: threshold}, w.params.MinLeafSize) {
        return rejection(Grow, causeSmallLeaf)
    }
    return Step{
        Edit:        Grow,
        Node:        node,
        LogForward:  logGrowProbability(current, node, predictor, growModel, w.params.MinGrowSize),
        LogBackward: logPruneProbability(proposal, pruneModel),
    }
}
