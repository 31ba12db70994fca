package proposal

import (
    "bartwalk/internal/tree"
)

// ChangeStep troca a decisão de um nó interno; a subárvore abaixo dele vira duas folhas novas.
func (w *Walker) ChangeStep(current, proposal *tree.Node, probChange float64) Step {
    node := SelectPruneOrChangeNode(w.src, proposal)
    if node == nil { return rejection(Change, causeNoInternal) }
    saved := node.Clone()

    predictor, ok := node.PickPredictor(w.src)
    if !ok { return rejection(Change, causeNoPredictor) }
    threshold, ok := node.PickSplitValue(w.src, predictor)
    if !ok { return rejection(Change, causeNoSplit) }

    // Split não altera o nó quando falha.
    if !node.Split(tree.Decision{Predictor: predictor, Threshold: threshold}, w.params.MinLeafSize) {
        return rejection(Change, causeSmallLeaf)
    }
    return Step{
        Edit:        Change,
        Node:        node,
        LogForward:  logChangeProbability(current, node, probChange),
        LogBackward: logChangeProbability(proposal, saved, probChange),
    }
}
