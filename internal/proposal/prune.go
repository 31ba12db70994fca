package proposal

import (
    "bartwalk/internal/tree"
)

func (w *Walker) PruneStep(current, proposal *tree.Node, growModel, pruneModel ProbModel) Step {
    node := SelectPruneOrChangeNode(w.src, proposal)
    if node == nil { return rejection(Prune, causeNoInternal) }
    saved := node.Clone()

    if !node.Collapse() {
        node.Assign(saved)
        return rejection(Prune, causeEmptyCollapse)
    }
    return Step{
        Edit:        Prune,
        Node:        node,
        LogForward:  logPruneProbability(current, pruneModel),
        LogBackward: logGrowProbability(proposal, saved, saved.Decision.Predictor, growModel, w.params.MinGrowSize),
    }
}
