package proposal

import (
    "math"

    "bartwalk/internal/params"
    "bartwalk/internal/tree"
)

// ProbModel devolve a probabilidade incondicional de tentar uma edição no estado dado.
type ProbModel func(t *tree.Node) float64

func GrowProbModel(hp params.Hyperparameters) ProbModel {
    return func(t *tree.Node) float64 {
        if t.IsStump() { return 1 }
        return hp.ProbGrow
    }
}

func PruneProbModel(hp params.Hyperparameters) ProbModel {
    return func(t *tree.Node) float64 {
        if t.IsStump() { return 0 }
        return hp.ProbPrune
    }
}

// logGrowProbability: escolher crescer em t, escolher n entre os terminais aptos,
// escolher o preditor e depois o valor de corte.
func logGrowProbability(t, n *tree.Node, predictor int, model ProbModel, minGrow int) float64 {
    growable := len(t.TerminalsWithAtLeast(minGrow))
    avail := len(n.PredictorsAvailable)
    splits := len(n.SplitValues(predictor))
    if growable == 0 || avail == 0 || splits == 0 { return math.Inf(-1) }
    return math.Log(model(t)) - math.Log(float64(growable)) - math.Log(float64(avail)) - math.Log(float64(splits))
}

func logPruneProbability(t *tree.Node, model ProbModel) float64 {
    prunable := len(t.PrunableAndChangeable())
    if prunable == 0 { return math.Inf(-1) }
    return math.Log(model(t)) - math.Log(float64(prunable))
}

// logChangeProbability usa a decisão que n carrega; para o sentido inverso n é a cópia anterior à troca.
func logChangeProbability(t, n *tree.Node, probChange float64) float64 {
    changeable := len(t.PrunableAndChangeable())
    if changeable == 0 || n.Decision == nil { return math.Inf(-1) }
    avail := len(n.PredictorsAvailable)
    splits := len(n.SplitValues(n.Decision.Predictor))
    if avail == 0 || splits == 0 { return math.Inf(-1) }
    return math.Log(probChange) - math.Log(float64(changeable)) - math.Log(float64(avail)) - math.Log(float64(splits))
}
