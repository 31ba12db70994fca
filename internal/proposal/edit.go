package proposal

import (
    "math"

    "bartwalk/internal/tree"
)

type EditKind int

const (
    Grow EditKind = iota
    Prune
    Change
)

func (k EditKind) String() string {
    switch k {
    case Grow:
        return "grow"
    case Prune:
        return "prune"
    case Change:
        return "change"
    }
    return "unknown"
}

// Step é o resultado de uma edição elementar. Node aponta para o nó editado na árvore proposta.
type Step struct {
    Edit        EditKind
    Node        *tree.Node
    LogForward  float64
    LogBackward float64
    Rejected    bool
    Cause       string
}

func rejection(kind EditKind, cause string) Step {
    return Step{Edit: kind, LogForward: math.Inf(-1), LogBackward: math.Inf(-1), Rejected: true, Cause: cause}
}

const (
    causeNoGrowNode    = "nenhum nó terminal apto a crescer"
    causeNoPredictor   = "nenhum preditor disponível no nó"
    causeNoSplit       = "nenhum valor de corte válido"
    causeSmallLeaf     = "partição deixa folha abaixo do mínimo"
    causeNoInternal    = "nenhum nó interno para podar ou trocar"
    causeEmptyCollapse = "poda sem observações"
)
