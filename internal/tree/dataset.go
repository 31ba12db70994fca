package tree

import (
    "errors"
    "fmt"
    "math"
)

var (
    ErrEmptyDataset   = errors.New("dataset vazio")
    ErrLengthMismatch = errors.New("número de linhas difere do tamanho do vetor de respostas")
)

// Dataset é a matriz de preditores (linha por observação) e o vetor de respostas.
// Depois de construído não é alterado, por isso é compartilhado por todas as cópias da árvore.
type Dataset struct {
    X [][]float64
    Y []float64
}

func NewDataset(X [][]float64, y []float64) (*Dataset, error) {
    if len(X) == 0 || len(X[0]) == 0 { return nil, ErrEmptyDataset }
    if len(X) != len(y) { return nil, fmt.Errorf("%w: %d linhas, %d respostas", ErrLengthMismatch, len(X), len(y)) }
    p := len(X[0])
    for i, row := range X {
        if len(row) != p { return nil, fmt.Errorf("linha %d tem %d colunas, esperado %d", i, len(row), p) }
        for j, v := range row {
            if math.IsNaN(v) || math.IsInf(v, 0) { return nil, fmt.Errorf("valor não finito na linha %d coluna %d", i, j) }
        }
        if math.IsNaN(y[i]) || math.IsInf(y[i], 0) { return nil, fmt.Errorf("resposta não finita na linha %d", i) }
    }
    return &Dataset{X: X, Y: y}, nil
}

func (ds *Dataset) NumObs() int { return len(ds.X) }

func (ds *Dataset) NumPredictors() int {
    if len(ds.X) == 0 { return 0 }
    return len(ds.X[0])
}

// predictorsWithSplits devolve os preditores com pelo menos dois valores distintos em idx.
func (ds *Dataset) predictorsWithSplits(idx []int) []int {
    out := []int{}
    if len(idx) < 2 { return out }
    for f := 0; f < ds.NumPredictors(); f++ {
        first := ds.X[idx[0]][f]
        for _, i := range idx[1:] {
            if ds.X[i][f] != first {
                out = append(out, f)
                break
            }
        }
    }
    return out
}
