package data

import (
    "bartwalk/internal/tree"
)

// Table guarda os nomes das colunas, a matriz de preditores e as respostas (última coluna do CSV).
type Table struct {
    Names []string
    X     [][]float64
    Y     []float64
}

func (t *Table) Dataset() (*tree.Dataset, error) { return tree.NewDataset(t.X, t.Y) }
