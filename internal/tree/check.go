package tree

import (
    "fmt"
    "slices"
    "sort"

    "go.uber.org/multierr"
)

// CheckPartition verifica a forma de cada nó e que as folhas particionam todas as observações.
func CheckPartition(root *Node) error {
    var err error
    if root.Depth != 0 { err = multierr.Append(err, fmt.Errorf("raiz com profundidade %d", root.Depth)) }
    root.walk(func(n *Node) { err = multierr.Append(err, checkNode(n)) })

    seen := make(map[int]bool, len(root.DataIndices))
    for _, leaf := range root.Terminals() {
        for _, i := range leaf.DataIndices {
            if seen[i] { err = multierr.Append(err, fmt.Errorf("observação %d em mais de uma folha", i)) }
            seen[i] = true
        }
    }
    nObs := root.data.NumObs()
    if len(seen) != nObs { err = multierr.Append(err, fmt.Errorf("folhas cobrem %d de %d observações", len(seen), nObs)) }
    for i := range seen {
        if i < 0 || i >= nObs { err = multierr.Append(err, fmt.Errorf("índice de observação %d fora do intervalo", i)) }
    }
    return err
}

func checkNode(n *Node) error {
    if n.IsTerminal {
        if n.Decision != nil || n.Left != nil || n.Right != nil {
            return fmt.Errorf("nó terminal com decisão ou filhos na profundidade %d", n.Depth)
        }
        return nil
    }
    if n.Decision == nil || n.Left == nil || n.Right == nil {
        return fmt.Errorf("nó interno incompleto na profundidade %d", n.Depth)
    }
    var err error
    if n.LeafValue != nil { err = multierr.Append(err, fmt.Errorf("nó interno com valor de folha na profundidade %d", n.Depth)) }
    if n.Left.Depth != n.Depth+1 || n.Right.Depth != n.Depth+1 {
        err = multierr.Append(err, fmt.Errorf("profundidade dos filhos inconsistente abaixo da profundidade %d", n.Depth))
    }
    union := append(slices.Clone(n.Left.DataIndices), n.Right.DataIndices...)
    sort.Ints(union)
    own := slices.Clone(n.DataIndices)
    sort.Ints(own)
    if !slices.Equal(own, union) {
        err = multierr.Append(err, fmt.Errorf("dados do nó na profundidade %d diferem da união dos filhos", n.Depth))
    }
    for _, i := range n.Left.DataIndices {
        if !n.Decision.GoesLeft(n.data.X[i]) { err = multierr.Append(err, fmt.Errorf("observação %d no filho esquerdo viola a decisão", i)) }
    }
    for _, i := range n.Right.DataIndices {
        if n.Decision.GoesLeft(n.data.X[i]) { err = multierr.Append(err, fmt.Errorf("observação %d no filho direito viola a decisão", i)) }
    }
    return err
}
