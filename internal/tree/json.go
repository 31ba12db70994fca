package tree

import (
    json "github.com/goccy/go-json"
)

type nodeJSON struct {
    Terminal  bool      `json:"terminal"`
    Depth     int       `json:"depth"`
    N         int       `json:"n"`
    Predictor *int      `json:"predictor,omitempty"`
    Threshold *float64  `json:"threshold,omitempty"`
    Mean      *float64  `json:"mean,omitempty"`
    Left      *nodeJSON `json:"left,omitempty"`
    Right     *nodeJSON `json:"right,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) { return json.Marshal(n.toJSON()) }

func (n *Node) toJSON() *nodeJSON {
    if n == nil { return nil }
    out := &nodeJSON{Terminal: n.IsTerminal, Depth: n.Depth, N: len(n.DataIndices)}
    if n.IsTerminal {
        m := n.ResponseMean()
        if n.LeafValue != nil { m = *n.LeafValue }
        out.Mean = &m
        return out
    }
    p, t := n.Decision.Predictor, n.Decision.Threshold
    out.Predictor = &p
    out.Threshold = &t
    out.Left = n.Left.toJSON()
    out.Right = n.Right.toJSON()
    return out
}
