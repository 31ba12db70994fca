package rng

import (
    "math"
    "math/rand/v2"

    "gonum.org/v1/gonum/stat/distuv"
)

//go:generate mockgen -destination=mocks/source_mock.go -package=mocks bartwalk/internal/rng Source

// Source é o único fluxo aleatório de uma cadeia. A ordem de consumo define a reprodutibilidade.
type Source interface {
    Float64() float64
    Poisson(mean float64) int
}

// Stream alimenta sorteios uniformes e de Poisson a partir do mesmo PCG.
type Stream struct {
    pcg *rand.PCG
    rnd *rand.Rand
}

func New(seed uint64) *Stream {
    pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
    return &Stream{pcg: pcg, rnd: rand.New(pcg)}
}

func (s *Stream) Float64() float64 { return s.rnd.Float64() }

func (s *Stream) Poisson(mean float64) int {
    if !(mean > 0) || math.IsInf(mean, 1) { return 0 }
    d := distuv.Poisson{Lambda: mean, Src: s.pcg}
    return int(d.Rand())
}

// Index sorteia uma posição em [0, n) como floor(u*n).
func Index(src Source, n int) int {
    if n <= 0 { return -1 }
    i := int(math.Floor(src.Float64() * float64(n)))
    if i >= n { i = n - 1 }
    if i < 0 { i = 0 }
    return i
}
