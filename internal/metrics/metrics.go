package metrics

import (
    "github.com/prometheus/client_golang/prometheus"
)

const (
    OutcomeProposed   = "proposed"
    OutcomeInfeasible = "infeasible"
)

// Recorder conta propostas por tipo de edição e resultado, e o tamanho dos passos múltiplos.
// Um *Recorder nil ignora todas as observações.
type Recorder struct {
    proposals *prometheus.CounterVec
    strides   prometheus.Histogram
}

func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
    r := &Recorder{
        proposals: prometheus.NewCounterVec(prometheus.CounterOpts{
            Namespace: "bartwalk",
            Name:      "proposals_total",
            Help:      "Propostas elementares por tipo de edição e resultado.",
        }, []string{"edit", "outcome"}),
        strides: prometheus.NewHistogram(prometheus.HistogramOpts{
            Namespace: "bartwalk",
            Name:      "stride",
            Help:      "Número de passos elementares sorteado por proposta composta.",
            Buckets:   prometheus.LinearBuckets(0, 1, 8),
        }),
    }
    if reg == nil { return r, nil }
    for _, c := range []prometheus.Collector{r.proposals, r.strides} {
        if err := reg.Register(c); err != nil { return nil, err }
    }
    return r, nil
}

func (r *Recorder) ObserveStep(edit string, infeasible bool) {
    if r == nil { return }
    outcome := OutcomeProposed
    if infeasible { outcome = OutcomeInfeasible }
    r.proposals.WithLabelValues(edit, outcome).Inc()
}

func (r *Recorder) ObserveStride(k int) {
    if r == nil { return }
    r.strides.Observe(float64(k))
}

func (r *Recorder) Proposals(edit, outcome string) prometheus.Counter {
    return r.proposals.WithLabelValues(edit, outcome)
}
