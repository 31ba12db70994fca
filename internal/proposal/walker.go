package proposal

import (
    "errors"
    "math"

    "go.uber.org/zap"

    "bartwalk/internal/metrics"
    "bartwalk/internal/params"
    "bartwalk/internal/rng"
    "bartwalk/internal/tree"
)

var ErrNilSource = errors.New("fonte aleatória nula")

// Walker compõe edições elementares em propostas. Pertence a uma única cadeia:
// a árvore e o fluxo aleatório não podem ser compartilhados entre goroutines.
type Walker struct {
    params   params.Hyperparameters
    src      rng.Source
    logger   *zap.Logger
    recorder *metrics.Recorder
}

type Option func(*Walker)

func WithLogger(l *zap.Logger) Option {
    return func(w *Walker) { if l != nil { w.logger = l } }
}

func WithRecorder(r *metrics.Recorder) Option {
    return func(w *Walker) { w.recorder = r }
}

func NewWalker(hp params.Hyperparameters, src rng.Source, opts ...Option) (*Walker, error) {
    if src == nil { return nil, ErrNilSource }
    if err := hp.Validate(); err != nil { return nil, err }
    w := &Walker{params: hp, src: src, logger: zap.NewNop()}
    for _, o := range opts { o(w) }
    return w, nil
}

func (w *Walker) Params() params.Hyperparameters { return w.params }

// Result é a árvore proposta com a soma dos logaritmos das probabilidades de ida e de volta.
// Uma proposta inviável tem (-Inf, -Inf); zero passos dão (0, 0).
type Result struct {
    Tree        *tree.Node
    LogForward  float64
    LogBackward float64
    Steps       []Step
}

func (r Result) LogProbs() [2]float64 { return [2]float64{r.LogForward, r.LogBackward} }

func (r Result) Rejected() bool { return math.IsInf(r.LogForward, -1) || math.IsInf(r.LogBackward, -1) }

func (r Result) Edits() []EditKind {
    out := make([]EditKind, len(r.Steps))
    for i, s := range r.Steps { out[i] = s.Edit }
    return out
}

// OneStep sorteia o tipo de edição contra current e aplica-o em proposal, que é alterada no lugar.
func (w *Walker) OneStep(current, proposal *tree.Node) Result {
    growModel := GrowProbModel(w.params)
    pruneModel := PruneProbModel(w.params)
    probChange := 1 - growModel(current) - pruneModel(current)

    var step Step
    switch kind := SelectEditKind(w.src, current, growModel, pruneModel); kind {
    case Grow:
        step = w.GrowStep(current, proposal, growModel, pruneModel)
    case Prune:
        step = w.PruneStep(current, proposal, growModel, pruneModel)
    case Change:
        step = w.ChangeStep(current, proposal, probChange)
    }
    w.observe(step)
    return Result{Tree: proposal, LogForward: step.LogForward, LogBackward: step.LogBackward, Steps: []Step{step}}
}

func (w *Walker) MultiStep(current *tree.Node) Result {
    return w.MultiStepMean(current, w.params.StrideMean)
}

// MultiStepMean sorteia k ~ Poisson(mean) e encadeia k passos, cada um sobre uma cópia do anterior.
// current nunca é alterado.
func (w *Walker) MultiStepMean(current *tree.Node, mean float64) Result {
    k := w.src.Poisson(mean)
    w.recorder.ObserveStride(k)

    working := current.Clone()
    res := Result{Steps: make([]Step, 0, k)}
    for i := 0; i < k; i++ {
        one := w.OneStep(working, working.Clone())
        working = one.Tree
        res.LogForward += one.LogForward
        res.LogBackward += one.LogBackward
        res.Steps = append(res.Steps, one.Steps...)
    }
    res.Tree = working
    w.logger.Debug("passo múltiplo",
        zap.Int("stride", k),
        zap.Float64("log_forward", res.LogForward),
        zap.Float64("log_backward", res.LogBackward),
        zap.Int("folhas", working.NumTerminals()),
    )
    return res
}

func (w *Walker) observe(s Step) {
    w.recorder.ObserveStep(s.Edit.String(), s.Rejected)
    if s.Rejected {
        w.logger.Debug("proposta inviável", zap.Stringer("edit", s.Edit), zap.String("causa", s.Cause))
        return
    }
    w.logger.Debug("proposta",
        zap.Stringer("edit", s.Edit),
        zap.Int("profundidade", s.Node.Depth),
        zap.Float64("log_forward", s.LogForward),
        zap.Float64("log_backward", s.LogBackward),
    )
}
