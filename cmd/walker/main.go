package main

import (
    "encoding/csv"
    "flag"
    "fmt"
    "math"
    "os"
    "path/filepath"
    "strconv"

    json "github.com/goccy/go-json"
    "github.com/prometheus/client_golang/prometheus"
    "go.uber.org/zap"
    "golang.org/x/sync/errgroup"
    "gonum.org/v1/plot"
    "gonum.org/v1/plot/plotter"
    "gonum.org/v1/plot/plotutil"
    "gonum.org/v1/plot/vg"

    "bartwalk/internal/data"
    "bartwalk/internal/metrics"
    "bartwalk/internal/params"
    "bartwalk/internal/proposal"
    "bartwalk/internal/rng"
    "bartwalk/internal/tree"
    "bartwalk/pkg/utils"
)

type chainStats struct {
    leaves   []int
    accepted map[proposal.EditKind]int
    declined int
    final    *tree.Node
}

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    regen := flag.Bool("regen", true, "Regenerar dataset sintético")
    n := flag.Int("n", 500, "Número de observações sintéticas")
    p := flag.Int("p", 8, "Número de preditores sintéticos")
    noise := flag.Float64("noise", 1.0, "Desvio padrão do ruído sintético")
    dataPath := flag.String("data", "data/synthetic.csv", "CSV de dados (última coluna é a resposta)")
    configPath := flag.String("config", "", "Arquivo de hiperparâmetros (.yaml ou .toml)")
    seed := flag.Uint64("seed", 42, "Semente do gerador")
    chains := flag.Int("chains", 4, "Número de cadeias independentes")
    iters := flag.Int("iters", 2000, "Iterações por cadeia")
    stride := flag.Float64("stride", -1, "Média do número de passos por proposta (negativo usa a configuração)")
    traceCsv := flag.String("trace_csv", "data/walk_trace.csv", "CSV com o número de folhas por iteração")
    traceImg := flag.String("trace_img", "data/walk_trace.png", "PNG do traço")
    dumpPath := flag.String("dump", "data/final_tree.json", "JSON da árvore final da primeira cadeia")
    flag.Parse()

    hp := params.Default()
    if *configPath != "" {
        loaded, err := params.Load(*configPath)
        if err != nil { logger.Fatal("Falha ao carregar configuração", zap.String("path", *configPath), zap.Error(err)) }
        hp = loaded
    }
    if *stride >= 0 { hp.StrideMean = *stride }
    if *chains < 1 || *iters < 1 { logger.Fatal("chains e iters devem ser positivos", zap.Int("chains", *chains), zap.Int("iters", *iters)) }
    if err := hp.Validate(); err != nil { logger.Fatal("Hiperparâmetros inválidos", zap.Error(err)) }

    if *regen {
        logger.Info("Gerando dataset sintético", zap.Int("n", *n), zap.Int("p", *p), zap.String("out", *dataPath))
        tbl, err := data.Synthetic(*n, *p, *noise, *seed)
        if err != nil { logger.Fatal("Falha ao gerar dataset", zap.Error(err)) }
        if err := data.WriteCSV(*dataPath, tbl); err != nil { logger.Fatal("Falha ao salvar dataset", zap.Error(err)) }
    }
    tbl, err := data.LoadCSV(*dataPath)
    if err != nil { logger.Fatal("Falha ao ler CSV", zap.Error(err)) }
    ds, err := tbl.Dataset()
    if err != nil { logger.Fatal("Dataset inválido", zap.Error(err)) }

    reg := prometheus.NewRegistry()
    recorder, err := metrics.NewRecorder(reg)
    if err != nil { logger.Fatal("Falha ao registrar métricas", zap.Error(err)) }

    logger.Info("Iniciando cadeias",
        zap.Int("chains", *chains),
        zap.Int("iters", *iters),
        zap.Float64("prob_grow", hp.ProbGrow),
        zap.Float64("prob_prune", hp.ProbPrune),
        zap.Float64("stride_mean", hp.StrideMean),
    )
    stats := make([]*chainStats, *chains)
    var g errgroup.Group
    for c := 0; c < *chains; c++ {
        g.Go(func() error {
            st, err := runChain(ds, hp, *seed+uint64(c)+1, *iters, recorder, logger.With(zap.Int("chain", c)))
            if err != nil { return fmt.Errorf("cadeia %d: %w", c, err) }
            stats[c] = st
            return nil
        })
    }
    if err := g.Wait(); err != nil { logger.Fatal("Falha na cadeia", zap.Error(err)) }

    for c, st := range stats {
        logger.Info("Resumo da cadeia",
            zap.Int("chain", c),
            zap.Int("aceitas_grow", st.accepted[proposal.Grow]),
            zap.Int("aceitas_prune", st.accepted[proposal.Prune]),
            zap.Int("aceitas_change", st.accepted[proposal.Change]),
            zap.Int("recusadas", st.declined),
            zap.Int("folhas_final", st.final.NumTerminals()),
            zap.Int("profundidade_final", st.final.MaxDepth()),
        )
    }
    logProposalCounters(logger, reg)

    if err := writeTraceCSV(*traceCsv, stats); err != nil {
        logger.Warn("Falha ao salvar CSV do traço", zap.Error(err))
    }
    if err := plotTracePNG(*traceImg, stats); err != nil {
        logger.Warn("Falha ao salvar PNG do traço", zap.Error(err))
    } else {
        logger.Info("Traço gerado", zap.String("png", *traceImg), zap.String("csv", *traceCsv))
    }
    if err := dumpTree(*dumpPath, stats[0].final); err != nil {
        logger.Warn("Falha ao salvar árvore final", zap.Error(err))
    }
}

// runChain aceita com a razão só das propostas (log u <= log_bwd - log_fwd); verossimilhança e priori ficam de fora.
func runChain(ds *tree.Dataset, hp params.Hyperparameters, seed uint64, iters int, recorder *metrics.Recorder, logger *zap.Logger) (*chainStats, error) {
    src := rng.New(seed)
    w, err := proposal.NewWalker(hp, src, proposal.WithLogger(logger), proposal.WithRecorder(recorder))
    if err != nil { return nil, err }

    st := &chainStats{leaves: make([]int, iters), accepted: map[proposal.EditKind]int{}}
    cur := tree.NewStump(ds)
    for it := 0; it < iters; it++ {
        res := w.MultiStep(cur)
        if !res.Rejected() && math.Log(src.Float64()) <= res.LogBackward-res.LogForward {
            cur = res.Tree
            for _, e := range res.Edits() { st.accepted[e]++ }
        } else {
            st.declined++
        }
        if err := tree.CheckPartition(cur); err != nil { return nil, fmt.Errorf("iteração %d: %w", it, err) }
        st.leaves[it] = cur.NumTerminals()
    }
    for _, leaf := range cur.Terminals() { leaf.SetLeafValue(leaf.ResponseMean()) }
    st.final = cur
    return st, nil
}

func logProposalCounters(logger *zap.Logger, reg *prometheus.Registry) {
    mfs, err := reg.Gather()
    if err != nil {
        logger.Warn("Falha ao coletar métricas", zap.Error(err))
        return
    }
    for _, mf := range mfs {
        for _, m := range mf.GetMetric() {
            fields := []zap.Field{zap.String("metric", mf.GetName())}
            for _, lp := range m.GetLabel() { fields = append(fields, zap.String(lp.GetName(), lp.GetValue())) }
            if c := m.GetCounter(); c != nil { fields = append(fields, zap.Float64("value", c.GetValue())) }
            if h := m.GetHistogram(); h != nil {
                fields = append(fields, zap.Uint64("count", h.GetSampleCount()), zap.Float64("sum", h.GetSampleSum()))
            }
            logger.Info("Métrica", fields...)
        }
    }
}

func writeTraceCSV(path string, stats []*chainStats) error {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
    f, err := os.Create(path)
    if err != nil { return err }
    defer f.Close()
    w := csv.NewWriter(f)
    defer w.Flush()
    header := []string{"iter"}
    for c := range stats { header = append(header, "chain_"+strconv.Itoa(c)) }
    if err := w.Write(header); err != nil { return err }
    for it := range stats[0].leaves {
        rec := []string{strconv.Itoa(it)}
        for _, st := range stats { rec = append(rec, strconv.Itoa(st.leaves[it])) }
        if err := w.Write(rec); err != nil { return err }
    }
    return nil
}

func plotTracePNG(path string, stats []*chainStats) error {
    p := plot.New()
    p.Title.Text = "Folhas por iteração"
    p.X.Label.Text = "Iteração"
    p.Y.Label.Text = "Folhas"

    lines := make([]interface{}, 0, 2*len(stats))
    for c, st := range stats {
        pts := make(plotter.XYs, len(st.leaves))
        for i, v := range st.leaves { pts[i].X = float64(i); pts[i].Y = float64(v) }
        lines = append(lines, "Cadeia "+strconv.Itoa(c), pts)
    }
    if err := plotutil.AddLines(p, lines...); err != nil { return err }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
    return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func dumpTree(path string, root *tree.Node) error {
    b, err := json.MarshalIndent(root, "", "  ")
    if err != nil { return err }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
    return os.WriteFile(path, b, 0o644)
}
