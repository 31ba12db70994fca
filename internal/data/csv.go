package data

import (
    "encoding/csv"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strconv"
)

var ErrEmptyCSV = errors.New("CSV vazio")

func WriteCSV(path string, t *Table) error {
    if dir := filepath.Dir(path); dir != "." {
        if err := os.MkdirAll(dir, 0o755); err != nil { return err }
    }
    f, err := os.Create(path)
    if err != nil { return err }
    defer f.Close()

    w := csv.NewWriter(f)
    if err := w.Write(t.Names); err != nil { return err }
    rec := make([]string, len(t.Names))
    for i := range t.X {
        for j, v := range t.X[i] { rec[j] = strconv.FormatFloat(v, 'g', -1, 64) }
        rec[len(rec)-1] = strconv.FormatFloat(t.Y[i], 'g', -1, 64)
        if err := w.Write(rec); err != nil { return err }
    }
    w.Flush()
    return w.Error()
}

// LoadCSV lê um CSV com cabeçalho; a última coluna é a resposta.
func LoadCSV(path string) (*Table, error) {
    f, err := os.Open(path)
    if err != nil { return nil, err }
    defer f.Close()

    rows, err := csv.NewReader(f).ReadAll()
    if err != nil { return nil, err }
    if len(rows) < 2 || len(rows[0]) < 2 { return nil, ErrEmptyCSV }

    p := len(rows[0]) - 1
    t := &Table{Names: rows[0], X: make([][]float64, 0, len(rows)-1), Y: make([]float64, 0, len(rows)-1)}
    for i, row := range rows[1:] {
        vals := make([]float64, len(row))
        for j, s := range row {
            v, err := strconv.ParseFloat(s, 64)
            if err != nil { return nil, fmt.Errorf("linha %d coluna %q: %w", i+2, t.Names[j], err) }
            vals[j] = v
        }
        t.X = append(t.X, vals[:p:p])
        t.Y = append(t.Y, vals[p])
    }
    return t, nil
}
