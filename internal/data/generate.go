package data

import (
    "errors"
    "math"
    "math/rand/v2"
    "strconv"

    "gonum.org/v1/gonum/stat/distuv"
)

var ErrTooFewPredictors = errors.New("são necessários pelo menos 5 preditores")

// Synthetic gera dados de regressão no estilo Friedman #1. As colunas além da quinta são ruído:
// uma binária, uma com poucos níveis e, se houver espaço, uma constante.
func Synthetic(n, predictors int, noise float64, seed uint64) (*Table, error) {
    if predictors < 5 { return nil, ErrTooFewPredictors }
    pcg := rand.NewPCG(seed, seed+1)
    unif := distuv.Uniform{Min: 0, Max: 1, Src: pcg}
    eps := distuv.Normal{Mu: 0, Sigma: noise, Src: pcg}

    names := make([]string, 0, predictors+1)
    for j := 0; j < predictors; j++ { names = append(names, "x"+strconv.Itoa(j)) }
    names = append(names, "y")

    X := make([][]float64, n)
    y := make([]float64, n)
    for i := 0; i < n; i++ {
        row := make([]float64, predictors)
        for j := 0; j < 5; j++ { row[j] = unif.Rand() }
        for j := 5; j < predictors; j++ {
            switch (j - 5) % 3 {
            case 0:
                if unif.Rand() < 0.5 { row[j] = 1 }
            case 1:
                row[j] = math.Floor(unif.Rand() * 4)
            default:
                row[j] = 7
            }
        }
        X[i] = row
        y[i] = 10*math.Sin(math.Pi*row[0]*row[1]) + 20*(row[2]-0.5)*(row[2]-0.5) + 10*row[3] + 5*row[4]
        if noise > 0 { y[i] += eps.Rand() }
    }
    return &Table{Names: names, X: X, Y: y}, nil
}
