package params

import (
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/goccy/go-yaml"
    "github.com/pelletier/go-toml/v2"
    "go.uber.org/multierr"
)

// Hyperparameters das propostas. A probabilidade de troca é o complemento de ProbGrow + ProbPrune.
type Hyperparameters struct {
    ProbGrow    float64 `yaml:"prob_grow" toml:"prob_grow" validate:"gte=0,lte=1"`
    ProbPrune   float64 `yaml:"prob_prune" toml:"prob_prune" validate:"gte=0,lte=1"`
    MinLeafSize int     `yaml:"min_leaf_size" toml:"min_leaf_size" validate:"gte=1"`
    MinGrowSize int     `yaml:"min_grow_size" toml:"min_grow_size" validate:"gte=2"`
    StrideMean  float64 `yaml:"stride_mean" toml:"stride_mean" validate:"gte=0"`
}

var ErrUnknownFormat = errors.New("formato de configuração desconhecido (use .yaml, .yml ou .toml)")

var validate = validator.New(validator.WithRequiredStructEnabled())

func Default() Hyperparameters {
    return Hyperparameters{ProbGrow: 0.28, ProbPrune: 0.28, MinLeafSize: 1, MinGrowSize: 2, StrideMean: 1}
}

func (h Hyperparameters) ProbChange() float64 { return 1 - h.ProbGrow - h.ProbPrune }

func (h Hyperparameters) Validate() error {
    var err error
    if verr := validate.Struct(h); verr != nil {
        var ves validator.ValidationErrors
        if errors.As(verr, &ves) {
            for _, fe := range ves {
                err = multierr.Append(err, fmt.Errorf("%s: regra %q violada (valor %v)", fe.Field(), fe.ActualTag(), fe.Value()))
            }
        } else {
            err = multierr.Append(err, verr)
        }
    }
    if h.ProbGrow+h.ProbPrune > 1 {
        err = multierr.Append(err, fmt.Errorf("prob_grow + prob_prune = %g excede 1", h.ProbGrow+h.ProbPrune))
    }
    return err
}

// Load lê hiperparâmetros de um arquivo YAML ou TOML; chaves ausentes mantêm os valores padrão.
func Load(path string) (Hyperparameters, error) {
    b, err := os.ReadFile(path)
    if err != nil { return Hyperparameters{}, err }
    return Parse(b, filepath.Ext(path))
}

func Parse(b []byte, ext string) (Hyperparameters, error) {
    h := Default()
    var err error
    switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
    case "yaml", "yml":
        err = yaml.Unmarshal(b, &h)
    case "toml":
        err = toml.Unmarshal(b, &h)
    default:
        return Hyperparameters{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
    }
    if err != nil { return Hyperparameters{}, fmt.Errorf("falha ao ler configuração: %w", err) }
    if err := h.Validate(); err != nil { return Hyperparameters{}, err }
    return h, nil
}
