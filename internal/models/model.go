package models

import (
    "errors"
    "fmt"
    "strings"
)

//go:generate mockgen -source=model.go -destination=mock_model.go -package=models

var (
    ErrEmptyTrainingSet = errors.New("empty training set")
    ErrTooFewSamples    = errors.New("not enough samples to fit model")
    ErrNotFitted        = errors.New("model not fitted")
)

type Regressor interface {
    Fit(X [][]float64, y []float64) error
    Predict(X [][]float64) ([]float64, error)
    Name() string
}

const (
    AlgoOLS      = "ols"
    AlgoBoosting = "gbr"
)

// New builds an unfitted regressor for MODEL_ALGO; unknown names fall back to OLS.
func New(algo string) Regressor {
    switch strings.ToLower(strings.TrimSpace(algo)) {
    case AlgoBoosting:
        return NewGradientBoosting()
    default:
        return NewLinearRegression()
    }
}

func checkXY(X [][]float64, y []float64) (int, error) {
    if len(X) == 0 { return 0, ErrEmptyTrainingSet }
    if len(X) != len(y) { return 0, fmt.Errorf("got %d rows and %d targets", len(X), len(y)) }
    p := len(X[0])
    for i := range X {
        if len(X[i]) != p { return 0, fmt.Errorf("row %d has %d features, want %d", i, len(X[i]), p) }
    }
    return p, nil
}
