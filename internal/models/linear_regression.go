package models

import (
    "errors"
    "fmt"
    "math"

    "gonum.org/v1/gonum/mat"
    "gonum.org/v1/gonum/stat"
)

// ErrIllConditioned is returned when the SVD does not converge.
var ErrIllConditioned = errors.New("design matrix is ill-conditioned")

// epsilon is float64 machine epsilon; singular values below epsilon*max(n, p) of the largest count as zero.
const epsilon = 0x1p-52

// LinearRegression is ordinary least squares with an intercept.
// Features are centered and solved by SVD, so a rank-deficient design (a constant or collinear feature)
// gets the minimum-norm solution and a feature that carries no information gets a zero coefficient.
type LinearRegression struct {
    Intercept float64
    Coef      []float64
    R2        float64
    fitted    bool
}

func NewLinearRegression() *LinearRegression { return &LinearRegression{} }

func (lr *LinearRegression) Name() string { return "LinearRegression" }

func (lr *LinearRegression) Fit(X [][]float64, y []float64) error {
    p, err := checkXY(X, y)
    if err != nil { return err }
    n := len(X)
    if n < p+1 { return fmt.Errorf("%w: %d rows for %d parameters", ErrTooFewSamples, n, p+1) }

    means := make([]float64, p)
    col := make([]float64, n)
    for j := range means {
        // shifted by the first value so a constant column centers to exact zeros
        shift := X[0][j]
        for i := range X { col[i] = X[i][j] - shift }
        means[j] = shift + stat.Mean(col, nil)
    }
    ym := stat.Mean(y, nil)

    c := mat.NewDense(n, p, nil)
    yc := mat.NewVecDense(n, nil)
    for i, row := range X {
        for j, v := range row { c.Set(i, j, v-means[j]) }
        yc.SetVec(i, y[i]-ym)
    }

    var svd mat.SVD
    if !svd.Factorize(c, mat.SVDThin) { return fmt.Errorf("%w: svd did not converge", ErrIllConditioned) }
    coef := make([]float64, p)
    if rank := svd.Rank(epsilon * float64(max(n, p))); rank > 0 {
        var beta mat.VecDense
        svd.SolveVecTo(&beta, yc, rank)
        for j := range coef { coef[j] = beta.AtVec(j) }
    }

    lr.Coef = coef
    lr.Intercept = ym
    for j, m := range means { lr.Intercept -= coef[j] * m }
    lr.R2 = 0
    lr.fitted = true

    pred, _ := lr.Predict(X)
    if r2 := stat.RSquaredFrom(pred, y, nil); !math.IsNaN(r2) && !math.IsInf(r2, 0) { lr.R2 = r2 }
    return nil
}

func (lr *LinearRegression) Predict(X [][]float64) ([]float64, error) {
    if !lr.fitted { return nil, ErrNotFitted }
    out := make([]float64, len(X))
    for i, row := range X {
        if len(row) != len(lr.Coef) { return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), len(lr.Coef)) }
        v := lr.Intercept
        for j, x := range row { v += lr.Coef[j] * x }
        out[i] = v
    }
    return out, nil
}
