package models

import (
    "math"
    "sort"
)

type gbStump struct {
    Feature   int
    Threshold float64
    LeftVal   float64
    RightVal  float64
}

// GradientBoosting fits squared-error boosted stumps. Offered as MODEL_ALGO=gbr next to OLS.
type GradientBoosting struct {
    NEstimators        int
    LearningRate       float64
    MinSamples         int
    MaxThresholdsPerFe int
    Base               float64
    Stumps             []gbStump
    fitted             bool
}

func NewGradientBoosting() *GradientBoosting {
    return &GradientBoosting{NEstimators: 100, LearningRate: 0.1, MinSamples: 5, MaxThresholdsPerFe: 32}
}

func (gb *GradientBoosting) Name() string { return "GradientBoosting" }

func (gb *GradientBoosting) Fit(X [][]float64, y []float64) error {
    if _, err := checkXY(X, y); err != nil { return err }
    n := len(X)
    if gb.NEstimators <= 0 { gb.NEstimators = 100 }
    if gb.MinSamples <= 0 { gb.MinSamples = 1 }

    sum := 0.0
    for _, v := range y { sum += v }
    gb.Base = sum / float64(n)
    F := make([]float64, n)
    for i := range F { F[i] = gb.Base }

    gb.Stumps = gb.Stumps[:0]
    nFeats := len(X[0])
    r := make([]float64, n)
    for m := 0; m < gb.NEstimators; m++ {
        for i := 0; i < n; i++ { r[i] = y[i] - F[i] }

        best := gbStump{Feature: -1}
        bestSSE := math.MaxFloat64
        for j := 0; j < nFeats; j++ {
            for _, thr := range gbCandidateThresholds(X, j, gb.MaxThresholdsPerFe) {
                leftSum, leftCount, rightSum, rightCount := 0.0, 0, 0.0, 0
                for i := 0; i < n; i++ {
                    if X[i][j] <= thr { leftSum += r[i]; leftCount++ } else { rightSum += r[i]; rightCount++ }
                }
                if leftCount < gb.MinSamples || rightCount < gb.MinSamples { continue }
                leftAvg := leftSum / float64(leftCount)
                rightAvg := rightSum / float64(rightCount)

                sse := 0.0
                for i := 0; i < n; i++ {
                    d := r[i] - rightAvg
                    if X[i][j] <= thr { d = r[i] - leftAvg }
                    sse += d * d
                }
                if sse < bestSSE {
                    bestSSE = sse
                    best = gbStump{Feature: j, Threshold: thr, LeftVal: leftAvg, RightVal: rightAvg}
                }
            }
        }
        if best.Feature == -1 { break }
        gb.Stumps = append(gb.Stumps, best)
        for i := 0; i < n; i++ { F[i] += gb.LearningRate * best.value(X[i]) }
    }
    gb.fitted = true
    return nil
}

func (gb *GradientBoosting) Predict(X [][]float64) ([]float64, error) {
    if !gb.fitted { return nil, ErrNotFitted }
    out := make([]float64, len(X))
    for i := range X {
        f := gb.Base
        for _, s := range gb.Stumps { f += gb.LearningRate * s.value(X[i]) }
        out[i] = f
    }
    return out, nil
}

func (s gbStump) value(x []float64) float64 {
    if x[s.Feature] <= s.Threshold { return s.LeftVal }
    return s.RightVal
}

func gbCandidateThresholds(X [][]float64, j int, nCand int) []float64 {
    if nCand <= 0 { nCand = 16 }
    n := len(X)
    vals := make([]float64, n)
    for i := 0; i < n; i++ { vals[i] = X[i][j] }
    sort.Float64s(vals)
    out := make([]float64, 0, nCand)
    for k := 1; k < nCand; k++ {
        idx := int(math.Round(float64(k) / float64(nCand) * float64(n-1)))
        if idx <= 0 || idx >= n { continue }
        thr := vals[idx]
        if len(out) == 0 || thr != out[len(out)-1] {
            out = append(out, thr)
        }
    }
    return out
}
