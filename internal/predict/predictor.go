package predict

import (
    "errors"
    "fmt"
    "math"
    "time"

    "github.com/patrickmn/go-cache"
    "go.uber.org/zap"

    "studentscore/internal/data"
    "studentscore/internal/features"
    "studentscore/internal/models"
)

// PassThreshold is the fixed pass mark for a predicted final score.
const PassThreshold = 60.0

var (
    ErrEmptyDataset     = errors.New("no data available to train the model")
    ErrInsufficientData = errors.New("not enough complete rows to train the model")
)

type Input struct {
    StudyHours float64 `json:"weekly_study_hours"`
    Attendance float64 `json:"attendance_rate"`
    Midterm    float64 `json:"midterm_score"`
}

type Result struct {
    Score        float64            `json:"predicted_final_score"`
    Passed       bool               `json:"passed"`
    Model        string             `json:"model"`
    TrainingRows int                `json:"training_rows"`
    DroppedRows  int                `json:"dropped_rows"`
    Coefficients map[string]float64 `json:"coefficients,omitempty"`
    Intercept    float64            `json:"intercept"`
    R2           float64            `json:"r2"`
    Cached       bool               `json:"cached"`
}

// Rounded is the score as displayed, two decimals.
func (r Result) Rounded() float64 { return math.Round(r.Score*100) / 100 }

func Passed(score float64) bool { return score >= PassThreshold }

type Option func(*Predictor)

// WithMemo keeps fitted models per table fingerprint for ttl.
func WithMemo(ttl time.Duration) Option {
    return func(p *Predictor) { p.memo = cache.New(ttl, 2*ttl) }
}

func WithLogger(l *zap.Logger) Option { return func(p *Predictor) { p.logger = l } }

// Predictor trains a fresh model for every call unless memoization is on.
type Predictor struct {
    newModel func() models.Regressor
    memo     *cache.Cache
    logger   *zap.Logger
}

func New(newModel func() models.Regressor, opts ...Option) *Predictor {
    p := &Predictor{newModel: newModel, logger: zap.NewNop()}
    for _, o := range opts { o(p) }
    return p
}

type fitted struct {
    model   models.Regressor
    rows    int
    dropped int
}

func (p *Predictor) Predict(t *data.Table, in Input) (Result, error) {
    if t.Empty() { return Result{}, ErrEmptyDataset }

    f, cached, err := p.train(t)
    if err != nil { return Result{}, err }

    out, err := f.model.Predict([][]float64{features.Vector(in.StudyHours, in.Attendance, in.Midterm)})
    if err != nil { return Result{}, fmt.Errorf("predict: %w", err) }
    if len(out) != 1 { return Result{}, fmt.Errorf("predict: got %d outputs for 1 input", len(out)) }

    res := Result{
        Score:        out[0],
        Passed:       Passed(out[0]),
        Model:        f.model.Name(),
        TrainingRows: f.rows,
        DroppedRows:  f.dropped,
        Cached:       cached,
    }
    if lr, ok := f.model.(*models.LinearRegression); ok {
        res.Intercept = lr.Intercept
        res.R2 = lr.R2
        res.Coefficients = map[string]float64{}
        for i, name := range features.Names() { res.Coefficients[name] = lr.Coef[i] }
    }
    p.logger.Info("prediction",
        zap.String("model", res.Model),
        zap.Float64("score", res.Score),
        zap.Bool("passed", res.Passed),
        zap.Int("training_rows", res.TrainingRows),
        zap.Int("dropped_rows", res.DroppedRows),
        zap.Bool("cached", cached),
    )
    return res, nil
}

func (p *Predictor) train(t *data.Table) (fitted, bool, error) {
    if p.memo != nil {
        if v, ok := p.memo.Get(t.Fingerprint); ok { return v.(fitted), true, nil }
    }
    ts := features.Build(t)
    if ts.Len() == 0 { return fitted{}, false, fmt.Errorf("%w: all %d rows incomplete", ErrInsufficientData, ts.Dropped) }
    if ts.Dropped > 0 {
        p.logger.Warn("skipping incomplete rows for training", zap.Int("dropped", ts.Dropped), zap.Int("kept", ts.Len()))
    }

    m := p.newModel()
    if err := m.Fit(ts.X, ts.Y); err != nil {
        if errors.Is(err, models.ErrTooFewSamples) { return fitted{}, false, fmt.Errorf("%w: %v", ErrInsufficientData, err) }
        return fitted{}, false, fmt.Errorf("fit %s: %w", m.Name(), err)
    }
    f := fitted{model: m, rows: ts.Len(), dropped: ts.Dropped}
    if p.memo != nil { p.memo.SetDefault(t.Fingerprint, f) }
    return f, false, nil
}
