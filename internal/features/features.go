package features

import "studentscore/internal/data"

// Inputs is the feature vector the predictor consumes, in model column order.
var Inputs = []data.Metric{data.StudyHours, data.Attendance, data.Midterm}

const Target = data.FinalScore

func Names() []string {
    names := make([]string, len(Inputs))
    for i, m := range Inputs { names[i] = m.Column() }
    return names
}

func Vector(studyHours, attendance, midterm float64) []float64 {
    return []float64{studyHours, attendance, midterm}
}

// Vectorize returns the record's features and whether all of them parsed.
func Vectorize(r data.Record) ([]float64, bool) {
    if !r.Complete(Inputs...) { return nil, false }
    vec := make([]float64, len(Inputs))
    for i, m := range Inputs { vec[i] = r.Values[m] }
    return vec, true
}

// TrainingSet is every record whose features and target parsed. Dropped counts the rest.
type TrainingSet struct {
    X       [][]float64
    Y       []float64
    Dropped int
}

func (s TrainingSet) Len() int { return len(s.Y) }

func Build(t *data.Table) TrainingSet {
    ts := TrainingSet{X: make([][]float64, 0, t.Len()), Y: make([]float64, 0, t.Len())}
    if t == nil { return ts }
    for _, r := range t.Records {
        v, ok := Vectorize(r)
        y, yok := r.Value(Target)
        if !ok || !yok { ts.Dropped++; continue }
        ts.X = append(ts.X, v)
        ts.Y = append(ts.Y, y)
    }
    return ts
}
