package main

import (
    "flag"
    "os"

    "go.uber.org/zap"

    "studentscore/internal/aggregate"
    "studentscore/internal/config"
    "studentscore/internal/data"
    "studentscore/internal/models"
    "studentscore/internal/predict"
    "studentscore/internal/report"
    "studentscore/pkg/utils"
)

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    cfg := config.Load()
    dataPath := flag.String("data", cfg.DataFile, "Input workbook (.xlsx) or CSV")
    focus := flag.String("focus", cfg.FocusMajor, "Major for the detailed section")
    doPredict := flag.Bool("predict", false, "Also predict a final score")
    hours := flag.Float64("hours", 20, "Weekly study hours (0-40)")
    attendance := flag.Float64("attendance", 0.9, "Attendance rate (0-1)")
    midterm := flag.Float64("midterm", 75, "Midterm score (0-100)")
    flag.Parse()

    t, err := data.Load(*dataPath)
    if err != nil { logger.Fatal("failed to load data", zap.String("path", *dataPath), zap.Error(err)) }
    report.Write(os.Stdout, aggregate.Build(t, *focus))

    if !*doPredict { return }
    in := predict.Input{StudyHours: *hours, Attendance: *attendance, Midterm: *midterm}
    p := predict.New(func() models.Regressor { return models.New(cfg.ModelAlgo) }, predict.WithLogger(logger))
    res, err := p.Predict(t, in)
    if err != nil { logger.Fatal("prediction failed", zap.Error(err)) }
    report.Prediction(os.Stdout, in, res)
}
