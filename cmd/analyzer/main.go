package main

import (
    "flag"

    "go.uber.org/zap"

    "studentscore/internal/config"
    "studentscore/internal/data"
    "studentscore/internal/evaluate"
    "studentscore/internal/features"
    "studentscore/internal/models"
    "studentscore/pkg/utils"
)

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    cfg := config.Load()
    dataPath := flag.String("data", cfg.DataFile, "Input workbook (.xlsx) or CSV")
    algo := flag.String("algo", cfg.ModelAlgo, "Model: ols|gbr")
    estimators := flag.Int("estimators", 100, "Boosting rounds (gbr)")
    lr := flag.Float64("lr", 0.1, "Learning rate (gbr)")
    points := flag.Int("points", 8, "Points on the curve")
    minRows := flag.Int("min", 4, "Smallest training size")
    useLog := flag.Bool("log", false, "Space training sizes on a log scale")
    testFrac := flag.Float64("test_frac", 0.2, "Share of rows held out for scoring")
    outImg := flag.String("out_img", "data/learning_curve.png", "Output PNG")
    outCsv := flag.String("out_csv", "data/learning_curve.csv", "Output CSV")
    flag.Parse()

    t, err := data.Load(*dataPath)
    if err != nil { logger.Fatal("failed to load data", zap.String("path", *dataPath), zap.Error(err)) }
    ts := features.Build(t)
    if ts.Dropped > 0 { logger.Warn("skipping incomplete rows", zap.Int("dropped", ts.Dropped)) }

    newModel := func() models.Regressor {
        m := models.New(*algo)
        if gb, ok := m.(*models.GradientBoosting); ok {
            gb.NEstimators = *estimators
            gb.LearningRate = *lr
        }
        return m
    }
    pts, err := evaluate.LearningCurve(ts, newModel, *testFrac, *points, *minRows, *useLog)
    if err != nil { logger.Fatal("learning curve failed", zap.Error(err)) }

    name := newModel().Name()
    for _, p := range pts {
        logger.Info("curve point",
            zap.String("model", name),
            zap.Int("size", p.Size),
            zap.Float64("train_r2", p.TrainR2),
            zap.Float64("test_r2", p.TestR2),
            zap.Float64("test_mae", p.TestMAE),
        )
    }

    if err := evaluate.SaveCSV(*outCsv, pts); err != nil {
        logger.Error("failed to save curve CSV", zap.Error(err))
    } else {
        logger.Info("curve saved", zap.String("path", *outCsv))
    }
    if err := evaluate.SavePlot(*outImg, "Learning curve ("+name+")", pts); err != nil {
        logger.Error("failed to save curve PNG", zap.Error(err))
    } else {
        logger.Info("chart saved", zap.String("path", *outImg))
    }
}
