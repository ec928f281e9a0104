package main

import (
    "flag"
    "time"

    "go.uber.org/zap"

    "studentscore/internal/config"
    "studentscore/internal/data"
    "studentscore/pkg/utils"
)

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    n := flag.Int("n", 500, "Number of synthetic students")
    seed := flag.Int64("seed", 0, "Random seed (0 uses the current time)")
    out := flag.String("out", config.DefaultDataFile, "Output workbook (.xlsx) or CSV")
    flag.Parse()

    if *seed == 0 { *seed = time.Now().UnixNano() }
    logger.Info("generating synthetic students", zap.Int("n", *n), zap.Int64("seed", *seed), zap.String("out", *out))
    if err := data.GenerateSyntheticStudents(*n, *seed, *out); err != nil {
        logger.Fatal("failed to generate dataset", zap.Error(err))
    }

    t, err := data.Load(*out)
    if err != nil { logger.Fatal("generated file does not load", zap.Error(err)) }
    logger.Info("dataset written", zap.String("out", *out), zap.Int("rows", t.Len()), zap.Strings("majors", t.Majors()))
}
