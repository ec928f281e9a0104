package main

import (
    "github.com/gin-gonic/gin"
    "go.uber.org/zap"

    "studentscore/internal/config"
    "studentscore/internal/dashboard"
    "studentscore/internal/data"
    "studentscore/internal/models"
    "studentscore/internal/predict"
    "studentscore/pkg/utils"
)

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    cfg := config.Load()
    if cfg.GinMode != "" { gin.SetMode(cfg.GinMode) }

    table, loadErr := data.Load(cfg.DataFile)
    if loadErr != nil {
        logger.Error("failed to load data file", zap.String("path", cfg.DataFile), zap.Error(loadErr))
    } else {
        logger.Info("data loaded", zap.String("path", cfg.DataFile), zap.Int("rows", table.Len()), zap.Int("majors", len(table.Majors())))
        if n := len(table.Issues); n > 0 {
            logger.Warn("non-numeric cells treated as empty", zap.Int("cells", n))
        }
    }

    opts := []predict.Option{predict.WithLogger(logger)}
    if cfg.MemoizeModel { opts = append(opts, predict.WithMemo(cfg.MemoTTL)) }
    algo := cfg.ModelAlgo
    predictor := predict.New(func() models.Regressor { return models.New(algo) }, opts...)

    r := dashboard.New(cfg, table, loadErr, predictor, logger).Router()
    logger.Info("listening", zap.String("addr", cfg.Addr()), zap.String("model", algo))
    if err := r.Run(cfg.Addr()); err != nil { logger.Fatal("server stopped", zap.Error(err)) }
}
