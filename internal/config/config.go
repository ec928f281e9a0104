package config

import (
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"
)

const (
    DefaultPort       = "8080"
    DefaultDataFile   = "data/student_data.xlsx"
    DefaultFocusMajor = "big-data management"
    DefaultMemoTTL    = 10 * time.Minute
)

type Config struct {
    Port       string
    DataFile   string
    FocusMajor string
    APIKey     string
    GinMode    string
    // ModelAlgo picks the regressor: "ols" (default) or "gbr".
    ModelAlgo  string
    // MemoizeModel reuses a fitted model for an unchanged table instead of retraining per request.
    MemoizeModel bool
    MemoTTL      time.Duration
}

// Load reads .env when present and then the process environment.
func Load() Config {
    _ = godotenv.Load()
    return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) Config {
    cfg := Config{
        Port:       orDefault(getenv("PORT"), DefaultPort),
        DataFile:   orDefault(getenv("DATA_FILE"), DefaultDataFile),
        FocusMajor: orDefault(getenv("FOCUS_MAJOR"), DefaultFocusMajor),
        APIKey:     getenv("API_KEY"),
        GinMode:    getenv("GIN_MODE"),
        ModelAlgo:  strings.ToLower(orDefault(getenv("MODEL_ALGO"), "ols")),
        MemoTTL:    DefaultMemoTTL,
    }
    if b, err := strconv.ParseBool(strings.TrimSpace(getenv("MODEL_MEMO"))); err == nil {
        cfg.MemoizeModel = b
    }
    if d, err := time.ParseDuration(strings.TrimSpace(getenv("MODEL_MEMO_TTL"))); err == nil && d > 0 {
        cfg.MemoTTL = d
    }
    return cfg
}

func (c Config) Addr() string { return ":" + c.Port }

func orDefault(v, def string) string {
    if strings.TrimSpace(v) == "" { return def }
    return strings.TrimSpace(v)
}
