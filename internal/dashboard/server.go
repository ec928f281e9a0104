package dashboard

import (
    "embed"
    "fmt"
    "html/template"
    "net/http"

    "github.com/gin-gonic/gin"
    "go.uber.org/zap"

    "studentscore/internal/config"
    "studentscore/internal/data"
    "studentscore/internal/predict"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders the dashboard over one immutable table.
// loadErr is set when the data file could not be read; every page then shows only that error.
type Server struct {
    cfg       config.Config
    table     *data.Table
    loadErr   error
    predictor *predict.Predictor
    logger    *zap.Logger
}

func New(cfg config.Config, table *data.Table, loadErr error, predictor *predict.Predictor, logger *zap.Logger) *Server {
    if logger == nil { logger = zap.NewNop() }
    return &Server{cfg: cfg, table: table, loadErr: loadErr, predictor: predictor, logger: logger}
}

var templateFuncs = template.FuncMap{
    "fixed": func(places int, v float64) string { return fmt.Sprintf("%.*f", places, v) },
    "inc":   func(i int) int { return i + 1 },
}

func parseTemplates() *template.Template {
    return template.Must(template.New("dashboard").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

func (s *Server) Router() *gin.Engine {
    r := gin.New()
    r.Use(gin.Recovery(), requestLogger(s.logger))
    r.SetHTMLTemplate(parseTemplates())

    r.GET("/health", func(c *gin.Context) {
        c.JSON(http.StatusOK, gin.H{"status": "ok", "data_loaded": s.loadErr == nil, "rows": s.table.Len()})
    })

    ui := r.Group("/")
    ui.Use(s.requireData)
    ui.GET("/", s.index)
    ui.POST("/predict", s.predictForm)
    ui.GET("/export.csv", s.exportCSV)
    ui.GET("/charts/:name", s.chart)

    api := r.Group("/api")
    api.Use(s.requireData, apiKeyMiddleware(s.cfg.APIKey))
    api.GET("/aggregates", s.apiAggregates)
    api.POST("/predict", s.apiPredict)
    return r
}
