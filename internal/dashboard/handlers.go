package dashboard

import (
    "bytes"
    "errors"
    "fmt"
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/go-playground/validator/v10"
    "go.uber.org/zap"

    "studentscore/internal/aggregate"
    "studentscore/internal/charts"
    "studentscore/internal/data"
    "studentscore/internal/predict"
)

// predictionForm carries the whole prediction request. Only the three model features feed the predictor;
// id, gender, major and assignment completion are collected for display.
type predictionForm struct {
    StudentID  string  `form:"student_id" json:"student_id"`
    Gender     string  `form:"gender" json:"gender"`
    Major      string  `form:"major" json:"major"`
    StudyHours float64 `form:"weekly_study_hours,default=20" json:"weekly_study_hours" binding:"gte=0,lte=40"`
    Attendance float64 `form:"attendance_rate,default=0.9" json:"attendance_rate" binding:"gte=0,lte=1"`
    Midterm    float64 `form:"midterm_score,default=75" json:"midterm_score" binding:"gte=0,lte=100"`
    Assignment float64 `form:"assignment_completion_rate,default=0.8" json:"assignment_completion_rate" binding:"gte=0,lte=1"`
}

// apiPredictRequest is the JSON body of /api/predict. The three model features must be present;
// unlike the HTML form there are no defaults to fall back to.
type apiPredictRequest struct {
    StudentID  string   `json:"student_id"`
    Gender     string   `json:"gender"`
    Major      string   `json:"major"`
    StudyHours *float64 `json:"weekly_study_hours" binding:"required,gte=0,lte=40"`
    Attendance *float64 `json:"attendance_rate" binding:"required,gte=0,lte=1"`
    Midterm    *float64 `json:"midterm_score" binding:"required,gte=0,lte=100"`
    Assignment *float64 `json:"assignment_completion_rate" binding:"omitempty,gte=0,lte=1"`
}

func (r apiPredictRequest) input() predict.Input {
    return predict.Input{StudyHours: *r.StudyHours, Attendance: *r.Attendance, Midterm: *r.Midterm}
}

func defaultForm() predictionForm {
    return predictionForm{StudentID: "12345678", StudyHours: 20, Attendance: 0.9, Midterm: 75, Assignment: 0.8}
}

func (f predictionForm) input() predict.Input {
    return predict.Input{StudyHours: f.StudyHours, Attendance: f.Attendance, Midterm: f.Midterm}
}

var fieldNames = map[string]string{
    "StudyHours": "weekly_study_hours",
    "Attendance": "attendance_rate",
    "Midterm":    "midterm_score",
    "Assignment": "assignment_completion_rate",
}

var tagWords = map[string]string{"gte": "at least", "lte": "at most"}

func bindingMessages(err error) []string {
    var verrs validator.ValidationErrors
    if !errors.As(err, &verrs) { return []string{"invalid request: " + err.Error()} }
    out := make([]string, 0, len(verrs))
    for _, fe := range verrs {
        name := fieldNames[fe.Field()]
        if name == "" { name = fe.Field() }
        if fe.Tag() == "required" {
            out = append(out, name+" is required")
            continue
        }
        word := tagWords[fe.Tag()]
        if word == "" { word = fe.Tag() }
        out = append(out, fmt.Sprintf("%s must be %s %s", name, word, fe.Param()))
    }
    return out
}

func isNotFound(err error) bool { return errors.Is(err, data.ErrDataFileNotFound) }

// predictErrorMessage keeps the panel message short; the empty-table case reads like a user instruction.
func predictErrorMessage(err error) string {
    switch {
    case errors.Is(err, predict.ErrEmptyDataset):
        return "No data available to train the model, please import valid data first."
    case errors.Is(err, predict.ErrInsufficientData):
        return "Not enough complete rows to train the model."
    default:
        return "Prediction failed: " + err.Error()
    }
}

func (s *Server) predictForm(c *gin.Context) {
    f := defaultForm()
    if err := c.ShouldBind(&f); err != nil {
        pv := s.predictionView(f)
        pv.FieldErrors = bindingMessages(err)
        s.render(c, http.StatusBadRequest, PagePrediction, pv)
        return
    }
    pv := s.predictionView(f)
    res, err := s.predictor.Predict(s.table, f.input())
    if err != nil {
        s.logger.Warn("prediction failed", zap.Error(err))
        pv.Error = predictErrorMessage(err)
        s.render(c, http.StatusUnprocessableEntity, PagePrediction, pv)
        return
    }
    pv.Result = &res
    s.render(c, http.StatusOK, PagePrediction, pv)
}

func (s *Server) apiPredict(c *gin.Context) {
    var req apiPredictRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": bindingMessages(err)})
        return
    }
    res, err := s.predictor.Predict(s.table, req.input())
    if err != nil {
        c.JSON(http.StatusUnprocessableEntity, gin.H{"error": predictErrorMessage(err)})
        return
    }
    c.JSON(http.StatusOK, gin.H{"request": req, "result": res, "rounded_score": res.Rounded()})
}

func (s *Server) apiAggregates(c *gin.Context) {
    c.JSON(http.StatusOK, aggregate.Build(s.table, s.cfg.FocusMajor))
}

func (s *Server) exportCSV(c *gin.Context) {
    var buf bytes.Buffer
    if err := data.WriteCSV(&buf, s.table); err != nil {
        s.logger.Error("export csv", zap.Error(err))
        c.String(http.StatusInternalServerError, "export failed")
        return
    }
    c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, data.ExportFileName))
    c.Data(http.StatusOK, data.ExportMIME+"; charset=utf-8", buf.Bytes())
}

func (s *Server) chart(c *gin.Context) {
    var buf bytes.Buffer
    err := charts.Render(&buf, c.Param("name"), aggregate.Build(s.table, s.cfg.FocusMajor))
    switch {
    case errors.Is(err, charts.ErrUnknownChart), errors.Is(err, charts.ErrNoData):
        c.String(http.StatusNotFound, err.Error())
    case err != nil:
        s.logger.Error("render chart", zap.String("chart", c.Param("name")), zap.Error(err))
        c.String(http.StatusInternalServerError, "chart rendering failed")
    default:
        c.Data(http.StatusOK, "image/png", buf.Bytes())
    }
}
