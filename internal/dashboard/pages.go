package dashboard

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"

    "studentscore/internal/aggregate"
    "studentscore/internal/charts"
    "studentscore/internal/data"
    "studentscore/internal/predict"
)

// Page is the navigation state selected in the sidebar.
type Page int

const (
    PageOverview Page = iota
    PageExplorer
    PagePrediction
)

var pages = []Page{PageOverview, PageExplorer, PagePrediction}

func (p Page) Slug() string {
    switch p {
    case PageExplorer:
        return "explorer"
    case PagePrediction:
        return "prediction"
    default:
        return "overview"
    }
}

func (p Page) Title() string {
    switch p {
    case PageExplorer:
        return "Major Data Explorer"
    case PagePrediction:
        return "Score Prediction"
    default:
        return "Project Overview"
    }
}

// ParsePage maps a ?page= value to a Page; anything unknown is the overview.
func ParsePage(s string) Page {
    s = strings.ToLower(strings.TrimSpace(s))
    for _, p := range pages {
        if p.Slug() == s { return p }
    }
    return PageOverview
}

type navItem struct {
    Slug   string
    Title  string
    Active bool
}

type view struct {
    Title      string
    Page       string
    Nav        []navItem
    Rows       int
    Source     string
    Explorer   *explorerView
    Prediction *predictionView
}

type explorerView struct {
    Dash       aggregate.Dashboard
    ChartURLs  map[string]string
    Issues     []data.CoercionIssue
    MoreIssues int
    ExportURL  string
}

type predictionView struct {
    Form        predictionForm
    Genders     []string
    Majors      []string
    Result      *predict.Result
    Error       string
    FieldErrors []string
    Threshold   float64
}

const maxListedIssues = 20

// render is the single dispatch from navigation state to page.
func (s *Server) render(c *gin.Context, status int, page Page, pv *predictionView) {
    v := view{Title: page.Title(), Page: page.Slug(), Rows: s.table.Len()}
    if s.table != nil { v.Source = s.table.Source }
    for _, p := range pages {
        v.Nav = append(v.Nav, navItem{Slug: p.Slug(), Title: p.Title(), Active: p == page})
    }
    switch page {
    case PageExplorer:
        v.Explorer = s.explorer()
    case PagePrediction:
        if pv == nil { pv = s.predictionView(defaultForm()) }
        v.Prediction = pv
    }
    c.HTML(status, page.Slug(), v)
}

func (s *Server) explorer() *explorerView {
    ev := &explorerView{
        Dash:      aggregate.Build(s.table, s.cfg.FocusMajor),
        ChartURLs: map[string]string{},
        ExportURL: "/export.csv",
    }
    for _, name := range charts.Names { ev.ChartURLs[name] = "/charts/" + name }
    var issues []data.CoercionIssue
    if s.table != nil { issues = s.table.Issues }
    if len(issues) > maxListedIssues {
        ev.MoreIssues = len(issues) - maxListedIssues
        issues = issues[:maxListedIssues]
    }
    ev.Issues = issues
    return ev
}

func (s *Server) predictionView(f predictionForm) *predictionView {
    pv := &predictionView{Form: f, Genders: s.table.Genders(), Majors: s.table.Majors(), Threshold: predict.PassThreshold}
    if len(pv.Genders) == 0 { pv.Genders = []string{"male", "female"} }
    if len(pv.Majors) == 0 { pv.Majors = []string{"no data"} }
    return pv
}

func (s *Server) renderError(c *gin.Context, status int, msg string) {
    c.HTML(status, "error", gin.H{"Title": "Error", "Message": msg})
}

func (s *Server) index(c *gin.Context) {
    s.render(c, http.StatusOK, ParsePage(c.Query("page")), nil)
}
