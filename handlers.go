package aforo

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/aforo/dashboard"
	"github.com/eringen/aforo/views"
)

// build runs one render pass for the given query.
func (a *App) build(q url.Values, ds *Dataset) dashboard.Dashboard {
	state := dashboard.ParseState(q, a.Options, ds.I18n)
	return dashboard.Build(ds.Data(), state, a.Options, a.now().In(a.Location))
}

func (a *App) handleDashboard(c echo.Context) error {
	ds, err := a.Data.Get()
	if err != nil {
		return err
	}
	d := a.build(c.QueryParams(), ds)
	if c.QueryParam("partial") == "charts" {
		return Render(c, views.Charts(d))
	}
	return Render(c, views.Dashboard(a.Site, d))
}

func (a *App) handleSummary(c echo.Context) error {
	ds, err := a.Data.Get()
	if err != nil {
		c.Logger().Errorf("summary: %v", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Data not loaded"})
	}
	return c.JSON(http.StatusOK, a.build(c.QueryParams(), ds).Summary())
}

// HealthResponse is the JSON body of /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Snapshots int       `json:"snapshots"`
	Languages int       `json:"languages"`
	LoadedAt  time.Time `json:"loaded_at"`
	LastError string    `json:"last_error,omitempty"`
}

func (a *App) handleHealth(c echo.Context) error {
	ds, err := a.Data.Get()
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "loading"})
	}
	resp := HealthResponse{
		Status:    "ok",
		Snapshots: len(ds.Snapshots),
		Languages: len(ds.I18n),
		LoadedAt:  ds.LoadedAt,
	}
	if err := a.Data.LastError(); err != nil {
		resp.Status = "stale"
		resp.LastError = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *App) handleOGImage(c echo.Context) error {
	ds, err := a.Data.Get()
	if err != nil {
		return err
	}
	d := a.build(c.QueryParams(), ds)
	img, err := renderBadge(d.Labels.Title, d.TotalText, d.Total, d.TotalColor)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", img)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.Site))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.Site))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
