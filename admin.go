package aforo

import (
	"context"
	"crypto/subtle"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/eringen/aforo/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.Site, false, CsrfToken(c)))
	}
	return Render(c, views.AdminDashboard(a.Site, a.adminStatus(), c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.Admin.Password)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return RenderStatus(c, http.StatusUnauthorized, views.AdminLogin(a.Site, true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminReload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*a.Config.Data.Timeout)
	defer cancel()

	msg := "Data reloaded."
	if err := a.Data.Reload(ctx); err != nil {
		c.Logger().Errorf("admin reload: %v", err)
		msg = "Reload failed, previous data kept: " + err.Error()
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape(msg))
}

func (a *App) adminStatus() views.AdminStatus {
	st := views.AdminStatus{
		StatsLocation: a.Config.Data.Stats,
		I18nLocation:  a.Config.Data.I18n,
		Refresh:       a.Config.Data.RefreshInterval,
	}
	if ds, err := a.Data.Get(); err == nil {
		st.Batches = len(ds.Snapshots)
		st.Languages = ds.I18n.Languages()
		st.LoadedAt = ds.LoadedAt
	}
	if err := a.Data.LastError(); err != nil {
		st.LastError = err.Error()
	}
	return st
}
