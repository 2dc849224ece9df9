package aforo

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/aforo/dashboard"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// sitemapURLs lists the dashboard once per language and venue, stamped with
// the time the data was last loaded.
func (a *App) sitemapURLs(ds *Dataset) []sitemapURL {
	base := strings.TrimRight(a.Config.Server.URL, "/")
	lastMod := ""
	if !ds.LoadedAt.IsZero() {
		lastMod = ds.LoadedAt.Format("2006-01-02")
	}
	var urls []sitemapURL
	for _, lang := range ds.I18n.Languages() {
		for _, v := range a.Options.Venues {
			q := url.Values{}
			q.Set(dashboard.ParamLanguage, lang)
			q.Set(dashboard.ParamVenue, strconv.Itoa(v.ID))
			urls = append(urls, sitemapURL{Loc: base + "/?" + q.Encode(), LastMod: lastMod})
		}
	}
	return urls
}

func (a *App) handleSitemap(c echo.Context) error {
	ds, err := a.Data.Get()
	if err != nil {
		return err
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  a.sitemapURLs(ds),
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n",
		strings.TrimRight(a.Config.Server.URL, "/"))
	return c.String(http.StatusOK, body)
}
