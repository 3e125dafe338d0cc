// Package sitemap publishes the public pages of the catalog as a sitemap.
// Inactive records and records whose SEO data says "notindex" are left out.
package sitemap

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/store"
	"go.uber.org/zap"
)

// Sources are the repositories whose records become public pages.
type Sources struct {
	Itineraries store.Repository[models.ItineraryModel]
	Activities  store.Repository[models.ActivityModel]
	Contents    store.Repository[models.ContentModel]
}

type urlEntry struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type Handler struct {
	site string
	src  Sources
	log  *zap.Logger
	now  func() time.Time
}

// NewHandler links pages under site, e.g. "https://example.com".
func NewHandler(site string, src Sources, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{site: site, src: src, log: log, now: time.Now}
}

// RegisterRoutes mounts the public sitemap. It needs no session.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, _ gin.HandlerFunc) {
	rg.GET("/sitemap.xml", h.render)
	rg.GET("/sitemap", h.render)
}

func (h *Handler) render(c *gin.Context) {
	set, err := h.build(c.Request.Context())
	if err != nil {
		h.log.Error("sitemap build failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "error generating sitemap")
		return
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "error generating sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

// build collects the indexed pages, newest change first after the home page.
func (h *Handler) build(ctx context.Context) (*urlSet, error) {
	var urls []urlEntry

	if h.src.Itineraries != nil {
		items, err := h.src.Itineraries.All(ctx)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if it.IsActive && indexed(it.SEO.Data()) {
				urls = append(urls, h.entry("/itineraries/"+it.Slug, it.UpdatedAt, "weekly", 0.9))
			}
		}
	}
	if h.src.Activities != nil {
		items, err := h.src.Activities.All(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range items {
			if a.IsActive && indexed(a.SEO.Data()) {
				urls = append(urls, h.entry("/activities/"+a.ID, a.UpdatedAt, "monthly", 0.7))
			}
		}
	}
	if h.src.Contents != nil {
		items, err := h.src.Contents.All(ctx)
		if err != nil {
			return nil, err
		}
		for _, ct := range items {
			if ct.IsPublished && indexed(ct.SEO.Data()) {
				urls = append(urls, h.entry("/contents/"+ct.Slug, ct.UpdatedAt, "monthly", 0.6))
			}
		}
	}

	sort.SliceStable(urls, func(i, j int) bool { return urls[i].LastMod > urls[j].LastMod })
	home := h.entry("/", h.now(), "daily", 1.0)
	return &urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  append([]urlEntry{home}, urls...),
	}, nil
}

func (h *Handler) entry(path string, mod time.Time, freq string, priority float64) urlEntry {
	loc, err := url.JoinPath(h.site, path)
	if err != nil {
		loc = h.site + path
	}
	return urlEntry{Loc: loc, LastMod: mod.Format("2006-01-02"), ChangeFreq: freq, Priority: priority}
}

// indexed treats missing SEO data as indexable.
func indexed(seo models.SEOData) bool {
	return seo.IndexStatus != models.IndexStatusNotIndex
}
