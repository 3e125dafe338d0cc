package app

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/imageupload"
	"github.com/tripdesk/crm-admin/internal/middleware"
	"github.com/tripdesk/crm-admin/internal/modules/auth/auth"
	"github.com/tripdesk/crm-admin/internal/modules/catalog/activity"
	"github.com/tripdesk/crm-admin/internal/modules/catalog/itinerary"
	"github.com/tripdesk/crm-admin/internal/modules/catalog/transport"
	"github.com/tripdesk/crm-admin/internal/modules/content/article"
	"github.com/tripdesk/crm-admin/internal/modules/content/heroslide"
	"github.com/tripdesk/crm-admin/internal/modules/content/slugtracker"
	"github.com/tripdesk/crm-admin/internal/modules/finance/ledger"
	"github.com/tripdesk/crm-admin/internal/modules/forms"
	"github.com/tripdesk/crm-admin/internal/modules/resource"
	"github.com/tripdesk/crm-admin/internal/modules/storage/file"
	"github.com/tripdesk/crm-admin/internal/modules/storage/uploads"
	"github.com/tripdesk/crm-admin/internal/modules/syndication/sitemap"
	"github.com/tripdesk/crm-admin/internal/modules/system/health"
	"github.com/tripdesk/crm-admin/internal/modules/system/servertime"
	"github.com/tripdesk/crm-admin/internal/modules/tasks/crontask"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

const apiPrefix = "/api/v1"

// routeRegistrar is implemented by every module handler.
type routeRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc)
}

func (a *App) registerRoutes(opts Options) {
	r := a.router
	cfg := a.cfg
	log := a.logger
	maxFileBytes := int64(cfg.Uploads.MaxSizeMB) << 20

	r.NoRoute(func(c *gin.Context) { response.NotFound(c) })
	r.NoMethod(func(c *gin.Context) { response.MethodNotAllowed(c) })

	files := file.NewService(opts.Stores.Files, opts.Blobs, log.Named("files"))
	uploader := &imageupload.Uploader{
		Store:          opts.Blobs,
		KeyTemplate:    cfg.Storage.KeyTemplate,
		AllowedFormats: cfg.Uploads.AllowedFormats,
		MaxSizeMB:      cfg.Uploads.MaxSizeMB,
		Tracker:        files,
	}
	slugs := slugtracker.NewService(opts.Stores.Slugs)
	deps := resource.Deps{
		Forms:    form.Default,
		Uploader: uploader,
		Refs:     files,
		Slugs:    slugs,
		Log:      log.Named("resource"),
	}
	sessions := uploads.NewSessions(imageupload.NewMemoryPreviews(), uploader, log.Named("uploads"))

	revoked := auth.NewRevocations(opts.Redis)
	authSvc := auth.NewService(auth.Account{
		Username:     cfg.Auth.Username,
		PasswordHash: cfg.Auth.PasswordHash,
	}, cfg.Auth.TokenTTL, revoked, log.Named("auth"))
	authMW := middleware.Auth(revoked)

	activities := activity.NewHandler(opts.Stores.Activities, deps, maxFileBytes)
	transports := transport.NewHandler(opts.Stores.Transports, deps, maxFileBytes)
	contents := article.NewHandler(opts.Stores.Contents, deps, maxFileBytes)
	slides := heroslide.NewHandler(opts.Stores.HeroSlides, deps, maxFileBytes)
	itineraries := itinerary.NewService(opts.Stores.Itineraries, cfg.Location(), deps)
	ledgers := ledger.NewService(opts.Stores.Ledgers, opts.Stores.Itineraries, deps)

	api := r.Group(apiPrefix)
	// Editor actions are meant to be repeated (move down twice, toggle a
	// meal back), so only entity writes are deduplicated.
	api.Use(middleware.Idempotence(opts.Redis,
		apiPrefix+"/auth/login",
		apiPrefix+"/itineraries/:id/*",
		apiPrefix+"/forms/*",
		apiPrefix+"/uploads/*",
	))
	api.GET("", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":   "crm-admin",
			"uptime": humanizeDuration(time.Since(processStart)),
		})
	})

	registrars := []routeRegistrar{
		auth.NewHandler(authSvc, middleware.RateLimit(opts.Redis, "login", 10, time.Minute, log)),
		activities,
		transports,
		contents,
		slides,
		itinerary.NewHandler(itineraries, maxFileBytes),
		ledger.NewHandler(ledgers, maxFileBytes),
		forms.NewHandler(maxFileBytes,
			activities.Service(),
			transports.Service(),
			contents.Service(),
			slides.Service(),
			itineraries,
			ledgers,
		),
		file.NewHandler(files, uploader, maxFileBytes),
		uploads.NewHandler(sessions, maxFileBytes),
		crontask.NewHandler(a.sched),
		slugtracker.NewHandler(slugs),
		servertime.NewHandler(cfg.Location()),
		health.NewHandler(pinger(opts.SQL), opts.Redis, cfg.LogDir()),
		sitemap.NewHandler(cfg.SiteURL, sitemap.Sources{
			Itineraries: opts.Stores.Itineraries,
			Activities:  opts.Stores.Activities,
			Contents:    opts.Stores.Contents,
		}, log.Named("sitemap")),
	}
	for _, reg := range registrars {
		reg.RegisterRoutes(api, authMW)
	}

	registerCronJobs(a.sched, files, sessions)
}

// pinger keeps a nil *sql.DB from becoming a non-nil interface.
func pinger(db *sql.DB) health.Pinger {
	if db == nil {
		return nil
	}
	return db
}
