package app

import (
	"context"
	"time"

	"github.com/tripdesk/crm-admin/internal/modules/storage/file"
	"github.com/tripdesk/crm-admin/internal/modules/storage/uploads"
	pkgcron "github.com/tripdesk/crm-admin/internal/pkg/cron"
)

const previewMaxAge = 30 * time.Minute

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, files *file.Service, sessions *uploads.Sessions) {
	sched.Register(pkgcron.Job{
		Name:        "cleanup_orphan_files",
		Description: "Remove uploads no record has referenced for an hour",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			_, err := files.Cleanup(ctx, file.DefaultOrphanAge)
			return err
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "sweep_upload_sessions",
		Description: "Close idle upload sessions and drop stale previews",
		Interval:    10 * time.Minute,
		Fn: func(context.Context) error {
			sessions.Sweep(previewMaxAge)
			return nil
		},
	})
}
