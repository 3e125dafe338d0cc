// Command crmctl drives the admin API from the shell.
//
//	crmctl [flags] list <entity> [-page N] [-size N]
//	crmctl [flags] get <entity> <id>
//	crmctl [flags] create <entity> <payload.json> [-file img.jpg ...]
//	crmctl [flags] update <entity> <id> <payload.json> [-file img.jpg ...]
//	crmctl [flags] delete <entity> <id>
//	crmctl [flags] batches -start 2025-06-01 -end 2025-06-03 [-weekdays 5] [-months 5] [-itinerary id]
//
// Entities: activities, contents, hero-slides, ledgers, transports, itineraries.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tripdesk/crm-admin/internal/client"
	"github.com/tripdesk/crm-admin/internal/config"
	"go.uber.org/zap"
)

const (
	envServer   = "CRM_SERVER"
	envUser     = "CRM_USER"
	envPassword = "CRM_PASSWORD"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	server := flag.String("server", envOr(envServer, "http://localhost:2333/api/v1"), "API base URL")
	user := flag.String("user", envOr(envUser, "admin"), "admin username")
	password := flag.String("password", os.Getenv(envPassword), "admin password (or "+envPassword+")")
	verbose := flag.Bool("v", false, "log requests")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
		}
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.New(*server, client.WithLogger(logger))
	if err != nil {
		fail(err)
	}
	if _, err := c.Login(ctx, *user, *password); err != nil {
		fail(fmt.Errorf("login: %w", err))
	}
	defer func() { _ = c.Logout(context.Background()) }()

	if err := run(ctx, c, flag.Arg(0), flag.Args()[1:]); err != nil {
		fail(err)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: crmctl [flags] <list|get|create|update|delete|batches> ...\n\nflags:\n")
	flag.PrintDefaults()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "crmctl:", client.Message(err))
	os.Exit(1)
}
