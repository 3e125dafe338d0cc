package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tripdesk/crm-admin/internal/client"
	"github.com/tripdesk/crm-admin/internal/imageupload"
)

// entity is the part of client.Slice the commands need, without the
// record type.
type entity interface {
	list(ctx context.Context, page, size int) (any, error)
	get(ctx context.Context, id string) (any, error)
	create(ctx context.Context, p client.Payload) (any, error)
	update(ctx context.Context, id string, p client.Payload) (any, error)
	remove(ctx context.Context, id string) error
}

type sliceEntity[T any] struct{ s *client.Slice[T] }

func (e sliceEntity[T]) list(ctx context.Context, page, size int) (any, error) {
	return e.s.Fetch(ctx, page, size)
}

func (e sliceEntity[T]) get(ctx context.Context, id string) (any, error) {
	return e.s.FetchOne(ctx, id)
}

func (e sliceEntity[T]) create(ctx context.Context, p client.Payload) (any, error) {
	return e.s.Create(ctx, p)
}

func (e sliceEntity[T]) update(ctx context.Context, id string, p client.Payload) (any, error) {
	return e.s.Update(ctx, id, p)
}

func (e sliceEntity[T]) remove(ctx context.Context, id string) error {
	return e.s.Delete(ctx, id)
}

func wrap[T any](s *client.Slice[T]) entity { return sliceEntity[T]{s} }

func lookup(c *client.Client, name string) (entity, error) {
	switch name {
	case "activities":
		return wrap(client.Activities(c)), nil
	case "contents":
		return wrap(client.Contents(c)), nil
	case "hero-slides":
		return wrap(client.HeroSlides(c)), nil
	case "ledgers":
		return wrap(client.Ledgers(c)), nil
	case "transports":
		return wrap(client.Transports(c)), nil
	case "itineraries":
		return wrap(client.Itineraries(c)), nil
	}
	return nil, fmt.Errorf("unknown entity %q", name)
}

func run(ctx context.Context, c *client.Client, cmd string, args []string) error {
	if cmd == "batches" {
		return runBatches(ctx, c, args)
	}
	if len(args) == 0 {
		return errors.New(cmd + ": missing entity")
	}
	e, err := lookup(c, args[0])
	if err != nil {
		return err
	}
	args = args[1:]

	switch cmd {
	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		size := fs.Int("size", 20, "page size")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return emit(e.list(ctx, *page, *size))
	case "get":
		if len(args) != 1 {
			return errors.New("get: want <entity> <id>")
		}
		return emit(e.get(ctx, args[0]))
	case "create":
		if len(args) < 1 {
			return errors.New("create: want <entity> <payload.json>")
		}
		p, err := readPayload(args[0], args[1:])
		if err != nil {
			return err
		}
		return emit(e.create(ctx, p))
	case "update":
		if len(args) < 2 {
			return errors.New("update: want <entity> <id> <payload.json>")
		}
		p, err := readPayload(args[1], args[2:])
		if err != nil {
			return err
		}
		return emit(e.update(ctx, args[0], p))
	case "delete":
		if len(args) != 1 {
			return errors.New("delete: want <entity> <id>")
		}
		if err := e.remove(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("deleted", args[0])
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// readPayload loads a JSON object and attaches -file arguments to its
// images field as pending uploads.
func readPayload(path string, args []string) (client.Payload, error) {
	fs := flag.NewFlagSet("payload", flag.ExitOnError)
	var files fileList
	fs.Var(&files, "file", "image to upload (repeatable)")
	field := fs.String("field", client.ImagesField, "file field to attach to")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := client.Payload{}
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(files) == 0 {
		return p, nil
	}

	slots, err := imageupload.SlotsFrom(p[*field])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", *field, err)
	}
	for _, name := range files {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		slots = append(slots, imageupload.FileSlot(&imageupload.File{
			Name:        filepath.Base(name),
			ContentType: mime.TypeByExtension(filepath.Ext(name)),
			Data:        b,
		}))
	}
	p[*field] = slots
	return p, nil
}

func runBatches(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("batches", flag.ExitOnError)
	start := fs.String("start", "", "trip start, 2006-01-02 or 2006-01-02T15:04")
	end := fs.String("end", "", "trip end")
	weekdays := fs.String("weekdays", "", "comma separated weekdays, 0 = Sunday")
	monthDays := fs.String("days", "", "comma separated days of month")
	months := fs.String("months", "", "comma separated months, 0 = January")
	itinerary := fs.String("itinerary", "", "append the batches to this itinerary")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := client.BatchRequest{TripStart: *start, TripEnd: *end}
	var err error
	if req.Weekdays, err = ints(*weekdays); err != nil {
		return fmt.Errorf("-weekdays: %w", err)
	}
	if req.MonthDays, err = ints(*monthDays); err != nil {
		return fmt.Errorf("-days: %w", err)
	}
	if req.Months, err = ints(*months); err != nil {
		return fmt.Errorf("-months: %w", err)
	}

	if *itinerary != "" {
		it, err := c.AppendBatches(ctx, *itinerary, req)
		if err != nil {
			return err
		}
		return emit(it.Batches, nil)
	}
	return emit(c.PreviewBatches(ctx, req))
}

func ints(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func emit(v any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type fileList []string

func (f *fileList) String() string     { return strings.Join(*f, ",") }
func (f *fileList) Set(v string) error { *f = append(*f, v); return nil }
