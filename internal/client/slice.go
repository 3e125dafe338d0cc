package client

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"github.com/tripdesk/crm-admin/internal/form"
	"github.com/tripdesk/crm-admin/internal/models"
)

// State is a snapshot of a slice.
type State[T any] struct {
	Items   []T
	Current *T
	Loading bool
	Error   string
}

// Slice is the client side collection of one entity. Operations do not
// coordinate with each other: whichever response arrives last is what the
// state shows.
type Slice[T any] struct {
	c    *Client
	path string
	id   func(T) string

	mu    sync.Mutex
	state State[T]
}

// NewSlice serves the entity mounted at path, e.g. "/activities". id
// extracts the identifier used to reconcile updates and deletes.
func NewSlice[T any](c *Client, path string, id func(T) string) *Slice[T] {
	return &Slice[T]{c: c, path: path, id: id, state: State[T]{Items: []T{}}}
}

// State returns a copy of the current state.
func (s *Slice[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Items = slices.Clone(st.Items)
	if st.Current != nil {
		cur := *st.Current
		st.Current = &cur
	}
	return st
}

func (s *Slice[T]) begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *Slice[T]) fail(err error) error {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = Message(err)
	s.mu.Unlock()
	return err
}

// Fetch replaces Items with one page of the collection. A zero page or
// size leaves the server default.
func (s *Slice[T]) Fetch(ctx context.Context, page, size int) ([]T, error) {
	s.begin()
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	path := s.path
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	data, err := s.c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, s.fail(err)
	}
	items, err := decodeList[T](data)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	s.state.Items = items
	s.state.Loading = false
	s.mu.Unlock()
	return slices.Clone(items), nil
}

// FetchOne loads one record into Current.
func (s *Slice[T]) FetchOne(ctx context.Context, id string) (*T, error) {
	s.begin()
	data, err := s.c.do(ctx, http.MethodGet, s.path+"/"+url.PathEscape(id), nil, "")
	if err != nil {
		return nil, s.fail(err)
	}
	var v T
	if err := decodeRecord(data, &v); err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	s.state.Current = &v
	s.state.Loading = false
	s.mu.Unlock()
	out := v
	return &out, nil
}

// Create posts p and appends the returned record.
func (s *Slice[T]) Create(ctx context.Context, p Payload) (*T, error) {
	v, err := s.send(ctx, http.MethodPost, s.path, p)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.state.Items = append(s.state.Items, v)
	s.state.Loading = false
	s.mu.Unlock()
	return &v, nil
}

// Update replaces the record id with p and swaps in the returned record.
func (s *Slice[T]) Update(ctx context.Context, id string, p Payload) (*T, error) {
	v, err := s.send(ctx, http.MethodPut, s.path+"/"+url.PathEscape(id), p)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i, item := range s.state.Items {
		if s.id(item) == id {
			s.state.Items[i] = v
		}
	}
	if s.state.Current != nil && s.id(*s.state.Current) == id {
		cur := v
		s.state.Current = &cur
	}
	s.state.Loading = false
	s.mu.Unlock()
	return &v, nil
}

// Delete removes the record id.
func (s *Slice[T]) Delete(ctx context.Context, id string) error {
	s.begin()
	if _, err := s.c.do(ctx, http.MethodDelete, s.path+"/"+url.PathEscape(id), nil, ""); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.state.Items = slices.DeleteFunc(s.state.Items, func(item T) bool { return s.id(item) == id })
	if s.state.Current != nil && s.id(*s.state.Current) == id {
		s.state.Current = nil
	}
	s.state.Loading = false
	s.mu.Unlock()
	return nil
}

func (s *Slice[T]) send(ctx context.Context, method, path string, p Payload) (T, error) {
	var zero T
	s.begin()
	body, contentType, err := p.encode()
	if err != nil {
		return zero, s.fail(err)
	}
	data, err := s.c.do(ctx, method, path, body, contentType)
	if err != nil {
		return zero, s.fail(err)
	}
	var v T
	if err := decodeRecord(data, &v); err != nil {
		return zero, s.fail(err)
	}
	return v, nil
}

// SubmitForm validates f and, when it passes, creates a record (empty id)
// or updates the record id. A failed validation returns the
// *form.ValidationError without touching the network, and a second call
// while one is in flight returns form.ErrSubmitting.
func (s *Slice[T]) SubmitForm(ctx context.Context, f *form.Form, id string) (*T, error) {
	var out *T
	err := f.Submit(ctx, func(ctx context.Context, values form.Values) error {
		var err error
		if id == "" {
			out, err = s.Create(ctx, Payload(values))
		} else {
			out, err = s.Update(ctx, id, Payload(values))
		}
		return err
	})
	return out, err
}

// Activities returns the activity slice.
func Activities(c *Client) *Slice[models.ActivityModel] {
	return NewSlice(c, "/activities", func(m models.ActivityModel) string { return m.ID })
}

// Contents returns the content slice.
func Contents(c *Client) *Slice[models.ContentModel] {
	return NewSlice(c, "/contents", func(m models.ContentModel) string { return m.ID })
}

// HeroSlides returns the hero slide slice.
func HeroSlides(c *Client) *Slice[models.HeroSlideModel] {
	return NewSlice(c, "/hero-slides", func(m models.HeroSlideModel) string { return m.ID })
}

// Ledgers returns the ledger slice.
func Ledgers(c *Client) *Slice[models.LedgerModel] {
	return NewSlice(c, "/ledgers", func(m models.LedgerModel) string { return m.ID })
}

// Transports returns the transport slice.
func Transports(c *Client) *Slice[models.TransportModel] {
	return NewSlice(c, "/transports", func(m models.TransportModel) string { return m.ID })
}

// Itineraries returns the itinerary slice.
func Itineraries(c *Client) *Slice[models.ItineraryModel] {
	return NewSlice(c, "/itineraries", func(m models.ItineraryModel) string { return m.ID })
}
