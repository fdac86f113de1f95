package client

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// PlotStore caches the active and deleted plot lists of one logged-in
// session. Create it after login, Close it on logout; every call after Close
// returns ErrStoreClosed. A 401 on an authenticated request closes it too.
//
// Network calls run without the lock held, so concurrent mutations apply in
// the order their responses arrive.
type PlotStore struct {
	client *Client

	mu      sync.RWMutex
	active  []Plot
	deleted []Plot
	closed  bool
}

func NewPlotStore(c *Client) *PlotStore {
	s := &PlotStore{client: c}
	c.OnUnauthorized(s.Close)
	return s
}

// Refresh reloads both lists.
func (s *PlotStore) Refresh(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	var active, deleted []Plot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = s.client.Plots(gctx, StatusActive)
		return err
	})
	g.Go(func() error {
		var err error
		deleted, err = s.client.DeletedPlots(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return s.update(func() {
		s.active = active
		s.deleted = deleted
	})
}

// Active returns a copy of the active plots, newest first.
func (s *PlotStore) Active() []Plot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.active)
}

// Deleted returns a copy of the deleted plots, most recently deleted first.
func (s *PlotStore) Deleted() []Plot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.deleted)
}

func (s *PlotStore) Add(ctx context.Context, input PlotInput) (*Plot, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	created, err := s.client.CreatePlot(ctx, input)
	if err != nil {
		return nil, err
	}
	return created, s.update(func() {
		s.active = prepend(s.active, *created)
	})
}

// Edit updates a plot and files it under the list matching its new status.
func (s *PlotStore) Edit(ctx context.Context, id uint64, patch PlotPatch) (*Plot, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	updated, err := s.client.UpdatePlot(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return updated, s.update(func() {
		s.place(*updated)
	})
}

// Delete soft-deletes a plot and moves it to the deleted list.
func (s *PlotStore) Delete(ctx context.Context, id uint64) (*Plot, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	deleted, err := s.client.DeletePlot(ctx, id)
	if err != nil {
		return nil, err
	}
	return deleted, s.update(func() {
		s.place(*deleted)
	})
}

// Restore reactivates a deleted plot and moves it to the active list.
func (s *PlotStore) Restore(ctx context.Context, id uint64) (*Plot, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	restored, err := s.client.RestorePlot(ctx, id)
	if err != nil {
		return nil, err
	}
	return restored, s.update(func() {
		s.place(*restored)
	})
}

// Purge permanently removes a deleted plot. Requires an admin session.
func (s *PlotStore) Purge(ctx context.Context, id uint64) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.client.HardDeletePlot(ctx, id); err != nil {
		return err
	}
	return s.update(func() {
		s.deleted = without(s.deleted, id)
	})
}

// PurgeAll permanently removes every plot in the deleted list. Plots that
// were removed stay out of the list even when others fail.
func (s *PlotStore) PurgeAll(ctx context.Context) error {
	targets := s.Deleted()
	if err := s.checkOpen(); err != nil {
		return err
	}

	purged := make([]bool, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range targets {
		g.Go(func() error {
			if err := s.client.HardDeletePlot(gctx, p.ID); err != nil {
				return err
			}
			purged[i] = true
			return nil
		})
	}
	waitErr := g.Wait()

	if err := s.update(func() {
		for i, p := range targets {
			if purged[i] {
				s.deleted = without(s.deleted, p.ID)
			}
		}
	}); err != nil {
		return err
	}
	return waitErr
}

// Close drops the cached lists. It is safe to call more than once.
func (s *PlotStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.active = nil
	s.deleted = nil
}

func (s *PlotStore) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// update applies fn under the lock unless the store was closed while the
// request was in flight.
func (s *PlotStore) update(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	fn()
	return nil
}

// place files plot under the list for its status. A plot already in that
// list is replaced where it stands; otherwise it moves to the head. Caller
// holds the lock.
func (s *PlotStore) place(plot Plot) {
	target, other := &s.active, &s.deleted
	if plot.Status == StatusDeleted {
		target, other = other, target
	}

	*other = without(*other, plot.ID)
	if i := slices.IndexFunc(*target, func(p Plot) bool { return p.ID == plot.ID }); i >= 0 {
		(*target)[i] = plot
		return
	}
	*target = prepend(*target, plot)
}

func prepend(plots []Plot, plot Plot) []Plot {
	return append([]Plot{plot}, plots...)
}

func without(plots []Plot, id uint64) []Plot {
	return slices.DeleteFunc(slices.Clone(plots), func(p Plot) bool {
		return p.ID == id
	})
}
