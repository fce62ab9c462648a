package loader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/fjvico/homepage/internal/content"
	"github.com/fjvico/homepage/internal/identity"
	"github.com/fjvico/homepage/internal/page"
)

// gatedSource blocks fetches of one code until release is closed.
type gatedSource struct {
	inner   Source
	slow    string
	started chan struct{}
	release chan struct{}
}

func (s *gatedSource) Fetch(ctx context.Context, code string) (string, error) {
	if code == s.slow {
		close(s.started)
		<-s.release
	}
	return s.inner.Fetch(ctx, code)
}

func TestSwitchUpdatesIndicatorAndState(t *testing.T) {
	l := New(FSSource{FS: testFS()}, identity.Default, zaptest.NewLogger(t))
	p := newFakePage(content.IDHeaderSubtitle)
	s := NewSession(l, p, "es")

	assert.Equal(t, "es", s.Current())

	res := s.Switch(context.Background(), "en")

	assert.Equal(t, Loaded, res.Outcome)
	assert.Equal(t, "en", s.Current())
	assert.Equal(t, "EN", p.get(page.IDCurrentLang))
	assert.Equal(t, "«I try things»", p.get(content.IDHeaderSubtitle))
	assert.Equal(t, res, s.Last())
}

func TestSwitchLastRequestedWins(t *testing.T) {
	src := &gatedSource{
		inner:   FSSource{FS: testFS()},
		slow:    "en",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	l := New(src, identity.Default, zaptest.NewLogger(t))
	p := newFakePage(content.IDHeaderSubtitle)
	s := NewSession(l, p, "es")

	slow := make(chan Result, 1)
	go func() {
		slow <- s.Switch(context.Background(), "en")
	}()
	<-src.started

	fast := s.Switch(context.Background(), "es")
	assert.Equal(t, Loaded, fast.Outcome)
	assert.Equal(t, "«intento cosas»", p.get(content.IDHeaderSubtitle))

	close(src.release)
	stale := <-slow

	assert.Equal(t, Superseded, stale.Outcome)
	assert.Equal(t, "«intento cosas»", p.get(content.IDHeaderSubtitle))
	assert.Equal(t, "es", s.Current())
	assert.Equal(t, "ES", p.get(page.IDCurrentLang))
	assert.Equal(t, "es", s.Last().Code)
}
