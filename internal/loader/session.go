package loader

import (
	"context"
	"strings"
	"sync"

	"github.com/fjvico/homepage/internal/content"
	"github.com/fjvico/homepage/internal/page"
)

// Session binds a loader to one page and tracks the current language.
// Switch may be called concurrently; only the most recently requested
// language is ever written.
type Session struct {
	loader *Loader
	target content.Target

	mu   sync.Mutex
	code string
	gen  uint64
	last Result
}

func NewSession(l *Loader, t content.Target, code string) *Session {
	return &Session{loader: l, target: t, code: code}
}

// Switch makes code current, updates the language indicator and loads the
// file. If another Switch starts before this one's fetch finishes, the
// result is Superseded and the page is left to the newer call.
func (s *Session) Switch(ctx context.Context, code string) Result {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.code = code
	s.target.SetText(page.IDCurrentLang, strings.ToUpper(code))
	s.mu.Unlock()

	prepared := s.loader.Prepare(ctx, code)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return Result{Code: code, Outcome: Superseded, Err: prepared.Err}
	}
	s.last = s.loader.Commit(prepared, s.target)
	return s.last
}

// Current is the most recently requested language.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Last is the result of the most recent committed load.
func (s *Session) Last() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
