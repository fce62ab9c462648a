package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fjvico/homepage/internal/content"
	"github.com/fjvico/homepage/internal/identity"
	"github.com/fjvico/homepage/internal/page"
)

type fakePage struct {
	mu    sync.Mutex
	nodes map[string]string
}

func newFakePage(ids ...string) *fakePage {
	p := &fakePage{nodes: map[string]string{
		page.IDCurrentLang:      "",
		identity.IDEmailDisplay: "",
	}}
	for _, id := range ids {
		p.nodes[id] = "prior"
	}
	return p
}

func (p *fakePage) SetText(id, text string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.nodes[id]; !ok {
		return false
	}
	p.nodes[id] = text
	return true
}

func (p *fakePage) SetHTML(id, html string) bool {
	return p.SetText(id, html)
}

func (p *fakePage) get(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nodes[id]
}

const esFile = "=== HEADER\nFrancisco J. Vico\n«intento cosas»\n=== FOOTER\nNAME:Francisco Vico\n"
const enFile = "=== HEADER\nFrancisco J. Vico\n«I try things»\n"

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"lang/es.txt": {Data: []byte(esFile)},
		"lang/en.txt": {Data: []byte(enFile)},
		"lang/eo.txt": {Data: []byte{}},
		"lang/fr.txt": {Data: []byte("=== FOOTER\nEMAIL:hijack@example.com\nNAME:Francisco\n")},
	}
}

func TestValidCode(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
	}{
		{"es", false},
		{"en", false},
		{"pt-BR", false},
		{"", true},
		{"../etc/passwd", true},
		{"e", true},
		{"es/../en", true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := ValidCode(tt.code)
			assert.Equal(t, tt.wantErr, err != nil, "ValidCode(%q) = %v", tt.code, err)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidCode))
			}
		})
	}
}

func TestFSSource(t *testing.T) {
	src := FSSource{FS: testFS()}

	text, err := src.Fetch(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, enFile, text)

	_, err = src.Fetch(context.Background(), "de")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.Status)
	assert.Equal(t, "lang/de.txt", fe.URL)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/lang/en.txt" {
			_, _ = w.Write([]byte(enFile))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := HTTPSource{BaseURL: srv.URL + "/", Client: srv.Client()}

	text, err := src.Fetch(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, enFile, text)

	_, err = src.Fetch(context.Background(), "de")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.Status)
}

func TestLoadSuccess(t *testing.T) {
	l := New(FSSource{FS: testFS()}, identity.Default, zaptest.NewLogger(t))
	p := newFakePage(content.IDHeaderTitle, content.IDHeaderSubtitle, content.IDFooterName, content.IDFooterDept)

	res := l.Load(context.Background(), "en", p)

	assert.Equal(t, Loaded, res.Outcome)
	assert.NoError(t, res.Err)
	assert.Equal(t, "«I try things»", p.get(content.IDHeaderSubtitle))
	assert.Equal(t, "prior", p.get(content.IDFooterName))
	assert.Equal(t, identity.Default.Markup(), p.get(identity.IDEmailDisplay))
}

func TestLoadFallbackOnMissingFile(t *testing.T) {
	var observed []Result
	l := New(FSSource{FS: testFS()}, identity.Default, zaptest.NewLogger(t),
		WithObserver(func(r Result) { observed = append(observed, r) }))
	p := newFakePage(content.IDHeaderSubtitle, content.IDFooterUni)

	res := l.Load(context.Background(), "de", p)

	assert.Equal(t, Fallback, res.Outcome)
	var fe *FetchError
	assert.True(t, errors.As(res.Err, &fe))
	assert.Equal(t, "«intento cosas»", p.get(content.IDHeaderSubtitle))
	assert.Equal(t, "Universidad de Málaga", p.get(content.IDFooterUni))
	assert.Equal(t, identity.Default.Markup(), p.get(identity.IDEmailDisplay))
	require.Len(t, observed, 1)
	assert.Equal(t, Fallback, observed[0].Outcome)
}

func TestLoadFallbackOnHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	l := New(HTTPSource{BaseURL: srv.URL}, identity.Default, zaptest.NewLogger(t))
	p := newFakePage(content.IDHeaderTitle, content.IDNavBio)

	res := l.Load(context.Background(), "en", p)

	assert.Equal(t, Fallback, res.Outcome)
	assert.Equal(t, "Francisco J. Vico", p.get(content.IDHeaderTitle))
	assert.Equal(t, content.IconBio+" Biografía", p.get(content.IDNavBio))
	assert.Equal(t, identity.Default.Markup(), p.get(identity.IDEmailDisplay))
}

func TestLoadEmptyFileAppliesNothing(t *testing.T) {
	l := New(FSSource{FS: testFS()}, identity.Default, zaptest.NewLogger(t))
	p := newFakePage(content.IDHeaderTitle)

	res := l.Load(context.Background(), "eo", p)

	assert.Equal(t, Empty, res.Outcome)
	assert.True(t, errors.Is(res.Err, content.ErrEmptyContent))
	assert.Equal(t, "prior", p.get(content.IDHeaderTitle))
	assert.Equal(t, identity.Default.Markup(), p.get(identity.IDEmailDisplay))
}

func TestLanguageFileCannotOverrideEmail(t *testing.T) {
	l := New(FSSource{FS: testFS()}, identity.Default, zaptest.NewLogger(t))
	p := newFakePage(content.IDFooterName)
	p.nodes[identity.IDEmailDisplay] = "hijack@example.com"

	l.Load(context.Background(), "fr", p)

	assert.Equal(t, identity.Default.Markup(), p.get(identity.IDEmailDisplay))
	assert.Equal(t, "Francisco", p.get(content.IDFooterName))
}

func TestInvalidCodeFallsBack(t *testing.T) {
	l := New(FSSource{FS: testFS()}, identity.Default, zaptest.NewLogger(t))
	p := newFakePage(content.IDHeaderTitle)

	res := l.Load(context.Background(), "../../secret", p)

	assert.Equal(t, Fallback, res.Outcome)
	assert.True(t, errors.Is(res.Err, ErrInvalidCode))
}

// oversized is a well-formed file one byte past the size cap.
func oversized() string {
	head := "=== HEADER\nFrancisco J. Vico\n«intento cosas»\n=== BIOGRAPHY\nTITLE:Bio\nCONTENT:<p>"
	tail := "</p>\n=== FOOTER\nNAME:Francisco J. Vico\n"
	fill := maxFileSize + 1 - len(head) - len(tail)
	return head + strings.Repeat("a", fill) + tail
}

func TestSourcesRefuseOversizedFiles(t *testing.T) {
	big := oversized()
	require.Len(t, big, maxFileSize+1)
	atLimit := big[:maxFileSize]

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lang/en.txt":
			_, _ = w.Write([]byte(big))
		case "/lang/es.txt":
			_, _ = w.Write([]byte(atLimit))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	sources := map[string]Source{
		"fs": FSSource{FS: fstest.MapFS{
			"lang/en.txt": {Data: []byte(big)},
			"lang/es.txt": {Data: []byte(atLimit)},
		}},
		"http": HTTPSource{BaseURL: srv.URL, Client: srv.Client()},
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			_, err := src.Fetch(context.Background(), "en")
			var fe *FetchError
			require.True(t, errors.As(err, &fe), "err = %v", err)
			assert.ErrorIs(t, err, ErrTooLarge)
			assert.Equal(t, 0, fe.Status)

			text, err := src.Fetch(context.Background(), "es")
			require.NoError(t, err)
			assert.Len(t, text, maxFileSize)
		})
	}
}

func TestLoadFallbackOnOversizedFile(t *testing.T) {
	fsys := fstest.MapFS{"lang/en.txt": {Data: []byte(oversized())}}
	l := New(FSSource{FS: fsys}, identity.Default, zaptest.NewLogger(t))
	p := newFakePage(content.IDHeaderSubtitle, content.IDBioContent)

	res := l.Load(context.Background(), "en", p)

	assert.Equal(t, Fallback, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrTooLarge)
	assert.Equal(t, "«intento cosas»", p.get(content.IDHeaderSubtitle))
	assert.NotContains(t, p.get(content.IDBioContent), "aaaa")
	assert.Equal(t, identity.Default.Markup(), p.get(identity.IDEmailDisplay))
}

func TestLoadFallbackOnNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(enFile))
	}))
	base := srv.URL
	srv.Close()

	l := New(HTTPSource{BaseURL: base}, identity.Default, zaptest.NewLogger(t))
	p := newFakePage(content.IDHeaderTitle, content.IDFooterUni)
	p.nodes[identity.IDEmailDisplay] = "stale"

	res := l.Load(context.Background(), "en", p)

	assert.Equal(t, Fallback, res.Outcome)
	var fe *FetchError
	require.True(t, errors.As(res.Err, &fe))
	assert.Equal(t, 0, fe.Status)
	assert.Error(t, fe.Err)
	assert.Equal(t, "Francisco J. Vico", p.get(content.IDHeaderTitle))
	assert.Equal(t, "Universidad de Málaga", p.get(content.IDFooterUni))
	assert.Equal(t, identity.Default.Markup(), p.get(identity.IDEmailDisplay))
}
