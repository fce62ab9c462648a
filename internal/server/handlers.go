package server

import (
	"context"
	"encoding/hex"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/fjvico/homepage/internal/loader"
	"github.com/fjvico/homepage/internal/visits"
)

const (
	langCookie    = "lang"
	langCookieAge = 365 * 24 * 3600
	langQuery     = "lang"
)

// resolveLanguage picks the language for a request: an explicit ?lang=,
// then the cookie set by /switch, then Accept-Language when negotiation
// is on, then the default. Only configured languages are returned.
func (s *Server) resolveLanguage(c *gin.Context) string {
	if code := c.Query(langQuery); s.cfg.Supports(code) {
		return code
	}
	if code, err := c.Cookie(langCookie); err == nil && s.cfg.Supports(code) {
		return code
	}
	if s.cfg.Negotiate {
		if header := c.GetHeader("Accept-Language"); header != "" {
			tags, _, err := language.ParseAcceptLanguage(header)
			if err == nil && len(tags) > 0 {
				_, index, confidence := s.matcher.Match(tags...)
				if confidence != language.No {
					return s.cfg.Languages[index]
				}
			}
		}
	}
	return s.cfg.DefaultLang
}

func (s *Server) home(c *gin.Context) {
	code := s.resolveLanguage(c)

	start := time.Now()
	out, err := s.renderer.Render(c.Request.Context(), code)
	s.metrics.observeRender(time.Since(start))
	if err != nil {
		s.logger.Error("render failed", zap.String("lang", code), zap.Error(err))
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}

	sum := blake3.Sum256(out.HTML)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	c.Header("Cache-Control", "no-cache")
	c.Header("Content-Language", code)
	c.Header("Vary", "Cookie, Accept-Language")
	c.Header("ETag", etag)

	s.trackVisit(c, code, out.Result.Outcome)

	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", out.HTML)
}

// switchLanguage remembers the choice and sends the visitor back to the
// page, keeping the language code as the fragment.
func (s *Server) switchLanguage(c *gin.Context) {
	code := c.Param("code")
	if !s.cfg.Supports(code) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(langCookie, code, langCookieAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/#"+code)
}

// languageFile serves the raw lang/<code>.txt so other sites can reuse
// the translations.
func (s *Server) languageFile(c *gin.Context) {
	name := c.Param("file")
	code, ok := strings.CutSuffix(name, ".txt")
	if !ok || loader.ValidCode(code) != nil {
		c.String(http.StatusBadRequest, "invalid language file name")
		return
	}

	data, err := fs.ReadFile(s.langFS, loader.FileName(code))
	if err != nil {
		c.String(http.StatusNotFound, "language not found")
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

// trackVisit records a page view in the background. Requests carrying
// DNT: 1 are never recorded.
func (s *Server) trackVisit(c *gin.Context, code string, outcome loader.Outcome) {
	if s.store == nil || !tracked(c.Request.URL.Path) || c.GetHeader("DNT") == "1" {
		return
	}
	v := visits.Visit{
		HashedIP:  s.store.HashIP(c.ClientIP()),
		UserAgent: c.GetHeader("User-Agent"),
		Path:      c.Request.URL.Path,
		Lang:      code,
		Outcome:   outcome.String(),
		Timestamp: time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.Record(ctx, v); err != nil {
			s.logger.Warn("error recording visitor", zap.Error(err))
		}
	}()
}
