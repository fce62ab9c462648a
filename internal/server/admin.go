package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.tmpl", gin.H{
			"title": "Privacy Policy",
			"email": template.HTML(s.cfg.Email.Markup()),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.tmpl", gin.H{})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		token, err := s.auth.login(c.PostForm("username"), c.PostForm("password"))
		if err != nil {
			s.logger.Warn("failed admin login", zap.String("client", s.clientHash(c)))
			c.HTML(http.StatusUnauthorized, "admin-login.tmpl", gin.H{
				"error": "Invalid credentials",
			})
			return
		}
		if s.cfg.CookieSecure && !overTLS(c) {
			s.logger.Warn("admin cookie is Secure but the request came over plain HTTP; browsers will drop it. Set COOKIE_SECURE=false when not behind TLS")
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, token, int(s.auth.ttl.Seconds()), "/admin", "", s.cfg.CookieSecure, true)
		s.logger.Info("admin login", zap.String("client", s.clientHash(c)))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", s.cfg.CookieSecure, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.auth.middleware())
	adminGroup.Use(s.requireStore())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error("error loading admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.tmpl", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.tmpl", gin.H{"stats": stats})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.Recent(c.Request.Context(), 200)
		if err != nil {
			s.logger.Error("error loading visitors", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.tmpl", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.tmpl", gin.H{"visitors": visitors})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=homepage-stats.json")
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.store.Cleanup(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": n})
	})
}

// requireStore answers 503 when visitor tracking is off.
func (s *Server) requireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.store == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "visitor tracking is disabled"})
			return
		}
		c.Next()
	}
}

func (s *Server) clientHash(c *gin.Context) string {
	if s.store == nil {
		return ""
	}
	return s.store.HashIP(c.ClientIP())
}

// overTLS reports whether the visitor reached us over HTTPS, directly or
// through a proxy that says so.
func overTLS(c *gin.Context) bool {
	return c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
}
