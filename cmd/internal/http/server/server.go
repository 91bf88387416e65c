package server

import (
	"errors"
	"fmt"
	"net/http"
	"notesapi/cmd/internal/config"
	"notesapi/cmd/internal/http/handler"
	"notesapi/cmd/internal/http/middleware"
	"notesapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// New builds the echo instance serving the notes API.
func New(cfg *config.Config, noteRoutes *handler.DefaultNoteRoute) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(cfg.LogLvl())
	e.HTTPErrorHandler = errorHandler

	e.Use(echomw.Recover())
	e.Use(middleware.NewRequestID())
	e.Use(middleware.NewRequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(echomw.BodyLimit(cfg.BodyLimit))
	if cfg.RateLimit.RPS > 0 {
		e.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	// Notes, reachable with and without the trailing slash
	notes := e.Group("/notes")
	for _, prefix := range []string{"", "/"} {
		notes.GET(prefix, noteRoutes.GetNotes)
		notes.POST(prefix, noteRoutes.CreateNote)
	}
	for _, suffix := range []string{"", "/"} {
		notes.GET("/:id"+suffix, noteRoutes.GetNote)
		notes.PUT("/:id"+suffix, noteRoutes.UpdateNote)
	}

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	return e
}

// Address is the listen address for the configured port.
func Address(cfg *config.Config) string {
	return fmt.Sprintf(":%d", cfg.Port)
}

func healthCheckRoute(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// errorHandler renders errors that never reached a handler (unknown routes,
// body limits, panics) with the same {"detail": ...} shape handlers use.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apierr := apierror.InternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		apierr = apierror.NewSimple(he.Code, "%v", he.Message)
	} else {
		log.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(apierr.Code())
	} else {
		err = c.JSON(apierr.Code(), apierr)
	}
	if err != nil {
		log.Errorf("failed to write error response: %v", err)
	}
}
