package webapi

import (
	"errors"
	"fmt"
	"github.com/gissleh/poet"
	"github.com/gissleh/poet/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

// New creates the echo instance with the middleware and error handler shared by the web server
// and the lambda handler.
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.CORS())
	e.Use(middleware.Gzip())
	e.HTTPErrorHandler = wrapError

	return e
}

// Setup creates the echo instance, lets register mount the routes and starts listening on addr.
// The channel receives the listener error, and is closed once the server has stopped.
func Setup(addr string, register func(e *echo.Echo)) (*echo.Echo, <-chan error) {
	e := New()
	register(e)

	errCh := make(chan error)
	go func() {
		defer close(errCh)

		err := e.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return e, errCh
}

// Register mounts the JSON API under /api.
func Register(e *echo.Echo, svc *service.Service) {
	Words(e.Group("/api/words"), svc)
	Analysis(e.Group("/api/analyze"), svc)
	Poems(e.Group("/api/poems"), svc)
	Forms(e.Group("/api/forms"))
}

// Metrics exposes the prometheus registry.
func Metrics(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func wrapError(err error, c echo.Context) {
	var httpErr *echo.HTTPError
	var bindingErr *echo.BindingError
	var poemErr poet.PoemError

	switch {
	case errors.As(err, &bindingErr):
		_ = c.JSON(bindingErr.Code, map[string]string{"error": fmt.Sprint(bindingErr.Message)})
	case errors.As(err, &httpErr):
		_ = c.JSON(httpErr.Code, map[string]string{"error": fmt.Sprint(httpErr.Message)})
	case errors.As(err, &poemErr):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": poemErr.Message, "field": poemErr.Field})
	case errors.Is(err, poet.ErrUnknownForm), errors.Is(err, poet.ErrMalformedEntry):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, poet.ErrReadOnly):
		_ = c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, poet.ErrPoemNotFound), errors.Is(err, poet.ErrWordNotFound):
		_ = c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
