package webapi

import (
	"github.com/gissleh/poet"
	"github.com/gissleh/poet/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type analyzeRequest struct {
	Text  string   `json:"text"`
	Forms []string `json:"forms"`
}

func Words(group *echo.Group, svc *service.Service) {
	group.GET("/:word", func(c echo.Context) error {
		word, err := url.PathUnescape(c.Param("word"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		res, err := svc.LookupWord(c.Request().Context(), word)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"word": res,
		})
	})
}

func Analysis(group *echo.Group, svc *service.Service) {
	group.POST("", func(c echo.Context) error {
		req := analyzeRequest{}
		if err := c.Bind(&req); err != nil {
			return err
		}
		if strings.TrimSpace(req.Text) == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Text cannot be left blank",
			})
		}

		start := time.Now()
		res, err := svc.Analyze(c.Request().Context(), req.Text, req.Forms)
		if err != nil {
			return err
		}
		if svc.Logger != nil {
			svc.Logger.Debug("text analyzed",
				zap.Int("stanzas", len(res.Stanzas)),
				zap.Duration("duration", time.Since(start)),
			)
		}

		return c.JSON(http.StatusOK, map[string]any{
			"analysis":    res,
			"executionMs": float64(time.Since(start)) / float64(time.Millisecond),
		})
	})
}

func Poems(group *echo.Group, svc *service.Service) {
	group.GET("", func(c echo.Context) error {
		poems, err := svc.ListPoems(c.Request().Context(), c.QueryParam("author"), c.QueryParam("form"))
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"poems": poems,
		})
	})

	group.GET("/:id", func(c echo.Context) error {
		poem, err := svc.FindPoem(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"poem": poem,
		})
	})

	group.GET("/:id/input", func(c echo.Context) error {
		poem, err := svc.FindPoem(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"input": poem.Input(),
		})
	})

	group.POST("", func(c echo.Context) error {
		input := poet.PoemInput{}
		if err := c.Bind(&input); err != nil {
			return err
		}

		res, err := svc.SavePoem(c.Request().Context(), input, c.QueryParam("dry") == "true")
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"poem": *res,
		})
	})

	group.DELETE("/:id", func(c echo.Context) error {
		poem, err := svc.DeletePoem(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"poem": poem,
		})
	})
}

// Forms lists the names accepted in the forms field of an analysis.
func Forms(group *echo.Group) {
	group.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"forms": poet.FormNames(),
		})
	})
}
