package templfrontend

import (
	"embed"
	"errors"
	"fmt"
	"github.com/a-h/templ"
	"github.com/gissleh/poet"
	"github.com/gissleh/poet/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"
)

//go:embed assets/*
var assets embed.FS

func Endpoints(group *echo.Group, svc *service.Service) {
	outputHtml := func(c echo.Context, code int, component templ.Component) error {
		c.Response().Header().Add("Content-Type", "text/html; charset=utf-8")
		c.Response().WriteHeader(code)
		return component.Render(c.Request().Context(), c.Response())
	}

	logger := svc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	assets, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}

	group.StaticFS("/static/", assets)

	group.GET("/", func(c echo.Context) error {
		return outputHtml(c, http.StatusOK, layoutWrapper("Poet", indexPage("", nil, "")))
	})

	wordHandler := func(c echo.Context, word string) error {
		title := fmt.Sprintf("Poet – %s", word)

		res, err := svc.LookupWord(c.Request().Context(), word)
		if errors.Is(err, poet.ErrWordNotFound) {
			return outputHtml(c, http.StatusNotFound, layoutWrapper(title, wordPage(word, "The word is not in the dictionary.", nil)))
		} else if err != nil {
			return outputHtml(c, http.StatusInternalServerError, layoutWrapper(title, wordPage(word, err.Error(), nil)))
		}

		return outputHtml(c, http.StatusOK, layoutWrapper(title, wordPage(res.Word, "", res)))
	}

	group.GET("/word/:word", func(c echo.Context) error {
		word, err := url.PathUnescape(c.Param("word"))
		if err != nil {
			return outputHtml(c, http.StatusUnprocessableEntity, layoutWrapper("Poet", wordPage(c.Param("word"), err.Error(), nil)))
		}

		return wordHandler(c, word)
	})

	group.GET("/word", func(c echo.Context) error {
		return wordHandler(c, c.QueryParam("q"))
	})

	group.POST("/analyze", func(c echo.Context) error {
		text := c.FormValue("text")
		var selected []string
		if params, err := c.FormParams(); err == nil {
			selected = params["form"]
		}

		if strings.TrimSpace(text) == "" {
			return outputHtml(c, http.StatusUnprocessableEntity, layoutWrapper("Poet", indexPage(text, selected, "Text cannot be left blank.")))
		}

		startTime := time.Now()
		res, err := svc.Analyze(c.Request().Context(), text, selected)
		if err != nil {
			code := http.StatusInternalServerError
			if errors.Is(err, poet.ErrUnknownForm) {
				code = http.StatusUnprocessableEntity
			}

			return outputHtml(c, code, layoutWrapper("Poet", analysisPage(text, selected, err.Error(), nil)))
		}

		duration := time.Since(startTime)
		if duration > time.Millisecond*100 {
			logger.Info("slow analysis", zap.Duration("duration", duration), zap.Int("stanzas", len(res.Stanzas)))
		}

		return outputHtml(c, http.StatusOK, layoutWrapper("Poet – Analysis", analysisPage(text, selected, "", res)))
	})
}
