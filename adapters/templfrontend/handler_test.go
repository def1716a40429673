package templfrontend

import (
	"github.com/gissleh/poet"
	"github.com/gissleh/poet/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func testServer(t *testing.T) *echo.Echo {
	t.Helper()

	dict := poet.NewDictionary()
	for _, line := range []string{
		"an AE1 N",
		"old OW1 L D",
		"pond P AA1 N D",
		"frog F R AA1 G",
		"a AH0",
	} {
		require.NoError(t, dict.InsertLine(line))
	}

	e := echo.New()
	Endpoints(e.Group(""), &service.Service{Dictionary: dict})

	return e
}

func TestEndpoints(t *testing.T) {
	e := testServer(t)

	table := []struct {
		name     string
		method   string
		target   string
		form     url.Values
		code     int
		contains []string
	}{
		{
			name: "index", method: http.MethodGet, target: "/", code: http.StatusOK,
			contains: []string{`action="/analyze"`, "Shakespearean Sonnet"},
		},
		{
			name: "stylesheet", method: http.MethodGet, target: "/static/style.css", code: http.StatusOK,
			contains: []string{".stanza"},
		},
		{
			name: "word", method: http.MethodGet, target: "/word/Pond", code: http.StatusOK,
			contains: []string{"<h2>pond</h2>", "P AA1 N D", "/pɑnd/"},
		},
		{
			name: "word_query", method: http.MethodGet, target: "/word?q=frog", code: http.StatusOK,
			contains: []string{"<h2>frog</h2>"},
		},
		{
			name: "word_missing", method: http.MethodGet, target: "/word/ribbit", code: http.StatusNotFound,
			contains: []string{"not in the dictionary"},
		},
		{
			name: "analyze", method: http.MethodPost, target: "/analyze", code: http.StatusOK,
			form:     url.Values{"text": {"an old pond\na <frog> ribbit"}, "form": {"haiku"}},
			contains: []string{"Not a Haiku", `<span class="unknown">ribbit</span>`, "&lt;frog&gt;"},
		},
		{
			name: "analyze_valid", method: http.MethodPost, target: "/analyze", code: http.StatusOK,
			form: url.Values{"text": {"an old pond an old\na frog a frog an old pond\nan old frog a pond"}},
			contains: []string{
				`<section class="stanza" data-valid>`,
				"<strong>Haiku</strong>",
				`<span class="syllables">7</span>`,
			},
		},
		{
			name: "analyze_blank", method: http.MethodPost, target: "/analyze", code: http.StatusUnprocessableEntity,
			form:     url.Values{"text": {"   "}},
			contains: []string{"cannot be left blank"},
		},
		{
			name: "analyze_unknown_form", method: http.MethodPost, target: "/analyze", code: http.StatusUnprocessableEntity,
			form:     url.Values{"text": {"an old pond\na frog"}, "form": {"limerick"}},
			contains: []string{"unknown verse form"},
		},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			var req *http.Request
			if row.form != nil {
				req = httptest.NewRequest(row.method, row.target, strings.NewReader(row.form.Encode()))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
			} else {
				req = httptest.NewRequest(row.method, row.target, nil)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, row.code, rec.Code)
			for _, s := range row.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestFormTitle(t *testing.T) {
	assert.Equal(t, "Haiku", formTitle("haiku"))
	assert.Equal(t, "Shakespearean Sonnet", formTitle("shakespearean_sonnet"))
}

func TestMarkUnknown(t *testing.T) {
	assert.Equal(t, []lineWord{
		{Text: "an"},
		{Text: "Old,"},
		{Text: "Ribbit!", Unknown: true},
	}, markUnknown("an  Old, Ribbit!", []string{"ribbit"}))

	assert.Empty(t, markUnknown("   ", nil))
}
