package webapi

import (
	"encoding/json"
	"github.com/gissleh/poet"
	"github.com/gissleh/poet/adapters/jsonstorage"
	"github.com/gissleh/poet/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

var haikuLexicon = []string{
	"a AH0",
	"again AH0 G EH1 N",
	"an AE1 N",
	"frog F R AA1 G",
	"into IH0 N T UW1",
	"jumps JH AH1 M P S",
	"old OW1 L D",
	"pond P AA1 N D",
	"silence S AY1 L AH0 N S",
	"silent S AY1 L AH0 N T",
	"splash S P L AE1 SH",
	"the DH AH0",
}

const haikuText = "an old silent pond\na frog jumps into the pond\nsplash! silence again"

func testServer(t *testing.T, readOnly bool) *echo.Echo {
	t.Helper()

	dict := poet.NewDictionary()
	for _, line := range haikuLexicon {
		require.NoError(t, dict.InsertLine(line))
	}

	svc := &service.Service{
		Dictionary:         dict,
		Storage:            jsonstorage.New(filepath.Join(t.TempDir(), "poems.json")),
		MaxInterpretations: poet.DefaultInterpretationLimit,
		ReadOnly:           readOnly,
	}

	e := New()
	Register(e, svc)
	Metrics(e)

	return e
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) (int, map[string]json.RawMessage) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	res := make(map[string]json.RawMessage)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())

	return rec.Code, res
}

func decodeField[T any](t *testing.T, res map[string]json.RawMessage, key string) T {
	t.Helper()

	var value T
	require.Contains(t, res, key)
	require.NoError(t, json.Unmarshal(res[key], &value))

	return value
}

func TestWords(t *testing.T) {
	e := testServer(t, false)

	t.Run("found", func(t *testing.T) {
		code, res := doRequest(t, e, http.MethodGet, "/api/words/Pond", "")
		require.Equal(t, http.StatusOK, code)

		word := decodeField[service.WordReport](t, res, "word")
		assert.Equal(t, "pond", word.Word)
		require.Len(t, word.Entries, 1)
		assert.Equal(t, "P AA1 N D", word.Entries[0].Phonemes)
		assert.Equal(t, 1, word.Entries[0].Syllables)
	})

	t.Run("not_found", func(t *testing.T) {
		code, res := doRequest(t, e, http.MethodGet, "/api/words/ribbit", "")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, poet.ErrWordNotFound.Error(), decodeField[string](t, res, "error"))
	})
}

func TestAnalysis(t *testing.T) {
	e := testServer(t, false)

	t.Run("haiku", func(t *testing.T) {
		body, err := json.Marshal(analyzeRequest{Text: haikuText})
		require.NoError(t, err)

		code, res := doRequest(t, e, http.MethodPost, "/api/analyze", string(body))
		require.Equal(t, http.StatusOK, code)

		analysis := decodeField[service.Analysis](t, res, "analysis")
		require.Len(t, analysis.Stanzas, 1)
		assert.Empty(t, analysis.Unknown)

		forms := analysis.Stanzas[0].Forms
		require.Len(t, forms, len(poet.Forms))
		assert.Equal(t, "haiku", forms[0].Form)
		assert.True(t, forms[0].Valid)
		assert.Equal(t, []int{5, 7, 5}, forms[0].Syllables)
		assert.Equal(t, "shakespearean_sonnet", forms[1].Form)
		assert.False(t, forms[1].Valid)
	})

	t.Run("selected_form", func(t *testing.T) {
		code, res := doRequest(t, e, http.MethodPost, "/api/analyze", `{"text": "an old pond\na frog", "forms": ["haiku"]}`)
		require.Equal(t, http.StatusOK, code)

		analysis := decodeField[service.Analysis](t, res, "analysis")
		require.Len(t, analysis.Stanzas, 1)
		require.Len(t, analysis.Stanzas[0].Forms, 1)
		assert.False(t, analysis.Stanzas[0].Forms[0].Valid)
		assert.NotEmpty(t, analysis.Stanzas[0].Forms[0].Errors)
	})

	t.Run("unknown_form", func(t *testing.T) {
		code, _ := doRequest(t, e, http.MethodPost, "/api/analyze", `{"text": "an old pond\na frog", "forms": ["limerick"]}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("blank", func(t *testing.T) {
		code, _ := doRequest(t, e, http.MethodPost, "/api/analyze", `{"text": "  "}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestPoems(t *testing.T) {
	e := testServer(t, false)
	input := `{"title": "Old Pond", "author": "Basho", "text": "an old silent pond\na frog jumps into the pond\nsplash! silence again"}`

	code, res := doRequest(t, e, http.MethodPost, "/api/poems?dry=true", input)
	require.Equal(t, http.StatusOK, code)
	dry := decodeField[poet.Poem](t, res, "poem")
	assert.Empty(t, dry.ID)
	assert.Equal(t, []string{"haiku"}, dry.Forms)

	code, res = doRequest(t, e, http.MethodGet, "/api/poems", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decodeField[[]poet.Poem](t, res, "poems"))

	code, res = doRequest(t, e, http.MethodPost, "/api/poems", input)
	require.Equal(t, http.StatusOK, code)
	saved := decodeField[poet.Poem](t, res, "poem")
	require.NotEmpty(t, saved.ID)

	code, res = doRequest(t, e, http.MethodGet, "/api/poems?form=haiku", "")
	require.Equal(t, http.StatusOK, code)
	list := decodeField[[]poet.Poem](t, res, "poems")
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)

	code, res = doRequest(t, e, http.MethodGet, "/api/poems?author=Basho&form=shakespearean_sonnet", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decodeField[[]poet.Poem](t, res, "poems"))

	code, res = doRequest(t, e, http.MethodGet, "/api/poems/"+saved.ID+"/input", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Basho", decodeField[poet.PoemInput](t, res, "input").Author)

	code, _ = doRequest(t, e, http.MethodDelete, "/api/poems/"+saved.ID, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, e, http.MethodGet, "/api/poems/"+saved.ID, "")
	assert.Equal(t, http.StatusNotFound, code)

	t.Run("missing_author", func(t *testing.T) {
		code, res := doRequest(t, e, http.MethodPost, "/api/poems", `{"text": "an old pond\na frog"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "author", decodeField[string](t, res, "field"))
	})

	t.Run("read_only", func(t *testing.T) {
		ro := testServer(t, true)
		code, _ := doRequest(t, ro, http.MethodPost, "/api/poems", input)
		assert.Equal(t, http.StatusForbidden, code)
	})
}

func TestForms(t *testing.T) {
	e := testServer(t, false)

	code, res := doRequest(t, e, http.MethodGet, "/api/forms", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, poet.FormNames(), decodeField[[]string](t, res, "forms"))
}

func TestMetrics(t *testing.T) {
	e := testServer(t, false)
	_, _ = doRequest(t, e, http.MethodGet, "/api/words/pond", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "poet_word_lookups_total")
}
