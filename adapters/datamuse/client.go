// Package datamuse looks up pronunciations of words missing from the lexicon with the Datamuse
// API (https://www.datamuse.com/api/).
package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/gissleh/poet"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retryDelay time.Duration
	logger     *zap.Logger
}

type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Logger            *zap.Logger
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		retryDelay: 500 * time.Millisecond,
		logger:     opts.Logger.Named("datamuse"),
	}
}

// FetchEntry asks for the pronunciation of the word. For words the service does not know, the
// answer is its best guess. It returns nil, nil when no pronunciation was given.
func (c *Client) FetchEntry(ctx context.Context, word string) (*poet.Entry, error) {
	reqURL := NewURLBuilder().BaseURL(c.baseURL).SpelledLike(word).QueryEcho().Build()

	items, err := c.fetchWords(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	if len(items) > 1 {
		c.logger.Debug("extra results", zap.String("url", reqURL), zap.Int("count", len(items)))
	}
	if items[0].Word != word {
		c.logger.Debug("unexpected first result",
			zap.String("word", word),
			zap.String("result", items[0].Word),
		)
	}

	return items[0].Entry()
}

func (c *Client) fetchWords(ctx context.Context, reqURL string) ([]WordsItem, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("datamuse: rate limit: %w", err)
	}

	c.logger.Debug("request", zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("datamuse: create request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("datamuse: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datamuse: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("datamuse: read body: %w", err)
	}

	var items []WordsItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("datamuse: decode json: %w", err)
	}

	return items, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.logger.Warn("retrying request", zap.String("url", req.URL.String()), zap.String("reason", reason))

	select {
	case <-time.After(c.retryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return c.httpClient.Do(req)
}

// WordsItem is one result of the /words endpoint:
//
//	{"word":"bustards","score":129367,"numSyllables":2,"tags":["pron:B AH1 S T ER0 D Z "]}
type WordsItem struct {
	Word         string   `json:"word"`
	Score        int      `json:"score"`
	NumSyllables *int     `json:"numSyllables,omitempty"`
	Tags         []string `json:"tags"`
}

// Entry converts the item into a lexicon entry from its "pron:" tag. It returns nil, nil if the
// item has no such tag.
func (i *WordsItem) Entry() (*poet.Entry, error) {
	for _, tag := range i.Tags {
		if pronunciation, ok := strings.CutPrefix(tag, "pron:"); ok {
			entry, err := poet.NewEntryFromParts(i.Word, pronunciation)
			if err != nil {
				return nil, err
			}

			return &entry, nil
		}
	}

	return nil, nil
}
