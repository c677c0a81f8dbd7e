package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// GravityFormsConfig holds connection settings for a Gravity Forms entries endpoint,
// e.g. https://example.org/wp-json/gf/v2/forms/9/entries.
type GravityFormsConfig struct {
	URL        string
	Username   string
	Password   string
	PageSize   int
	MaxRetries int
	Timeout    time.Duration
	// Backoff is the base delay; attempt n waits Backoff * 2^n.
	Backoff time.Duration
}

// GravityForms fetches every entry of a form through the REST API.
type GravityForms struct {
	cfg        GravityFormsConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGravityForms creates a client. Zero values fall back to page size 100,
// 5 retries, a 30s timeout and a 1s backoff base.
func NewGravityForms(cfg GravityFormsConfig, logger *zap.Logger) *GravityForms {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GravityForms{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type entriesPage struct {
	TotalCount json.Number       `json:"total_count"`
	Entries    []json.RawMessage `json:"entries"`
}

// Fetch walks every page until the reported total is reached or a page
// comes back empty. Without a total, a short page ends the walk.
func (g *GravityForms) Fetch(ctx context.Context) ([]Row, error) {
	if g.cfg.URL == "" {
		return nil, errors.New("gravity forms url is not configured")
	}

	var rows []Row
	for page := 1; ; page++ {
		body, err := g.doRequest(ctx, page)
		if err != nil {
			return nil, err
		}

		var p entriesPage
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("parsing entries page %d: %w", page, err)
		}
		for i, raw := range p.Entries {
			row, err := decodeEntry(raw)
			if err != nil {
				return nil, fmt.Errorf("decoding entry %d on page %d: %w", i, page, err)
			}
			rows = append(rows, row)
		}

		total, _ := p.TotalCount.Int64()
		g.logger.Debug("fetched entries page",
			zap.Int("page", page),
			zap.Int("entries", len(p.Entries)),
			zap.Int64("total", total),
		)
		if len(p.Entries) == 0 {
			break
		}
		if total > 0 && int64(len(rows)) >= total {
			break
		}
		if total <= 0 && len(p.Entries) < g.cfg.PageSize {
			break
		}
	}

	g.logger.Info("fetched form entries", zap.Int("count", len(rows)))
	return rows, nil
}

// doRequest performs one page request with retry on rate limiting, server
// errors and transport failures.
func (g *GravityForms) doRequest(ctx context.Context, page int) ([]byte, error) {
	u, err := url.Parse(g.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing form url: %w", err)
	}
	q := u.Query()
	q.Set("paging[page_size]", strconv.Itoa(g.cfg.PageSize))
	q.Set("paging[current_page]", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	var lastErr error
	for attempt := 0; attempt < g.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := g.cfg.Backoff * time.Duration(math.Pow(2, float64(attempt-1)))
			g.logger.Warn("retrying form entries request",
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", g.cfg.MaxRetries),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		if g.cfg.Username != "" {
			req.SetBasicAuth(g.cfg.Username, g.cfg.Password)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := g.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited")
			continue
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("form api error %d", resp.StatusCode)
			continue
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("form api error %d: %s", resp.StatusCode, truncate(string(body), 200))
		}
		return body, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decodeEntry flattens one entry object. Numbers and booleans are rendered
// as text, nulls are dropped and nested values are kept as raw JSON.
func decodeEntry(raw json.RawMessage) (Row, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	row := make(Row, len(fields))
	for k, v := range fields {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if s != "" {
				row[k] = s
			}
			continue
		}
		txt := string(v)
		if txt == "null" {
			continue
		}
		row[k] = txt
	}
	return row, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
