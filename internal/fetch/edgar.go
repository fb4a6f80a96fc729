// Package fetch retrieves filing documents from SEC EDGAR. It is a
// network collaborator of the pipeline, not part of extraction: the
// pipeline only ever sees already-fetched document text.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"edgarcli/internal/config"
)

// Client is a rate-limited EDGAR document fetcher. The SEC rejects
// anonymous or bursty clients, so every request carries an identifying
// User-Agent and passes through a limiter capped at the published
// 10 requests per second.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	cfg     config.FetchConfig
	logger  *slog.Logger
}

// NewClient creates an EDGAR client from configuration.
func NewClient(cfg config.FetchConfig, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept-Encoding", "gzip, deflate")

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "edgar_client")),
	}
}

// FetchFiling downloads one filing document and returns its body text.
// A 403 is retried once with the fallback User-Agent; if the URL uses
// the XSL-rendered form it is retried once more against the raw
// document path.
func (c *Client) FetchFiling(ctx context.Context, url string) (string, error) {
	body, status, err := c.get(ctx, url, c.cfg.UserAgent)
	if err != nil {
		return "", err
	}
	if status == http.StatusForbidden {
		c.logger.Warn("request blocked, retrying with fallback identification",
			slog.String("url", url))
		body, status, err = c.get(ctx, url, c.cfg.FallbackUserAgent)
		if err != nil {
			return "", err
		}
	}
	if status != http.StatusOK && strings.Contains(url, "/xslF345X05/") {
		raw := strings.Replace(url, "/xslF345X05/", "/", 1)
		c.logger.Warn("retrying raw document path",
			slog.String("url", raw),
			slog.Int("status", status))
		body, status, err = c.get(ctx, raw, c.cfg.UserAgent)
		if err != nil {
			return "", err
		}
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, status)
	}
	return body, nil
}

// Download fetches one filing and stores it under destDir so a batch
// run can pick it up. The filename is the last URL path segment; the
// written path is returned.
func (c *Client) Download(ctx context.Context, rawURL, destDir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid filing URL %s: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("filing URL %s has no document name", rawURL)
	}

	body, err := c.FetchFiling(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}
	dest := filepath.Join(destDir, name)
	if err := os.WriteFile(dest, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("failed to write filing %s: %w", dest, err)
	}

	c.logger.Info("downloaded filing",
		slog.String("url", rawURL),
		slog.String("path", dest),
		slog.Int("bytes", len(body)))
	return dest, nil
}

func (c *Client) get(ctx context.Context, url, userAgent string) (string, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", 0, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", userAgent).
		Get(url)
	if err != nil {
		return "", 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	return resp.String(), resp.StatusCode(), nil
}
