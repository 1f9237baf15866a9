package appleapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"podscribe/internal/config"
)

const userAgent = "podscribe/0.1.0"

// ErrNoTranscript reports an episode without a published transcript.
var ErrNoTranscript = errors.New("appleapi: episode has no transcript")

// Asset describes a downloadable transcript for one episode.
type Asset struct {
	// Token is the catalog's transcript token; its last path segment is the
	// canonical TTML filename.
	Token string
	// URL is the direct download location of the TTML document.
	URL string
}

// Filename returns the TTML filename embedded in the asset token, or a name
// derived from the token itself when it has no path structure.
func (a Asset) Filename() string {
	if i := strings.LastIndex(a.Token, "/"); i >= 0 {
		return a.Token[i+1:]
	}
	return a.Token
}

// Client talks to the Apple Podcasts catalog and token services.
type Client struct {
	api        config.API
	httpClient *http.Client
}

// NewClient builds a catalog client from config.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.API.RequestTimeout) * time.Second
	return &Client{
		api:        cfg.API,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BearerToken returns the configured bearer token, minting one from the token
// service when none is configured directly.
func (c *Client) BearerToken(ctx context.Context) (string, error) {
	if token := strings.TrimSpace(c.api.BearerToken); token != "" {
		return token, nil
	}
	if c.api.RequestTimestamp == "" || c.api.ActionSignature == "" {
		return "", errors.New("appleapi: api.bearer_token or api.request_timestamp/api.action_signature must be configured")
	}

	endpoint := c.api.TokenURL + "?" + url.Values{
		"clientClass":    {"apple"},
		"clientId":       {"com.apple.podcasts.macos"},
		"os":             {"OS X"},
		"osVersion":      {"15.5"},
		"productVersion": {"1.1.0"},
		"version":        {"2"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("x-request-timestamp", c.api.RequestTimestamp)
	req.Header.Set("X-Apple-ActionSignature", c.api.ActionSignature)
	req.Header.Set("X-Apple-Store-Front", c.api.Storefront)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request api token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token service returned %s", resp.Status)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if body.Token == "" {
		return "", errors.New("token service returned an empty token")
	}
	return body.Token, nil
}

// TranscriptAsset looks up the transcript asset for an episode store track
// id. Returns ErrNoTranscript when the catalog has none.
func (c *Client) TranscriptAsset(ctx context.Context, episodeID int64) (*Asset, error) {
	token, err := c.BearerToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"%s/podcast-episodes/%d/transcripts?fields=ttmlToken,ttmlAssetUrls&l=en-US&with=entitlements",
		strings.TrimRight(c.api.CatalogURL, "/"), episodeID,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build transcript request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request transcript metadata: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned %s for episode %d", resp.Status, episodeID)
	}

	var body struct {
		Data []struct {
			Attributes struct {
				TTMLToken     string `json:"ttmlToken"`
				TTMLAssetURLs struct {
					TTML string `json:"ttml"`
				} `json:"ttmlAssetUrls"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode transcript metadata: %w", err)
	}
	if len(body.Data) == 0 || body.Data[0].Attributes.TTMLAssetURLs.TTML == "" {
		return nil, ErrNoTranscript
	}
	attrs := body.Data[0].Attributes
	return &Asset{Token: attrs.TTMLToken, URL: attrs.TTMLAssetURLs.TTML}, nil
}

// Download streams the asset's TTML document to outputPath.
func (c *Client) Download(ctx context.Context, asset *Asset, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.URL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download ttml: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ttml download returned %s", resp.Status)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(outputPath)
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return out.Close()
}

// FetchTranscript resolves and downloads the transcript for an episode.
// When outputPath is empty, the asset's own filename is used in the current
// directory. Returns the path written.
func (c *Client) FetchTranscript(ctx context.Context, episodeID int64, outputPath string) (string, error) {
	asset, err := c.TranscriptAsset(ctx, episodeID)
	if err != nil {
		return "", err
	}
	if outputPath == "" {
		outputPath = asset.Filename()
	}
	if err := c.Download(ctx, asset, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}
