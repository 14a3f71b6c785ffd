// Package pinata pins JSON documents to IPFS, lists pins by metadata and
// signs private gateway URLs.
package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const DefaultBaseURL = "https://api.pinata.cloud"

var ErrEmptyResponse = errors.New("pinata returned an empty response")

type Config struct {
	JWT     string
	Gateway string
	BaseURL string
}

type Client interface {
	// PinJSON pins content under name and returns its CID.
	PinJSON(ctx context.Context, name string, content any, keyvalues map[string]string) (string, error)
	// SignedURL returns a gateway URL for cid valid for expires.
	SignedURL(ctx context.Context, cid string, expires time.Duration) (string, error)
	// ListPins returns pinned content whose metadata matches every keyvalue.
	ListPins(ctx context.Context, keyvalues map[string]string) ([]Pin, error)
	GatewayURL(cid string) string
}

// Pin is one row of the pin list.
type Pin struct {
	CID       string
	Name      string
	Size      int64
	PinnedAt  time.Time
	KeyValues map[string]string
}

type client struct {
	cfg  Config
	http *retryablehttp.Client
}

func New(cfg Config) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	hc := retryablehttp.NewClient()
	hc.RetryMax = 3
	hc.RetryWaitMin = 500 * time.Millisecond
	hc.RetryWaitMax = 5 * time.Second
	hc.HTTPClient.Timeout = 30 * time.Second
	hc.Logger = slog.Default()

	return &client{cfg: cfg, http: hc}
}

type pinJSONRequest struct {
	Content  any         `json:"pinataContent"`
	Metadata pinMetadata `json:"pinataMetadata"`
}

type pinMetadata struct {
	Name      string            `json:"name"`
	KeyValues map[string]string `json:"keyvalues,omitempty"`
}

type pinJSONResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

func (c *client) PinJSON(ctx context.Context, name string, content any, keyvalues map[string]string) (string, error) {
	start := time.Now()

	var resp pinJSONResponse
	err := c.post(ctx, "/pinning/pinJSONToIPFS", pinJSONRequest{
		Content:  content,
		Metadata: pinMetadata{Name: name, KeyValues: keyvalues},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("pinning json: %w", err)
	}
	if resp.IpfsHash == "" {
		return "", ErrEmptyResponse
	}

	slog.InfoContext(ctx, "pinned json to ipfs",
		"name", name,
		"cid", resp.IpfsHash,
		"size", resp.PinSize,
		"duration_ms", time.Since(start).Milliseconds())

	return resp.IpfsHash, nil
}

type signRequest struct {
	URL     string `json:"url"`
	Expires int64  `json:"expires"`
	Date    int64  `json:"date"`
	Method  string `json:"method"`
}

// Older API versions answer with url, current ones with data.
type signResponse struct {
	Data string `json:"data"`
	URL  string `json:"url"`
}

func (c *client) SignedURL(ctx context.Context, cid string, expires time.Duration) (string, error) {
	var resp signResponse
	err := c.post(ctx, "/v3/files/sign", signRequest{
		URL:     c.GatewayURL(cid),
		Expires: int64(expires / time.Second),
		Date:    time.Now().Unix(),
		Method:  http.MethodGet,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("signing url: %w", err)
	}

	signed := resp.Data
	if signed == "" {
		signed = resp.URL
	}
	if signed == "" {
		return "", ErrEmptyResponse
	}
	return signed, nil
}

// pinListPageLimit is the largest page the pin list endpoint serves.
const pinListPageLimit = 1000

type pinListResponse struct {
	Count int `json:"count"`
	Rows  []struct {
		IpfsPinHash string    `json:"ipfs_pin_hash"`
		Size        int64     `json:"size"`
		DatePinned  time.Time `json:"date_pinned"`
		Metadata    struct {
			Name      string         `json:"name"`
			KeyValues map[string]any `json:"keyvalues"`
		} `json:"metadata"`
	} `json:"rows"`
}

type keyvalueFilter struct {
	Value string `json:"value"`
	Op    string `json:"op"`
}

func (c *client) ListPins(ctx context.Context, keyvalues map[string]string) ([]Pin, error) {
	query := url.Values{}
	query.Set("status", "pinned")
	query.Set("pageLimit", strconv.Itoa(pinListPageLimit))
	if len(keyvalues) > 0 {
		filter := make(map[string]keyvalueFilter, len(keyvalues))
		for k, v := range keyvalues {
			filter[k] = keyvalueFilter{Value: v, Op: "eq"}
		}
		raw, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("encoding metadata filter: %w", err)
		}
		query.Set("metadata[keyvalues]", string(raw))
	}

	pins := []Pin{}
	for offset := 0; ; offset += pinListPageLimit {
		query.Set("pageOffset", strconv.Itoa(offset))

		var resp pinListResponse
		if err := c.get(ctx, "/data/pinList", query, &resp); err != nil {
			return nil, fmt.Errorf("listing pins: %w", err)
		}
		for _, row := range resp.Rows {
			pins = append(pins, Pin{
				CID:       row.IpfsPinHash,
				Name:      row.Metadata.Name,
				Size:      row.Size,
				PinnedAt:  row.DatePinned,
				KeyValues: stringValues(row.Metadata.KeyValues),
			})
		}
		if len(resp.Rows) < pinListPageLimit || len(pins) >= resp.Count {
			return pins, nil
		}
	}
}

func stringValues(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}

func (c *client) GatewayURL(cid string) string {
	gw := strings.TrimRight(c.cfg.Gateway, "/")
	if !strings.HasPrefix(gw, "http://") && !strings.HasPrefix(gw, "https://") {
		gw = "https://" + gw
	}
	return gw + "/ipfs/" + cid
}

func (c *client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	return c.do(req, out)
}

func (c *client) do(req *retryablehttp.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.cfg.JWT)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if res.StatusCode >= 300 {
		return &StatusError{StatusCode: res.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pinata returned status %d: %s", e.StatusCode, e.Body)
}
