package placeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultKakaoBaseURL is the Kakao Local API host.
	DefaultKakaoBaseURL = "https://dapi.kakao.com"
	// DefaultTimeout bounds a single provider call. Calls are never retried.
	DefaultTimeout = 10 * time.Second

	// MaxPageSize is the largest size the keyword search accepts.
	MaxPageSize = 15

	keywordSearchPath = "/v2/local/search/keyword.json"
)

// KakaoClient implements Client against the Kakao Local keyword search.
type KakaoClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// KakaoOption customises a KakaoClient.
type KakaoOption func(*KakaoClient)

// WithBaseURL points the client at another host, mostly for tests.
func WithBaseURL(baseURL string) KakaoOption {
	return func(c *KakaoClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) KakaoOption {
	return func(c *KakaoClient) {
		c.httpClient.Timeout = timeout
	}
}

// NewKakaoClient creates a client authenticated with a Kakao REST API key.
func NewKakaoClient(apiKey string, opts ...KakaoOption) *KakaoClient {
	c := &KakaoClient{
		apiKey:  apiKey,
		baseURL: DefaultKakaoBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type kakaoSearchResponse struct {
	Documents []Document `json:"documents"`
	Meta      struct {
		TotalCount int  `json:"total_count"`
		IsEnd      bool `json:"is_end"`
	} `json:"meta"`
}

// Search runs a keyword search. Any non-200 answer is returned as an error.
func (c *KakaoClient) Search(ctx context.Context, q Query) ([]Document, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, errors.New("kakao search: query is required")
	}

	params := url.Values{}
	params.Set("query", q.Text)
	params.Set("page", strconv.Itoa(max(q.Page, 1)))
	size := q.Size
	if size <= 0 || size > MaxPageSize {
		size = MaxPageSize
	}
	params.Set("size", strconv.Itoa(size))
	if q.Origin != nil {
		params.Set("x", strconv.FormatFloat(q.Origin.Lon, 'f', -1, 64))
		params.Set("y", strconv.FormatFloat(q.Origin.Lat, 'f', -1, 64))
		if q.RadiusMeters > 0 {
			params.Set("radius", strconv.Itoa(q.RadiusMeters))
		}
	}

	apiURL := c.baseURL + keywordSearchPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create kakao request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("kakao api error: %s - %s", resp.Status, string(body))
	}

	var result kakaoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode kakao response: %w", err)
	}
	return result.Documents, nil
}
