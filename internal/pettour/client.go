package pettour

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"daytrip/internal/models"
)

const (
	// DefaultBaseURL is the Korea Tourism Organization open-data host.
	DefaultBaseURL = "http://apis.data.go.kr"

	syncListPath = "/B551011/KorPetTourService/petTourSyncList"
	pageSize     = 10000
)

// Client fetches pet-friendly spots from the KorPetTourService API.
type Client struct {
	serviceKey string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. baseURL may be empty for DefaultBaseURL and a
// non-positive timeout selects one minute.
func NewClient(serviceKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		serviceKey: serviceKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type syncListResponse struct {
	Items []syncItem `xml:"body>items>item"`
}

type syncItem struct {
	ContentID     string `xml:"contentid"`
	Title         string `xml:"title"`
	Addr1         string `xml:"addr1"`
	Addr2         string `xml:"addr2"`
	AreaCode      string `xml:"areacode"`
	SigunguCode   string `xml:"sigungucode"`
	MapX          string `xml:"mapx"`
	MapY          string `xml:"mapy"`
	Tel           string `xml:"tel"`
	FirstImage    string `xml:"firstimage"`
	ContentTypeID string `xml:"contenttypeid"`
	Cat1          string `xml:"cat1"`
	Cat2          string `xml:"cat2"`
	Cat3          string `xml:"cat3"`
	Overview      string `xml:"overview"`
	CreatedTime   string `xml:"createdtime"`
	ModifiedTime  string `xml:"modifiedtime"`
}

// FetchAll downloads the full sync list in one page.
func (c *Client) FetchAll(ctx context.Context) ([]models.PetTourSpot, error) {
	params := url.Values{}
	params.Set("numOfRows", strconv.Itoa(pageSize))
	params.Set("pageNo", "1")
	params.Set("_type", "xml")
	params.Set("MobileOS", "ETC")
	params.Set("MobileApp", "PetTrip")

	// The portal hands out service keys already URL-encoded.
	apiURL := c.baseURL + syncListPath + "?serviceKey=" + c.serviceKey + "&" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("pet tour api error: %s - %s", resp.Status, string(body))
	}

	var result syncListResponse
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	spots := make([]models.PetTourSpot, 0, len(result.Items))
	for _, it := range result.Items {
		spots = append(spots, models.PetTourSpot{
			ContentID:     strings.TrimSpace(it.ContentID),
			Title:         it.Title,
			Addr1:         it.Addr1,
			Addr2:         it.Addr2,
			AreaCode:      it.AreaCode,
			SigunguCode:   it.SigunguCode,
			MapX:          parseCoord(it.MapX),
			MapY:          parseCoord(it.MapY),
			Tel:           it.Tel,
			FirstImage:    it.FirstImage,
			ContentTypeID: it.ContentTypeID,
			Cat1:          it.Cat1,
			Cat2:          it.Cat2,
			Cat3:          it.Cat3,
			Overview:      it.Overview,
			CreatedTime:   it.CreatedTime,
			ModifiedTime:  it.ModifiedTime,
		})
	}
	return spots, nil
}

// parseCoord treats blank or malformed values as 0.
func parseCoord(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}
