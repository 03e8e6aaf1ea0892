package usda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const (
	DefaultBaseURL  = "https://api.nal.usda.gov/fdc/v1"
	DefaultDataType = "Survey (FNDDS)"
	DefaultPageSize = 3
	DefaultTimeout  = 15 * time.Second

	// DemoAPIKey is the public key used when none is configured. It is heavily rate limited.
	DemoAPIKey = "DEMO_KEY"

	searchPath = "/foods/search"
)

var (
	ErrRateLimited = errors.New("usda: rate limited")
	ErrNoResults   = errors.New("usda: no results")
)

type Config struct {
	BaseURL  string
	APIKey   string
	DataType string
	PageSize int
	Timeout  time.Duration
}

// Client searches FoodData Central. Each search makes at most two requests.
type Client struct {
	httpClient *resty.Client
	config     Config
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.APIKey == "" {
		config.APIKey = DemoAPIKey
	}
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(config.BaseURL)
	client.SetTimeout(config.Timeout)
	client.SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		config:     config,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// searchRequest is one variant of a search. The strict variant filters by data type,
// the broad variant drops the filter.
type searchRequest struct {
	query    string
	dataType string
}

func (client *Client) strictRequest(query string) searchRequest {
	return searchRequest{query: query, dataType: client.config.DataType}
}

func (client *Client) broadRequest(query string) searchRequest {
	return searchRequest{query: query}
}

func (client *Client) params(req searchRequest) map[string]string {
	params := map[string]string{
		"api_key":  client.config.APIKey,
		"query":    req.query,
		"pageSize": strconv.Itoa(client.config.PageSize),
	}
	if req.dataType != "" {
		params["dataType"] = req.dataType
	}
	return params
}

func (client *Client) search(ctx context.Context, req searchRequest) ([]Food, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParams(client.params(req)).
		Get(searchPath)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.StatusCode() == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	var body SearchResponse
	if err := json.Unmarshal([]byte(response.String()), &body); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return body.Foods, nil
}

// Search returns the first food matching query.
//
// The first attempt uses the strict request. When it finds nothing, the second attempt
// uses the broad request; when it fails, the second attempt repeats it unchanged.
// A rate-limited response ends the search immediately with ErrRateLimited.
func (client *Client) Search(ctx context.Context, query string) (Food, error) {
	req := client.strictRequest(query)
	var food Food
	err := retry.Do(
		func() error {
			foods, err := client.search(ctx, req)
			if errors.Is(err, ErrRateLimited) {
				return retry.Unrecoverable(err)
			}
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				req = client.broadRequest(query)
				return ErrNoResults
			}
			food = foods[0]
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return 0
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Debug("Retrying USDA search", "attempt", n+1, "query", query, "error", err)
		}),
	)
	if err != nil {
		return Food{}, err
	}
	return food, nil
}

// Resolve searches for name and normalizes the first result. Every failure is a miss.
func (client *Client) Resolve(ctx context.Context, name string) (Candidate, bool) {
	food, err := client.Search(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrRateLimited):
			slog.Default().Info("USDA search rate limited", "query", name)
		case errors.Is(err, ErrNoResults):
			slog.Default().Debug("USDA search found nothing", "query", name)
		default:
			slog.Default().Warn("USDA search failed", "query", name, "error", err)
		}
		return Candidate{}, false
	}
	return food.Normalize(), true
}
