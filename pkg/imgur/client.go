package imgur

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"imgurgrab/pkg/logger"
)

// ErrorType classifies imgur API failures.
type ErrorType string

const (
	ErrorTypeNetwork         ErrorType = "network"
	ErrorTypeInvalidResponse ErrorType = "invalid_response"
	ErrorTypeAuth            ErrorType = "auth"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeRateLimit       ErrorType = "rate_limit"
	ErrorTypeServerError     ErrorType = "server_error"
	ErrorTypeParsing         ErrorType = "parsing"
	ErrorTypeUnknown         ErrorType = "unknown"
)

// Error represents an imgur API error.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("imgur %s error (code %d): %s", e.Type, e.Code, e.Message)
}

// Client is an imgur API client. All API requests carry the application
// client ID as a bearer-style authorization header.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	maxRetries int
	logger     logger.Logger
}

// NewClient creates a new imgur API client authorized with the given
// application client ID.
func NewClient(clientID string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"Authorization": "Client-ID " + clientID,
			"Accept":        "application/json",
		},
		baseURL:    BaseURL,
		maxRetries: 3,
		logger:     log,
	}
}

// SetHeader sets a custom header for the client.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetBaseURL overrides the API base URL. Used by tests against mock servers.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetMaxRetries adjusts how often transient failures are retried.
func (c *Client) SetMaxRetries(n int) {
	if n >= 0 {
		c.maxRetries = n
	}
}

// doRequest performs an HTTP request with the configured headers.
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// doRequestWithRetry performs an HTTP request, retrying transport errors
// and retryable status codes with a linear backoff.
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.WarnWithFields("retrying HTTP request", map[string]interface{}{
				"url":     req.URL.String(),
				"attempt": attempt,
				"error":   lastErr.Error(),
			})
			time.Sleep(time.Second * time.Duration(attempt))
		}

		resp, err := c.doRequest(req)
		if err != nil {
			lastErr = err
			if apiErr, ok := err.(*Error); ok && apiErr.Type == ErrorTypeNetwork {
				continue
			}
			return nil, err
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = &Error{
				Type:    ErrorTypeServerError,
				Message: fmt.Sprintf("server returned status %d", resp.StatusCode),
				Code:    resp.StatusCode,
			}
			resp.Body.Close()
			continue
		}

		return resp, nil
	}

	c.logger.ErrorWithFields("max retries exceeded", map[string]interface{}{
		"url":         req.URL.String(),
		"max_retries": c.maxRetries,
		"last_error":  lastErr.Error(),
	})

	return nil, lastErr
}

// GetJSON performs a GET request and decodes the JSON response into target.
func (c *Client) GetJSON(url string, target interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return &Error{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    0,
		}
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}

		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return &Error{
			Type:    ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return nil
}

// checkResponseStatus maps HTTP response statuses onto typed errors.
func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return &Error{
			Type:    ErrorTypeAuth,
			Message: "client ID rejected",
			Code:    resp.StatusCode,
		}
	case http.StatusNotFound:
		return &Error{
			Type:    ErrorTypeNotFound,
			Message: "resource not found",
			Code:    resp.StatusCode,
		}
	case http.StatusTooManyRequests:
		return &Error{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit exceeded",
			Code:    resp.StatusCode,
		}
	default:
		if resp.StatusCode >= 500 {
			return &Error{
				Type:    ErrorTypeServerError,
				Message: "server error",
				Code:    resp.StatusCode,
			}
		}
		if resp.StatusCode >= 400 {
			return &Error{
				Type:    ErrorTypeUnknown,
				Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
				Code:    resp.StatusCode,
			}
		}
		return nil
	}
}

// FetchAlbum retrieves the metadata for one album. A response whose
// envelope reports failure is an invalid_response error.
func (c *Client) FetchAlbum(albumID string) (*Album, error) {
	url := GetAlbumURL(c.baseURL, albumID)

	c.logger.DebugWithFields("fetching album metadata", map[string]interface{}{
		"album_id": albumID,
		"url":      url,
	})

	var response albumResponse
	if err := c.GetJSON(url, &response); err != nil {
		return nil, err
	}

	if !response.Success || response.Status != http.StatusOK {
		return nil, &Error{
			Type:    ErrorTypeInvalidResponse,
			Message: "album metadata request was not successful",
			Code:    response.Status,
		}
	}

	return &response.Data, nil
}

// FetchAlbumImages retrieves an album's ordered image listing. An empty
// listing is not an error.
func (c *Client) FetchAlbumImages(albumID string) ([]Image, error) {
	url := GetAlbumImagesURL(c.baseURL, albumID)

	c.logger.DebugWithFields("fetching album image listing", map[string]interface{}{
		"album_id": albumID,
		"url":      url,
	})

	var response imageListResponse
	if err := c.GetJSON(url, &response); err != nil {
		return nil, err
	}

	if !response.Success || response.Status != http.StatusOK {
		return nil, &Error{
			Type:    ErrorTypeInvalidResponse,
			Message: "image listing request was not successful",
			Code:    response.Status,
		}
	}

	return response.Data, nil
}

// DownloadMedia opens a byte stream for the media at the given URL. The
// caller owns the returned reader and must close it. Media lives on the
// CDN, which wants no authorization header.
func (c *Client) DownloadMedia(mediaURL string) (io.ReadCloser, error) {
	c.logger.DebugWithFields("downloading media", map[string]interface{}{
		"url": mediaURL,
	})

	req, err := http.NewRequest(http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, &Error{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    0,
		}
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}

	if err := c.checkResponseStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}
