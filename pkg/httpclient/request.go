package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	// DefaultMaxResponseSize is the default maximum response body size (10MB).
	DefaultMaxResponseSize int64 = 10 * 1024 * 1024
)

var (
	// ErrResponseTooLarge is returned when decoding the response body fails
	// after reading past the maximum size.
	ErrResponseTooLarge = errors.New("response body exceeds maximum allowed size")
)

// MakeRequest performs an HTTP request and decodes the response.
// The response body is limited to DefaultMaxResponseSize (10MB) to prevent memory exhaustion.
func MakeRequest[TSuccess any, TError any](ctx context.Context, client HTTPClient, method, url string, headers map[string]string, payload io.Reader) (*TSuccess, *TError, error) {
	return MakeRequestWithLimit[TSuccess, TError](ctx, client, method, url, headers, payload, DefaultMaxResponseSize)
}

// MakeRequestWithLimit performs an HTTP request with a custom response body size limit.
// Set maxBodySize to 0 or negative for no limit (not recommended).
func MakeRequestWithLimit[TSuccess any, TError any](ctx context.Context, client HTTPClient, method, url string, headers map[string]string, payload io.Reader, maxBodySize int64) (*TSuccess, *TError, error) {
	request, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, nil, err
	}

	for key, value := range headers {
		request.Header.Add(key, value)
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, nil, err
	}

	if response != nil {
		defer func() {
			_ = response.Body.Close()
		}()
	}

	// Limit the response body size to prevent memory exhaustion attacks
	var bodyReader io.Reader = response.Body
	var limited *io.LimitedReader
	if maxBodySize > 0 {
		limited = &io.LimitedReader{R: response.Body, N: maxBodySize + 1}
		bodyReader = limited
	}
	decodeErr := func(err error) error {
		if limited != nil && limited.N <= 0 {
			return ErrResponseTooLarge
		}
		return err
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		var errorResponse *TError
		if err := json.NewDecoder(bodyReader).Decode(&errorResponse); err != nil {
			return nil, nil, decodeErr(err)
		}
		return nil, errorResponse, nil
	}

	var successResponse *TSuccess
	if err := json.NewDecoder(bodyReader).Decode(&successResponse); err != nil {
		return nil, nil, decodeErr(err)
	}
	return successResponse, nil, nil
}
