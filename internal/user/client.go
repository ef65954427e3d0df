package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPUserRepository fetches users and posts from a JSON REST upstream
// exposing /users/{id} and /posts?userId={id}.
type HTTPUserRepository struct {
	baseURL string
	client  *http.Client
}

func NewHTTPUserRepository(baseURL string, timeout time.Duration) UserRepositoryInterface {
	return &HTTPUserRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *HTTPUserRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	endpoint := fmt.Sprintf("%s/users/%d", r.baseURL, id)

	var u User
	status, err := r.getJSON(ctx, endpoint, &u)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrUserNotFound
	}

	return &u, nil
}

func (r *HTTPUserRepository) GetPostsByUser(ctx context.Context, userID int64) ([]Post, error) {
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))
	endpoint := r.baseURL + "/posts?" + query.Encode()

	posts := []Post{}
	status, err := r.getJSON(ctx, endpoint, &posts)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || posts == nil {
		return []Post{}, nil
	}

	return posts, nil
}

// getJSON issues a GET and decodes a 200 body into out. A 404 is returned as a
// status with no error so callers can decide what absence means.
func (r *HTTPUserRepository) getJSON(ctx context.Context, endpoint string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return 0, ctx.Err()
		}
		logrus.WithError(err).WithField("url", endpoint).Warn("Upstream request failed")
		return 0, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, fmt.Errorf("%w: decode upstream response: %v", ErrServiceUnavailable, err)
		}
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		logrus.WithFields(logrus.Fields{
			"url":    endpoint,
			"status": resp.StatusCode,
		}).Warn("Upstream returned error status")
		return 0, fmt.Errorf("%w: upstream returned %d", ErrServiceUnavailable, resp.StatusCode)
	default:
		return 0, fmt.Errorf("unexpected upstream status %d for %s", resp.StatusCode, endpoint)
	}
}
