// Package identity resolves caller ids against the external user service.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"plazoleta-api/models"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound means the user service reported the id does not exist.
	ErrNotFound = errors.New("identity not found")
	// ErrUnavailable means the user service could not answer.
	ErrUnavailable = errors.New("identity service unavailable")
)

const usersPath = "/api/v1/usuarios/"

type userResponse struct {
	ID   int64  `json:"id"`
	Role string `json:"rol"`
}

// Client looks up identities over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger, opts ...Option) *Client {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetByID fetches the identity with the given id. It fails with ErrNotFound
// when the service answers 404 and with ErrUnavailable for every other failure.
func (c *Client) GetByID(ctx context.Context, id int64) (models.Identity, error) {
	entry := c.log.WithField("identity_id", id)
	url := c.baseURL + usersPath + strconv.FormatInt(id, 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if auth, ok := AuthorizationFrom(ctx); ok {
		req.Header.Set("Authorization", auth)
	}

	entry.Info("looking up identity in user service")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		entry.WithError(err).Error("user service call failed")
		return models.Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		entry.Warn("identity not found in user service")
		return models.Identity{}, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		entry.WithField("status", resp.StatusCode).Error("user service returned an error status")
		return models.Identity{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		entry.WithError(err).Error("user service returned a malformed body")
		return models.Identity{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if body.ID == 0 {
		entry.Error("user service response has no id")
		return models.Identity{}, fmt.Errorf("%w: response without id", ErrUnavailable)
	}

	ident := models.Identity{ID: body.ID, Role: models.ParseRole(body.Role)}
	entry.WithField("role", ident.Role.String()).Info("identity resolved")
	return ident, nil
}
