package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// ErrContactsUnavailable is returned when the directory is not configured or
// its circuit is open. Callers degrade to manual entry instead of failing.
var ErrContactsUnavailable = errors.New("contact directory unavailable")

// DirectoryContact is one entry from the shared contact directory, used to
// prefill party forms.
type DirectoryContact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type contactsResponse struct {
	Contacts []DirectoryContact `json:"contacts"`
}

// ContactsClient queries the external contact directory. Lookups are wrapped
// in a circuit breaker so a down directory cannot slow every form load.
type ContactsClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

// NewContactsClient creates a contacts client. An empty baseURL returns a
// client whose lookups always report ErrContactsUnavailable.
func NewContactsClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *ContactsClient {
	var httpClient *resty.Client
	if baseURL != "" {
		httpClient = resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond).
			SetHeader("Accept", "application/json")
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "contacts-directory",
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &ContactsClient{
		http:    httpClient,
		breaker: breaker,
		logger:  logger,
	}
}

// Search looks up directory contacts matching the query.
func (c *ContactsClient) Search(ctx context.Context, query string) ([]DirectoryContact, error) {
	if c.http == nil {
		return nil, ErrContactsUnavailable
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var body contactsResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("q", query).
			SetResult(&body).
			Get("/api/v1/contacts")
		if err != nil {
			return nil, fmt.Errorf("contacts request failed: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("contacts request failed: status %d", resp.StatusCode())
		}
		return body.Contacts, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrContactsUnavailable
		}
		c.logger.WithError(err).Warn("Contact directory lookup failed")
		return nil, ErrContactsUnavailable
	}

	return result.([]DirectoryContact), nil
}
