// Package enrichment talks to the two external collaborators: the
// fact-finder, which guesses an industry for a counterparty, and the
// category mapper, which picks an account from a candidate list. Both are
// black boxes with a narrow contract; the mapper's answer in particular is
// free text and is never trusted as structured data.
package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/classify"
)

// Observer receives enrichment call observations. May be nil.
type Observer interface {
	ObserveEnrichmentDuration(seconds float64)
	CountEnrichmentFailure(collaborator string)
}

// HTTPClient implements classify.Enricher over plain HTTP+JSON.
type HTTPClient struct {
	factFinderURL string
	mapperURL     string
	httpClient    *http.Client
	observer      Observer
	logger        zerolog.Logger
}

// NewHTTPClient creates a new collaborator client. The per-call deadline
// comes from the caller's context; the embedded client timeout is only a
// safety net.
func NewHTTPClient(factFinderURL, mapperURL string, observer Observer, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		factFinderURL: factFinderURL,
		mapperURL:     mapperURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		observer:      observer,
		logger:        logger,
	}
}

type factFindRequest struct {
	Description string `json:"description"`
}

type factFindResponse struct {
	Industry string `json:"industry"`
}

// FactFind asks the fact-finding collaborator for an industry guess.
func (c *HTTPClient) FactFind(ctx context.Context, query string) (string, error) {
	start := time.Now()

	body, err := c.post(ctx, c.factFinderURL, factFindRequest{Description: query})
	c.observe("fact_finder", start, err)
	if err != nil {
		return "", err
	}

	var parsed factFindResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		// A plain-text answer is acceptable from this collaborator too.
		return string(body), nil
	}
	return parsed.Industry, nil
}

type mapCategoryRequest struct {
	Industry string             `json:"industry"`
	Amount   string             `json:"amount"`
	Accounts []candidateAccount `json:"accounts"`
}

type candidateAccount struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// MapCategory asks the category mapper to pick an account. The raw response
// body is returned untouched; extraction happens downstream.
func (c *HTTPClient) MapCategory(ctx context.Context, industry string, amount decimal.Decimal, candidates []classify.CandidateAccount) (string, error) {
	request := mapCategoryRequest{
		Industry: industry,
		Amount:   amount.String(),
		Accounts: make([]candidateAccount, 0, len(candidates)),
	}
	for _, cand := range candidates {
		request.Accounts = append(request.Accounts, candidateAccount{ID: cand.ID, Code: cand.Code, Name: cand.Name})
	}

	start := time.Now()
	body, err := c.post(ctx, c.mapperURL, request)
	c.observe("category_mapper", start, err)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (c *HTTPClient) post(ctx context.Context, url string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("collaborator returned status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

func (c *HTTPClient) observe(collaborator string, start time.Time, err error) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveEnrichmentDuration(time.Since(start).Seconds())
	if err != nil {
		c.observer.CountEnrichmentFailure(collaborator)
	}
}
