// Package aggregator talks to the open-banking aggregator REST API.
package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout = 60 * time.Second

	authPath         = "/auth"
	connectTokenPath = "/connect_token"
	itemsPath        = "/items/"
	accountsPath     = "/accounts"
	creditCardsPath  = "/credit-cards"
	loansPath        = "/loans"
	investmentsPath  = "/investments"
	transactionsPath = "/transactions"
)

// ErrUpstreamAuth is returned when the aggregator rejects the service
// credentials. Fatal for the whole request.
var ErrUpstreamAuth = errors.New("aggregator authentication failed")

// ErrItemResolution is returned when a connection item cannot be fetched
// (unknown, expired or otherwise unavailable). Fatal for that item's sync.
var ErrItemResolution = errors.New("aggregator item resolution failed")

// Client handles communication with the aggregator API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

var _ ClientInterface = (*Client)(nil)

func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Item represents one bank connection owned by a user.
type Item struct {
	ID           string    `json:"id"`
	ClientUserID string    `json:"clientUserId"`
	Status       string    `json:"status"`
	Connector    Connector `json:"connector"`
}

type Connector struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BankName returns the connector's display name, or a generic label
// when the aggregator omits it.
func (i *Item) BankName() string {
	if i.Connector.Name != "" {
		return i.Connector.Name
	}
	return "Banco"
}

type Account struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Subtype  string  `json:"subtype"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currencyCode"`
}

type CreditCard struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Balance        float64         `json:"balance"`
	CreditData     *CreditCardData `json:"creditData,omitempty"`
	MarketingName  string          `json:"marketingName"`
	Number         string          `json:"number"`
}

type CreditCardData struct {
	Brand                string  `json:"brand"`
	CreditLimit          float64 `json:"creditLimit"`
	AvailableCreditLimit float64 `json:"availableCreditLimit"`
	BalanceDueDate       string  `json:"balanceDueDate"`
	BalanceCloseDate     string  `json:"balanceCloseDate"`
}

type Loan struct {
	ID                  string   `json:"id"`
	ProductName         string   `json:"productName"`
	ProductType         string   `json:"productType"`
	ContractAmount      float64  `json:"contractAmount"`
	OutstandingBalance  float64  `json:"outstandingBalance"`
	InterestRate        float64  `json:"interestRate"`
	InstallmentAmount   float64  `json:"installmentAmount"`
	NumberOfInstallments *int    `json:"numberOfInstallments,omitempty"`
	PaidInstallments    *int     `json:"paidInstallments,omitempty"`
	MaturityDate        string   `json:"maturityDate"`
}

type Investment struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Balance      float64 `json:"balance"`
	AnnualRate   float64 `json:"annualRate"`
	MaturityDate string  `json:"maturityDate"`
}

type Transaction struct {
	ID              string  `json:"id"`
	Description     string  `json:"description"`
	DescriptionRaw  string  `json:"descriptionRaw"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Category        string  `json:"category"`
	CurrencyCode    string  `json:"currencyCode"`
}

// GetDate parses the provider transaction date. The aggregator sends
// RFC 3339 timestamps, occasionally date-only strings.
func (t *Transaction) GetDate() (time.Time, error) {
	if t.Date == "" {
		return time.Time{}, fmt.Errorf("transaction %s has no date", t.ID)
	}
	parsed, err := time.Parse(time.RFC3339, t.Date)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", t.Date)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date '%s': %w", t.Date, err)
		}
	}
	return parsed, nil
}

type authRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type authResponse struct {
	APIKey string `json:"apiKey"`
}

type connectTokenRequest struct {
	WebhookURL   string `json:"webhookUrl,omitempty"`
	ClientUserID string `json:"clientUserId"`
}

type connectTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// resultsEnvelope is the list wrapper the aggregator uses on every
// collection endpoint.
type resultsEnvelope[T any] struct {
	Results []T `json:"results"`
}

// Authenticate exchanges the service credentials for a short-lived API key.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	body, err := json.Marshal(authRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpstreamAuth, resp.StatusCode)
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("failed to decode auth response: %w", err)
	}
	if auth.APIKey == "" {
		return "", fmt.Errorf("%w: empty api key", ErrUpstreamAuth)
	}

	return auth.APIKey, nil
}

// CreateConnectToken requests a widget connect token bound to a user.
// The webhook URL registers this service for item event callbacks.
func (c *Client) CreateConnectToken(ctx context.Context, apiKey, webhookURL, clientUserID string) (string, error) {
	body, err := json.Marshal(connectTokenRequest{
		WebhookURL:   webhookURL,
		ClientUserID: clientUserID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal connect token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+connectTokenPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create connect token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("connect token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("connect token request returned status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	var token connectTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode connect token response: %w", err)
	}

	return token.AccessToken, nil
}

// GetItem fetches a connection item, including its connector metadata
// and the user the item belongs to.
func (c *Client) GetItem(ctx context.Context, apiKey, itemID string) (*Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+itemsPath+url.PathEscape(itemID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create item request: %w", err)
	}
	req.Header.Set("X-API-KEY", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("item request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: item %s returned status %d", ErrItemResolution, itemID, resp.StatusCode)
	}

	var item Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to decode item response: %w", err)
	}

	return &item, nil
}

// DeleteItem removes the connection upstream. A 404 is treated as
// success: the item is already gone.
func (c *Client) DeleteItem(ctx context.Context, apiKey, itemID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+itemsPath+url.PathEscape(itemID), nil)
	if err != nil {
		return fmt.Errorf("failed to create delete item request: %w", err)
	}
	req.Header.Set("X-API-KEY", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete item request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete item %s returned status %d", itemID, resp.StatusCode)
	}

	return nil
}

// ListAccounts returns the bank accounts under an item. An empty list
// is a valid response.
func (c *Client) ListAccounts(ctx context.Context, apiKey, itemID string) ([]Account, error) {
	return listByItem[Account](ctx, c, apiKey, accountsPath, itemID)
}

func (c *Client) ListCreditCards(ctx context.Context, apiKey, itemID string) ([]CreditCard, error) {
	return listByItem[CreditCard](ctx, c, apiKey, creditCardsPath, itemID)
}

func (c *Client) ListLoans(ctx context.Context, apiKey, itemID string) ([]Loan, error) {
	return listByItem[Loan](ctx, c, apiKey, loansPath, itemID)
}

func (c *Client) ListInvestments(ctx context.Context, apiKey, itemID string) ([]Investment, error) {
	return listByItem[Investment](ctx, c, apiKey, investmentsPath, itemID)
}

// ListTransactions returns the transactions of an account from the given
// date onward (YYYY-MM-DD).
func (c *Client) ListTransactions(ctx context.Context, apiKey, accountID string, from time.Time) ([]Transaction, error) {
	query := url.Values{}
	query.Set("accountId", accountID)
	query.Set("from", from.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+transactionsPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactions request: %w", err)
	}
	req.Header.Set("X-API-KEY", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transactions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transactions request for account %s returned status %d", accountID, resp.StatusCode)
	}

	var envelope resultsEnvelope[Transaction]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode transactions response: %w", err)
	}

	return envelope.Results, nil
}

func listByItem[T any](ctx context.Context, c *Client, apiKey, path, itemID string) ([]T, error) {
	query := url.Values{}
	query.Set("itemId", itemID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("X-API-KEY", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request for %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request for %s returned status %d", path, resp.StatusCode)
	}

	var envelope resultsEnvelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response for %s: %w", path, err)
	}

	return envelope.Results, nil
}

func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(data) == 0 {
		return "no body"
	}
	return string(data)
}
