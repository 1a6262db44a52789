package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simonvc/fecledger/internal/fec"
	"github.com/simonvc/fecledger/internal/ledger"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateEntity(ctx context.Context, name, siret string) (*ledger.Entity, error) {
	body := map[string]any{"name": name, "siret": siret}
	var result ledger.Entity
	if err := c.post(ctx, "/api/v1/entities", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetEntity(ctx context.Context, id string) (*ledger.Entity, error) {
	var result ledger.Entity
	if err := c.get(ctx, "/api/v1/entities/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListEntities(ctx context.Context) ([]ledger.Entity, error) {
	var result []ledger.Entity
	if err := c.get(ctx, "/api/v1/entities", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateClient(ctx context.Context, entityID, nom string) (*ledger.Client, error) {
	body := map[string]any{"entity_id": entityID, "nom": nom}
	var result ledger.Client
	if err := c.post(ctx, "/api/v1/clients", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListClients(ctx context.Context, entityID string) ([]ledger.Client, error) {
	var result []ledger.Client
	if err := c.get(ctx, "/api/v1/entities/"+url.PathEscape(entityID)+"/clients", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DocumentInput describes a document to create. Nil totals are computed by
// the server from the lines.
type DocumentInput struct {
	EntityID string
	ClientID string
	Numero   string
	Type     ledger.DocumentType
	Status   ledger.DocumentStatus
	Date     time.Time
	DueDate  *time.Time
	Lines    []ledger.LineItem
	TotalHT  *decimal.Decimal
	TotalTVA *decimal.Decimal
	TotalTTC *decimal.Decimal
}

func (c *Client) CreateDocument(ctx context.Context, in DocumentInput) (*ledger.Document, error) {
	type lineReq struct {
		Description string          `json:"description"`
		Quantity    decimal.Decimal `json:"quantity"`
		UnitPriceHT decimal.Decimal `json:"unit_price_ht"`
		VATRate     decimal.Decimal `json:"vat_rate"`
	}
	lines := make([]lineReq, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = lineReq{Description: l.Description, Quantity: l.Quantity, UnitPriceHT: l.UnitPriceHT, VATRate: l.VATRate}
	}
	body := map[string]any{
		"entity_id": in.EntityID,
		"client_id": in.ClientID,
		"numero":    in.Numero,
		"type":      in.Type,
		"status":    in.Status,
		"date":      in.Date.Format(ledger.DateLayout),
		"lines":     lines,
	}
	if in.DueDate != nil {
		body["due_date"] = in.DueDate.Format(ledger.DateLayout)
	}
	if in.TotalHT != nil {
		body["total_ht"] = *in.TotalHT
	}
	if in.TotalTVA != nil {
		body["total_tva"] = *in.TotalTVA
	}
	if in.TotalTTC != nil {
		body["total_ttc"] = *in.TotalTTC
	}

	var result ledger.Document
	if err := c.post(ctx, "/api/v1/documents", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListDocuments(ctx context.Context, entityID string, typ ledger.DocumentType) ([]ledger.Document, error) {
	params := url.Values{}
	if entityID != "" {
		params.Set("entity_id", entityID)
	}
	if typ != "" {
		params.Set("type", string(typ))
	}
	var result []ledger.Document
	if err := c.get(ctx, "/api/v1/documents?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetDocument(ctx context.Context, id string) (*ledger.Document, error) {
	var result ledger.Document
	if err := c.get(ctx, "/api/v1/documents/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RecordPayment(ctx context.Context, documentID string, amount decimal.Decimal, method ledger.PaymentMethod, date time.Time) (*ledger.Payment, error) {
	body := map[string]any{
		"amount": amount,
		"method": method,
		"date":   date.Format(ledger.DateLayout),
	}
	var result ledger.Payment
	if err := c.post(ctx, "/api/v1/documents/"+url.PathEscape(documentID)+"/payments", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FECFile is a downloaded FEC with the filename the server assigned.
type FECFile struct {
	Name      string
	Content   string
	Documents int
	Lines     int
}

func (c *Client) ExportFEC(ctx context.Context, entityID string, start, end time.Time) (*FECFile, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/fec?"+periodParams(entityID, start, end), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, responseError(resp.StatusCode, bodyBytes)
	}

	f := &FECFile{Content: string(bodyBytes)}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		f.Name = params["filename"]
	}
	f.Documents, _ = strconv.Atoi(resp.Header.Get("X-FEC-Documents"))
	f.Lines, _ = strconv.Atoi(resp.Header.Get("X-FEC-Lines"))
	return f, nil
}

func (c *Client) Stats(ctx context.Context, entityID string, start, end time.Time) (*ledger.Stats, error) {
	var result ledger.Stats
	if err := c.get(ctx, "/api/v1/fec/stats?"+periodParams(entityID, start, end), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate runs the server-side checks over an FEC payload.
func (c *Client) Validate(ctx context.Context, content string) (*fec.Report, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/fec/validate", strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	var result fec.Report
	if err := c.doRequest(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Chart(ctx context.Context) ([]ledger.Account, error) {
	var result []ledger.Account
	if err := c.get(ctx, "/api/v1/chart", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Journals(ctx context.Context) ([]ledger.Journal, error) {
	var result []ledger.Journal
	if err := c.get(ctx, "/api/v1/journals", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/journals", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func periodParams(entityID string, start, end time.Time) string {
	params := url.Values{}
	params.Set("entity_id", entityID)
	params.Set("start", start.Format(ledger.DateLayout))
	params.Set("end", end.Format(ledger.DateLayout))
	return params.Encode()
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

type apiError struct {
	Error string `json:"error"`
}

// StatusError is returned for any response with a 4xx or 5xx status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Code, e.Message)
}

func responseError(code int, body []byte) error {
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return &StatusError{Code: code, Message: apiErr.Error}
	}
	return &StatusError{Code: code, Message: string(body)}
}

func (c *Client) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return responseError(resp.StatusCode, bodyBytes)
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
