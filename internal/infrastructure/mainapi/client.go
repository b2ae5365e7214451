// Package mainapi implementa el cliente HTTP hacia la autoridad central
// (main API): descarga de licencias firmadas y entrega de mutaciones del
// outbox. La autoridad identifica al tenant por el header X-Tenant-ID y
// autentica con Bearer token.
package mainapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resty.dev/v3"

	applicense "github.com/jcastano/erp-nodo-api/internal/application/license"
	appsync "github.com/jcastano/erp-nodo-api/internal/application/sync"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
)

var (
	_ applicense.Fetcher = (*Client)(nil)
	_ appsync.Deliverer  = (*Client)(nil)
)

type remoteLicense struct {
	Key       string  `json:"key"`
	Signature string  `json:"signature"`
	CompanyID *string `json:"companyId,omitempty"`
}

type licensesResponse struct {
	Licenses []remoteLicense `json:"licenses"`
}

type syncRequest struct {
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
}

// Client cliente resty hacia la main API.
type Client struct {
	rc *resty.Client
}

// New construye el cliente. timeout acota cada request (referencia: 10s por
// entrega de sincronización).
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{rc: rc}
}

// Close libera los recursos del cliente HTTP.
func (c *Client) Close() error {
	return c.rc.Close()
}

// FetchLicenses descarga las licencias firmadas del tenant.
// Cualquier error de transporte o respuesta no exitosa se devuelve como error;
// el caller decide loguear y no mutar estado.
func (c *Client) FetchLicenses(ctx context.Context, tenantID, token string) ([]applicense.RemoteLicense, error) {
	var out licensesResponse
	res, err := c.rc.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("X-Tenant-ID", tenantID).
		SetResult(&out).
		Get("/api/v1/licenses/")
	if err != nil {
		return nil, fmt.Errorf("mainapi: fetch licenses: %w", err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("mainapi: fetch licenses: status %s", res.Status())
	}
	licenses := make([]applicense.RemoteLicense, 0, len(out.Licenses))
	for _, l := range out.Licenses {
		licenses = append(licenses, applicense.RemoteLicense{
			Key:       l.Key,
			Signature: l.Signature,
			CompanyID: l.CompanyID,
		})
	}
	return licenses, nil
}

// Deliver entrega una mutación del outbox ({operation, data}) a la autoridad.
// La autoridad debe tolerar entregas duplicadas (at-least-once): un crash entre
// la aceptación remota y el Remove local provoca redelivery en el siguiente sync.
func (c *Client) Deliver(ctx context.Context, tenantID, token string, op entity.Operation, data json.RawMessage) error {
	res, err := c.rc.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("X-Tenant-ID", tenantID).
		SetBody(syncRequest{Operation: string(op), Data: data}).
		Post("/api/v1/sync/")
	if err != nil {
		return fmt.Errorf("mainapi: deliver %s: %w", op, err)
	}
	if !res.IsSuccess() {
		return fmt.Errorf("mainapi: deliver %s: status %s", op, res.Status())
	}
	return nil
}
