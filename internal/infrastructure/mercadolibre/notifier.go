package mercadolibre

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/tu-usuario/tienda-pos/pkg/config"
)

// Client empuja actualizaciones de stock a la API de Mercado Libre.
// Es el colaborador best-effort del motor: quien lo invoca no espera ni
// propaga sus fallos.
type Client struct {
	http *resty.Client
}

// NewClient construye el cliente con la configuración de la app.
func NewClient(cfg config.MeLiConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Content-Type", "application/json")
	return &Client{http: http}
}

type stockUpdateBody struct {
	AvailableQuantity int64 `json:"available_quantity"`
}

// UpdateStock publica la nueva cantidad disponible de la publicación asociada
// al producto.
func (c *Client) UpdateStock(ctx context.Context, productID string, newStock int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(stockUpdateBody{AvailableQuantity: newStock}).
		SetPathParam("itemID", productID).
		Put("/items/{itemID}")
	if err != nil {
		return fmt.Errorf("meli update stock: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("meli update stock: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
