// client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
	"github.com/mihirzalavadiya/css-battle-showcase/utils"
)

// BattleClient mirrors the five repository operations over the HTTP API.
// After every mutation it re-fetches the full list and broadcasts it to
// subscribers, so views never patch state incrementally.
type BattleClient struct {
	BaseURL    string // e.g. "http://localhost:3001/api/battles"
	HTTPClient *http.Client

	broadcaster
}

func New(baseURL string) *BattleClient {
	return &BattleClient{
		BaseURL:    baseURL,
		HTTPClient: utils.HTTPClient,
	}
}

// Subscribe registers a view callback; the returned func unregisters it and
// is idempotent.
func (c *BattleClient) Subscribe(fn func([]models.Battle)) func() {
	return c.subscribe(fn)
}

func (c *BattleClient) GetBattles(ctx context.Context) ([]models.Battle, error) {
	var battles []models.Battle
	if err := c.do(ctx, http.MethodGet, c.BaseURL, nil, &battles); err != nil {
		return nil, err
	}
	if battles == nil {
		battles = []models.Battle{}
	}
	return battles, nil
}

func (c *BattleClient) GetBattleByID(ctx context.Context, id string) (models.Battle, error) {
	var battle models.Battle
	err := c.do(ctx, http.MethodGet, c.BaseURL+"/"+id, nil, &battle)
	return battle, err
}

func (c *BattleClient) AddBattle(ctx context.Context, input models.BattleInput) (models.Battle, error) {
	var battle models.Battle
	if err := c.do(ctx, http.MethodPost, c.BaseURL, input, &battle); err != nil {
		return models.Battle{}, err
	}
	return battle, c.refresh(ctx)
}

func (c *BattleClient) UpdateBattle(ctx context.Context, id string, input models.BattleUpdate) (models.Battle, error) {
	var battle models.Battle
	if err := c.do(ctx, http.MethodPut, c.BaseURL+"/"+id, input, &battle); err != nil {
		return models.Battle{}, err
	}
	return battle, c.refresh(ctx)
}

func (c *BattleClient) DeleteBattle(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, c.BaseURL+"/"+id, nil, nil); err != nil {
		return err
	}
	return c.refresh(ctx)
}

// refresh re-fetches the authoritative list and notifies subscribers.
func (c *BattleClient) refresh(ctx context.Context) error {
	battles, err := c.GetBattles(ctx)
	if err != nil {
		return fmt.Errorf("refresh after mutation: %w", err)
	}
	c.notify(battles)
	return nil
}

func (c *BattleClient) do(ctx context.Context, method, url string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Surface the server's message verbatim rather than reinterpreting.
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return errors.New(apiErr.Error)
		}
		return fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
