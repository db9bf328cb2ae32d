// storage/remote_store.go
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
	"github.com/mihirzalavadiya/css-battle-showcase/utils"
)

// RemoteStore keeps the collection in a hosted JSON document (a json-server
// style bin): GET fetches the whole document, PUT replaces it. This is the
// serverless deployment's backend.
type RemoteStore struct {
	URL        string
	HTTPClient *http.Client
}

func NewRemoteStore(url string) *RemoteStore {
	return &RemoteStore{
		URL:        url,
		HTTPClient: utils.HTTPClient,
	}
}

func (s *RemoteStore) LoadAll(ctx context.Context) ([]models.Battle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrStorage, err)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrStorage, s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Document not created yet — same as an empty local file.
		return []models.Battle{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: unexpected status %d", ErrStorage, s.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrStorage, err)
	}
	if len(body) == 0 {
		return []models.Battle{}, nil
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrStorage, err)
	}
	if doc.Battles == nil {
		return []models.Battle{}, nil
	}
	return doc.Battles, nil
}

func (s *RemoteStore) SaveAll(ctx context.Context, battles []models.Battle) error {
	data, err := json.Marshal(document{Battles: battles})
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrStorage, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.URL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrStorage, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: PUT %s: %v", ErrStorage, s.URL, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: PUT %s: unexpected status %d", ErrStorage, s.URL, resp.StatusCode)
	}
	return nil
}
