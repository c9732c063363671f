package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/andy/hotelmgr/internal/domain"
)

const clientsPath = "/clientes"

// ClientService is the /clientes resource of the backend
type ClientService struct {
	client *Client
}

// List returns every client record
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, clientsPath, nil)
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0)
	if err := decodeJSON(resp, &clients, ""); err != nil {
		return nil, err
	}
	// A record without an id cannot be edited or deleted
	for i, c := range clients {
		if c.ID.IsZero() {
			return nil, &DecodeError{Err: fmt.Errorf("client at index %d has no id", i)}
		}
	}
	return clients, nil
}

// Create registers a new client
func (s *ClientService) Create(ctx context.Context, draft domain.ClientDraft) (domain.Client, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, clientsPath, draft)
	if err != nil {
		return domain.Client{}, err
	}

	var created domain.Client
	if err := s.decodeSaved(resp, &created, ""); err != nil {
		return domain.Client{}, err
	}
	return created, nil
}

// Update replaces the editable fields of client id
func (s *ClientService) Update(ctx context.Context, id string, draft domain.ClientDraft) (domain.Client, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPut, clientPath(id), draft)
	if err != nil {
		return domain.Client{}, err
	}

	var updated domain.Client
	if err := s.decodeSaved(resp, &updated, id); err != nil {
		return domain.Client{}, err
	}
	return updated, nil
}

// Delete removes client id
func (s *ClientService) Delete(ctx context.Context, id string) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, clientPath(id), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, id)
}

// decodeSaved decodes the echo of a create or update. The backend has
// already stored the record once it answered 2xx, so a body that is not a
// client is logged and the zero Client returned.
func (s *ClientService) decodeSaved(resp *http.Response, target *domain.Client, id string) error {
	status := resp.StatusCode
	err := decodeJSON(resp, target, id)

	var derr *DecodeError
	if errors.As(err, &derr) {
		s.client.Logger.Warn("ignoring undecodable response body",
			slog.Int("status", status),
			slog.String("id", id),
			slog.Any("error", err),
		)
		*target = domain.Client{}
		return nil
	}
	return err
}

func clientPath(id string) string {
	return clientsPath + "/" + url.PathEscape(id)
}
