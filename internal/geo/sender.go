package geo

import (
	"bytes"
	"context"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

// sendToEndpoint posts p in the background. The call has its own deadline
// and its outcome is discarded.
func (s *Service) sendToEndpoint(cfg Config, p *Payload) {
	if cfg.Endpoint == "" {
		return
	}
	body, err := json.Marshal(p)
	if err != nil {
		return
	}

	s.sends.Add(1)
	go func() {
		defer s.sends.Done()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Endpoint, bytes.NewReader(body))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
}
