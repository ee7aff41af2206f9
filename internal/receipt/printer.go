package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultEndpoint = "/api/printer/print"

var ErrPrinterFailed = errors.New("printer api failed")

type Printer interface {
	Print(ctx context.Context, p Print) error
}

// Sink is an in-process printer that hands every print to a callback.
type Sink func(Print)

func (s Sink) Print(ctx context.Context, p Print) error {
	s(p)
	return nil
}

// Multi prints to every printer in order and joins their errors.
type Multi []Printer

func (m Multi) Print(ctx context.Context, p Print) error {
	var errs []error
	for _, printer := range m {
		if err := printer.Print(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// HTTP posts prints as JSON to a remote printer endpoint.
type HTTP struct {
	client   *http.Client
	endpoint string
}

func NewHTTP(endpoint string, client *http.Client) *HTTP {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTP{client: client, endpoint: endpoint}
}

func (h *HTTP) Print(ctx context.Context, p Print) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("unable to encode print: %w", err)
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, h.endpoint, bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("unable to create print request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPrinterFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrPrinterFailed, resp.StatusCode)
	}
	return nil
}
