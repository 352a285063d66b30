package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"daily-quiz-service/internal/domain"
)

// maxBankBytes bounds the response body read from the bank endpoint.
const maxBankBytes = 4 << 20

// BankLoader fetches bank documents with an HTTP GET of <endpoint>/<id>.
// No retries; the caller's context is the only deadline.
type BankLoader struct {
	client   *http.Client
	endpoint string
}

func NewBankLoader(client *http.Client, endpoint string) *BankLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &BankLoader{client: client, endpoint: strings.TrimRight(endpoint, "/")}
}

func (l *BankLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	target := l.endpoint + "/" + url.PathEscape(bankID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, domain.NewLoadError(target, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, domain.NewLoadError(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBankBytes))
		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.NewLoadError(target, fmt.Errorf("%w: status %d", domain.ErrBankNotFound, resp.StatusCode))
		}
		return nil, domain.NewLoadError(target, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var bank domain.Bank
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBankBytes)).Decode(&bank); err != nil {
		return nil, domain.NewLoadError(target, fmt.Errorf("parse json: %w", err))
	}
	if bank == nil {
		return nil, domain.NewLoadError(target, fmt.Errorf("%w: empty document", domain.ErrInvalidBank))
	}
	if err := bank.Validate(); err != nil {
		return nil, domain.NewLoadError(target, err)
	}
	return bank, nil
}
