package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClientHasNoTimeout(t *testing.T) {
	loader := NewBankLoader(nil, "http://example.invalid/banks")
	assert.Same(t, http.DefaultClient, loader.client)
	assert.Zero(t, loader.client.Timeout)
}

func TestLoadBankAfterDelayedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{"easy":[],"medium":[],"hard":[],"surprising":[]}`))
	}))
	t.Cleanup(srv.Close)

	bank, err := NewBankLoader(nil, srv.URL).LoadBank(context.Background(), "slow")
	require.NoError(t, err)
	assert.Equal(t, 0, bank.Size())
}
