package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/finauth/pkg/metrics"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.RecordOutcome("signup", "ok")
	c.RecordOutcome("signup", "ok")
	c.RecordOutcome("login", "InvalidCredential")
	c.RecordWarning("profile_upsert")
	c.ObserveProviderCall("sign_in", 120*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "finauth_auth_outcomes_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "two label sets")

	count, err = testutil.GatherAndCount(reg, "finauth_provider_call_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	c.RecordWarning("send_verification")

	srv := httptest.NewServer(metrics.Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `finauth_auth_warnings_total{step="send_verification"} 1`)
}
