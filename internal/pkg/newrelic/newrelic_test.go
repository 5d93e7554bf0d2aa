package newrelic

import (
	"context"
	"errors"
	"testing"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitNewRelic_Disabled(t *testing.T) {
	cfg := &models.Config{NewRelic: models.NewRelicConfig{Enabled: false, LicenseKey: "key"}}
	assert.Nil(t, InitNewRelic(cfg))

	cfg = &models.Config{NewRelic: models.NewRelicConfig{Enabled: true}}
	assert.Nil(t, InitNewRelic(cfg))
}

func TestWithSegmentAndReturn_NoTransaction(t *testing.T) {
	value, err := WithSegmentAndReturn(context.Background(), "auth/issue", func() (string, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", value)
}

func TestTraceUseCase_WithTransaction(t *testing.T) {
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("test-app"),
		newrelic.ConfigLicense("0000000000000000000000000000000000000000"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)

	txn := app.StartTransaction("test")
	defer txn.End()
	ctx := newrelic.NewContext(context.Background(), txn)

	errBoom := errors.New("boom")
	err = TraceUseCase(ctx, "auth/verifyMfa", func(ctx context.Context) error {
		assert.NotNil(t, newrelic.FromContext(ctx))
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
}
