package llm

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportr/reportr-go/internal/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestNewClientDisabledProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "none"

	client, err := NewClient(context.Background(), cfg, "irrelevant", testLogger())
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	_, err = client.Complete(context.Background(), sampleMessages())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNewClientWithoutKeyIsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "openai"

	client, err := NewClient(context.Background(), cfg, "", testLogger())
	require.NoError(t, err)
	assert.False(t, client.Enabled())
}

func TestNewClientOpenAI(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "openai"

	client, err := NewClient(context.Background(), cfg, "sk-test", testLogger())
	require.NoError(t, err)
	assert.True(t, client.Enabled())
}

func TestNewClientAzureRequiresEndpoint(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "azure"

	_, err := NewClient(context.Background(), cfg, "key", testLogger())
	assert.Error(t, err)
}

func TestNewClientAzureUsesDeploymentAsModel(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "azure"
	cfg.LLM.AzureEndpoint = "https://example.openai.azure.com/"
	cfg.LLM.AzureDeployment = "reportr"

	client, err := NewClient(context.Background(), cfg, "key", testLogger())
	require.NoError(t, err)
	assert.True(t, client.Enabled())
	assert.Equal(t, "reportr", client.model)
}

func TestNewClientUnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "oracle"

	_, err := NewClient(context.Background(), cfg, "key", testLogger())
	assert.Error(t, err)
}

func sampleMessages() []Message {
	return []Message{{Role: RoleUser, Content: "hello"}}
}
