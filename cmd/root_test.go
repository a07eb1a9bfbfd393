package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uaforge/uaforge/internal/config"
	"github.com/uaforge/uaforge/internal/engine"
	"github.com/uaforge/uaforge/internal/persona"
)

type fixedFetcher struct{}

func (fixedFetcher) Fetch(context.Context) (persona.CorpusDataset, error) {
	return persona.CorpusDataset{
		Records: []persona.CorpusRecord{
			{Browser: persona.BrowserFirefox, Version: "142.0", OS: "Linux",
				Device: persona.DeviceDesktop, Weight: 1,
				UserAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:142.0) Gecko/20100101 Firefox/142.0"},
		},
		Retrieved: time.Now(),
		Source:    persona.SourceNetwork,
	}, nil
}

type mockApp struct {
	engine *engine.Engine
}

func (m *mockApp) Close() { _ = m.engine.Close() }

func (m *mockApp) Logger() *zap.Logger { return zap.NewNop() }

func (m *mockApp) Engine() *engine.Engine { return m.engine }

func (m *mockApp) Config() config.Config {
	cfg, _ := config.Load("")
	return cfg
}

func withMockApp(t *testing.T) {
	t.Helper()
	original := newApp
	newApp = func(ctx context.Context) (App, error) {
		eng, err := engine.New(ctx, engine.Config{}, engine.WithFetcher(fixedFetcher{}))
		if err != nil {
			return nil, err
		}
		return &mockApp{engine: eng}, nil
	}
	t.Cleanup(func() { newApp = original })
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestIdentityCommand(t *testing.T) {
	withMockApp(t)

	out, err := runCommand(t, "identity")
	require.NoError(t, err)
	assert.Contains(t, out, "Firefox/142.0")
}

func TestIdentityCommand_Count(t *testing.T) {
	withMockApp(t)

	out, err := runCommand(t, "identity", "--count", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
}

func TestHeadersCommand(t *testing.T) {
	withMockApp(t)

	out, err := runCommand(t, "headers", "https://example.com/")
	require.NoError(t, err)
	assert.Contains(t, out, "user-agent: Mozilla/5.0")
	assert.Contains(t, out, "sec-fetch-mode: navigate")
}

func TestHeadersCommand_BadURL(t *testing.T) {
	withMockApp(t)

	_, err := runCommand(t, "headers", "ftp://example.com/")
	assert.Error(t, err)
}

func TestCrawlerCommand(t *testing.T) {
	withMockApp(t)

	out, err := runCommand(t, "crawler", "google")
	require.NoError(t, err)
	assert.Contains(t, out, "Googlebot")

	_, err = runCommand(t, "crawler", "altavista")
	assert.Error(t, err)
}
