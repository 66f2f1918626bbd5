package agents

import (
	"context"
	"strings"
	"testing"

	acp "github.com/coder/acp-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanoshell/nanoshell/pkg/acpclient"
)

func testMaker(ctx context.Context, session acp.Client) (*acpclient.Client, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(Config{ID: "b-agent", NewClient: testMaker}))
	require.NoError(t, r.Register(Config{ID: "a-agent", NewClient: testMaker}))

	_, ok := r.Get("a-agent")
	assert.True(t, ok)
	_, ok = r.Get("missing")
	assert.False(t, ok)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a-agent", list[0].ID, "listing is ordered by id")
	assert.Equal(t, "b-agent", list[1].ID)
}

func TestRegistry_Rejects(t *testing.T) {
	r := NewRegistry()

	assert.Error(t, r.Register(Config{NewClient: testMaker}), "missing id")
	assert.Error(t, r.Register(Config{ID: "no-maker"}), "missing client maker")

	require.NoError(t, r.Register(Config{ID: "dup", NewClient: testMaker}))
	assert.Error(t, r.Register(Config{ID: "dup", NewClient: testMaker}))
}

func TestWelcomeMessage_TrimsSingleLeadingNewline(t *testing.T) {
	cfg := Config{Welcome: func() string { return "\n\nWelcome!" }}

	msg := WelcomeMessage(cfg)
	assert.True(t, strings.HasPrefix(msg, banner))
	assert.True(t, strings.HasSuffix(msg, "\nWelcome!"),
		"exactly one leading newline is trimmed, not all of them")
}

func TestWelcomeMessage_NilProducer(t *testing.T) {
	assert.Equal(t, banner, WelcomeMessage(Config{}))
}

func TestNanocodeDefaults(t *testing.T) {
	cfg := Nanocode(nil)
	assert.Equal(t, "nanocode", cfg.ID)
	assert.NotEmpty(t, cfg.InstallInstructions)
	assert.NotNil(t, cfg.NewClient)
	assert.Equal(t, "nanocode", DefaultNanocodeCommand.Name)
	assert.Equal(t, []string{"acp"}, DefaultNanocodeCommand.Args)
}
