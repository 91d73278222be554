package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/riordanpawley/overlayctl/internal/config"
	"github.com/riordanpawley/overlayctl/internal/core/resolver"
	"github.com/riordanpawley/overlayctl/internal/domain"
	"github.com/riordanpawley/overlayctl/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(t *testing.T, mutate func(*config.Config)) *Dependencies {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	return NewDependencies(cfg, logging.Discard())
}

func TestResolve(t *testing.T) {
	deps := testDeps(t, nil)

	tests := []struct {
		name     string
		url      string
		location string
		outcome  string
		reason   string
		visible  bool
		stripped bool
	}{
		{
			name:     "no parameter",
			url:      "/settings",
			location: "/settings",
			outcome:  "nothing",
			reason:   resolver.ReasonNoSelection.String(),
		},
		{
			name:     "visible",
			url:      "/settings/billing?modal=billing",
			location: "/settings/billing?modal=billing",
			outcome:  "content",
			reason:   resolver.ReasonVisible.String(),
			visible:  true,
		},
		{
			name:     "show-only miss",
			url:      "/?modal=billing",
			location: "/?modal=billing",
			outcome:  "nothing",
			reason:   resolver.ReasonNotShown.String(),
		},
		{
			name:     "suppressed",
			url:      "/checkout?modal=promo",
			location: "/checkout?modal=promo",
			outcome:  "nothing",
			reason:   resolver.ReasonSuppressed.String(),
		},
		{
			name:     "unknown stripped",
			url:      "/a?x=1&modal=ghost#top",
			location: "/a?x=1#top",
			outcome:  "nothing",
			reason:   resolver.ReasonUnknownStripped.String(),
			stripped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Resolve(deps, tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.location, r.Location)
			assert.Equal(t, tt.outcome, r.Outcome)
			assert.Equal(t, tt.reason, r.Reason)
			assert.Equal(t, tt.visible, r.Visible)
			assert.Equal(t, tt.stripped, r.Stripped)
		})
	}
}

func TestResolveFallback(t *testing.T) {
	deps := testDeps(t, func(c *config.Config) {
		off := false
		c.StripUnknownID = &off
		c.Fallback = &config.FallbackConfig{Title: "Missing"}
	})

	r, err := Resolve(deps, "/?modal=ghost")
	require.NoError(t, err)

	assert.Equal(t, "fallback", r.Outcome)
	assert.Equal(t, "Missing", r.Content)
	assert.Equal(t, "/?modal=ghost", r.Location)
	assert.True(t, r.Visible)
}

func TestResolveInvalidURL(t *testing.T) {
	_, err := Resolve(testDeps(t, nil), "http://[::1")
	assert.Error(t, err)
}

func TestOpenAndClose(t *testing.T) {
	deps := testDeps(t, nil)

	r, err := Open(deps, "/settings?tab=2", "help", domain.Props{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, "/settings?tab=2&modal=help", r.Location)
	assert.Equal(t, domain.Props{"n": 1}, r.Props)

	// Opening replaces an existing value in place
	r, err = Open(deps, "/?modal=a&b=c", "help", nil)
	require.NoError(t, err)
	assert.Equal(t, "/?modal=help&b=c", r.Location)

	c, err := Close(deps, "/settings?modal=help&tab=2")
	require.NoError(t, err)
	assert.Equal(t, "/settings?tab=2", c.Location)
}

func TestOpenDoesNotValidateID(t *testing.T) {
	r, err := Open(testDeps(t, nil), "/", "not registered", nil)
	require.NoError(t, err)
	assert.Equal(t, "/?modal=not+registered", r.Location)
}

func TestCustomParameter(t *testing.T) {
	deps := testDeps(t, func(c *config.Config) { c.QueryParameter = "dialog" })

	r, err := Open(deps, "/?modal=keep", "help", nil)
	require.NoError(t, err)
	assert.Equal(t, "/?modal=keep&dialog=help", r.Location)
}

func TestList(t *testing.T) {
	items, err := List(testDeps(t, nil))
	require.NoError(t, err)

	require.Len(t, items, 4)
	assert.Equal(t, "help", items[0].ID)
	assert.Equal(t, "Help", items[0].Title)
	assert.Empty(t, items[0].Suppress)
	assert.Equal(t, "glob:/settings/**", items[1].ShowOnly)
	assert.Contains(t, items[2].Suppress, "ecmascript:")
	assert.Contains(t, items[3].ShowOnly, "cel:")
}

func TestParseData(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    domain.Props
		wantErr bool
	}{
		{name: "none", pairs: nil, want: nil},
		{name: "string", pairs: []string{"from=/settings"}, want: domain.Props{"from": "/settings"}},
		{name: "json number", pairs: []string{"n=3"}, want: domain.Props{"n": float64(3)}},
		{name: "json bool", pairs: []string{"ok=true"}, want: domain.Props{"ok": true}},
		{name: "value with equals", pairs: []string{"q=a=b"}, want: domain.Props{"q": "a=b"}},
		{name: "empty value", pairs: []string{"k="}, want: domain.Props{"k": ""}},
		{name: "missing equals", pairs: []string{"oops"}, wantErr: true},
		{name: "missing key", pairs: []string{"=v"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseData(tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// execute runs the root command against a temp config file
func execute(t *testing.T, cfgJSON string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(logging.EnvLogLevel, "error")

	path := filepath.Join(t.TempDir(), "overlayctl.json")
	require.NoError(t, os.WriteFile(path, []byte(cfgJSON), 0644))

	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", path}, args...))

	err := cmd.Execute()
	return out.String(), err
}

const testConfig = `{
	"version": 1,
	"overlays": [
		{"id": "help", "title": "Help"},
		{"id": "admin", "title": "Admin", "showOnly": {"engine": "expr", "pattern": "path startsWith '/admin'"}}
	]
}`

func TestResolveCommandJSON(t *testing.T) {
	out, err := execute(t, testConfig, "--json", "resolve", "/admin?modal=admin")
	require.NoError(t, err)

	var r ResolveResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "content", r.Outcome)
	assert.Equal(t, "admin", r.ID)
	assert.True(t, r.Present)
	assert.Equal(t, "Admin", r.Content)
}

func TestResolveCommandText(t *testing.T) {
	out, err := execute(t, testConfig, "resolve", "/?modal=admin")
	require.NoError(t, err)

	assert.Contains(t, out, "location:")
	assert.Contains(t, out, `"admin"`)
	assert.Contains(t, out, resolver.ReasonNotShown.String())
}

func TestResolveCommandStripWarning(t *testing.T) {
	out, err := execute(t, testConfig, "resolve", "/?modal=ghost")
	require.NoError(t, err)

	assert.Contains(t, out, `unknown id "ghost" removed`)
}

func TestOpenCommand(t *testing.T) {
	out, err := execute(t, testConfig, "open", "help", "--url", "/docs?page=2", "-d", "from=/docs")
	require.NoError(t, err)
	assert.Equal(t, "/docs?page=2&modal=help\n", out)

	out, err = execute(t, testConfig, "--json", "open", "help", "--data", "n=2")
	require.NoError(t, err)
	var r TransitionResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "/?modal=help", r.Location)
	assert.Equal(t, float64(2), r.Props["n"])
}

func TestOpenCommandBadData(t *testing.T) {
	_, err := execute(t, testConfig, "open", "help", "--data", "nope")
	assert.Error(t, err)
}

func TestCloseCommand(t *testing.T) {
	out, err := execute(t, testConfig, "close", "--url", "/x?modal=help&y=1")
	require.NoError(t, err)
	assert.Equal(t, "/x?y=1\n", out)
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, testConfig, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1. help")
	assert.Contains(t, out, "2. admin")
	assert.Contains(t, out, "expr:path startsWith '/admin'")

	out, err = execute(t, testConfig, "--json", "list")
	require.NoError(t, err)
	var items []OverlayInfo
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Len(t, items, 2)
}

func TestListCommandEmpty(t *testing.T) {
	out, err := execute(t, `{"overlays": []}`, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No overlays configured")
}

func TestBadConfig(t *testing.T) {
	_, err := execute(t, `{"overlays": [{"id": "x", "suppress": {"engine": "perl", "pattern": "."}}]}`, "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownEngine)
}

func TestRootCommandHelp(t *testing.T) {
	cmd := NewRootCmd("test")
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "overlayctl")
	for _, sub := range []string{"run", "resolve", "open", "close", "list"} {
		assert.Contains(t, buf.String(), sub)
	}
}

func TestRootCommandVersion(t *testing.T) {
	cmd := NewRootCmd("1.2.3")
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "1.2.3\n", buf.String())
}

func TestRootCommandInvalid(t *testing.T) {
	cmd := NewRootCmd("test")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"bogus"})

	assert.Error(t, cmd.Execute())
}
