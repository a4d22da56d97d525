package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	require.NoError(t, root.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestResolveBuildVersion_WithBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/dmitrijs2005/gophprofile", Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2025-01-01T00:00:00Z"},
		},
	}

	v, c, d := resolveBuildVersion(info)
	assert.Equal(t, "v1.2.3", v)
	assert.Equal(t, "deadbeef", c)
	assert.Equal(t, "2025-01-01T00:00:00Z", d)
}

func TestResolveBuildVersion_NoInfo(t *testing.T) {
	v, c, d := resolveBuildVersion(nil)
	assert.Equal(t, "dev", v)
	assert.Equal(t, "dev", c)
	assert.Equal(t, "N/A", d)
}

func TestResolveBuildVersion_LinkerValuesWin(t *testing.T) {
	oldV, oldC, oldD := version, gitCommit, buildDate
	t.Cleanup(func() { version, gitCommit, buildDate = oldV, oldC, oldD })
	version, gitCommit, buildDate = "v9.9.9", "cafe", "2026-01-01"

	v, c, d := resolveBuildVersion(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}},
	})
	assert.Equal(t, "v9.9.9", v)
	assert.Equal(t, "cafe", c)
	assert.Equal(t, "2026-01-01", d)
}

func TestRootCmd_Flags(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"config", "db", "log-level", "log-backend", "log-format", "password-scheme"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
	for _, name := range []string{"register", "login", "logout", "reset-password", "profile", "edit-profile", "passwd", "orders", "status", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestVersionCmd_SkipsInit(t *testing.T) {
	out := runRoot(t, "version", "--db", filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	assert.Contains(t, out, "gophprofile ")
}

func TestRootCmd_SessionSurvivesAcrossInvocations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "profile.db")

	stubInputs(t, []string{"Ada", "Lovelace", "a@b.com", ""}, []string{"secret1", "secret1"})
	out := runRoot(t, "register", "--db", dbPath)
	assert.Contains(t, out, "Registration successful.")

	out = runRoot(t, "status", "--db", dbPath)
	assert.Contains(t, out, "Logged in as a@b.com.")

	out = runRoot(t, "orders", "--db", dbPath, "--status", "Processing")
	assert.Contains(t, out, "ORD-2024-002")
	assert.Contains(t, out, "ORD-2024-005")
	assert.NotContains(t, out, "ORD-2024-001")

	runRoot(t, "logout", "--db", dbPath)
	out = runRoot(t, "profile", "--db", dbPath)
	assert.Contains(t, out, "redirected to /login")
}

func TestRootCmd_RejectsUnknownScheme(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"status", "--db", filepath.Join(t.TempDir(), "p.db"), "--password-scheme", "rot13"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	require.Error(t, root.ExecuteContext(context.Background()))
}
