package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/trackermeta/internal/app"
	"github.com/hyperifyio/trackermeta/internal/modarchive"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "internal", "modarchive", "testdata", name))
	require.NoError(t, err)
	return b
}

func newArchive(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		name := "not_found.html"
		switch {
		case q.Get("request") == "view_by_moduleid" && q.Get("query") == "88676":
			name = "detail.html"
		case q.Get("request") == "view_by_moduleid" && q.Get("query") == "66":
			name = "detail_bad_count.html"
		case q.Get("request") == "search" && q.Get("query") == "virtual-monotone.mod":
			name = "search.html"
		case q.Get("request") == "search" && q.Get("query") == "nothing.mod":
			name = "search_empty.html"
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(fixture(t, name))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// execute runs the CLI against srv and returns stdout.
func execute(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	base := []string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--rate", "0", "--timeout", "2s"}
	if srv != nil {
		base = append(base, "--base-url", srv.URL)
	}
	cmd.SetArgs(append(args, base...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGet_PrintsRecord(t *testing.T) {
	srv := newArchive(t)
	out, err := execute(t, srv, "get", "virtual-monotone.mod")
	require.NoError(t, err)
	require.Contains(t, out, "7th_dance.xm")
	require.Contains(t, out, "Ace & Base")
	require.Contains(t, out, modarchive.DownloadLink(88676, "7th_dance.xm"))
}

func TestGet_InstrumentTextOnly(t *testing.T) {
	srv := newArchive(t)
	out, err := execute(t, srv, "get", "--instrument-text", "virtual-monotone.mod")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "7th  Dance"), "got %q", out)
	require.Contains(t, out, "www.mp3.com/Yrde")
	require.NotContains(t, out, "md5")
}

func TestInfo_JSON(t *testing.T) {
	srv := newArchive(t)
	out, err := execute(t, srv, "info", "88676", "--format", "json")
	require.NoError(t, err)

	var rec modarchive.ModuleRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	require.Equal(t, uint32(88676), rec.ID)
	require.Equal(t, "XM", rec.Format)
	require.Equal(t, uint32(8), rec.ChannelCount)
}

func TestSearch_CSV(t *testing.T) {
	srv := newArchive(t)
	out, err := execute(t, srv, "search", "virtual-monotone.mod", "-f", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "88676,virtual-monotone.mod,"), lines[0])
	require.True(t, strings.HasPrefix(lines[2], "120301,virtual_monotone.xm,"), lines[2])
}

func TestSearch_EmptyIsNotAnError(t *testing.T) {
	srv := newArchive(t)
	out, err := execute(t, srv, "search", "nothing.mod")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestLink_Offline(t *testing.T) {
	out, err := execute(t, nil, "link", "61772", "7th_dance.xm")
	require.NoError(t, err)
	require.Equal(t, "https://api.modarchive.org/downloads.php?moduleid=61772#7th_dance.xm\n", out)
}

func TestExitCodes(t *testing.T) {
	srv := newArchive(t)

	_, err := execute(t, srv, "get", "nothing.mod")
	require.Error(t, err)
	require.Equal(t, exitNotFound, exitCode(err))

	_, err = execute(t, srv, "info", "12")
	require.Equal(t, exitNotFound, exitCode(err))

	_, err = execute(t, srv, "info", "66")
	require.True(t, modarchive.IsMalformed(err))
	require.Equal(t, exitFailure, exitCode(err))

	_, err = execute(t, srv, "info", "not-a-number")
	require.ErrorIs(t, err, errUsage)
	require.Equal(t, exitFailure, exitCode(err))

	_, err = execute(t, nil, "frobnicate")
	require.ErrorIs(t, err, errUsage)

	require.Equal(t, exitOK, exitCode(nil))
	require.Equal(t, exitFailure, exitCode(errors.New("boom")))
}

func TestNoArgsPrintsUsage(t *testing.T) {
	out, err := execute(t, nil)
	require.NoError(t, err)
	require.Contains(t, out, "Usage:")
	require.Contains(t, out, "Available Commands:")
	require.Contains(t, out, "search")
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "trackermeta.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: yaml\nfetch:\n  attempts: 4\n"), 0o644))

	t.Setenv(app.EnvFormat, "")
	t.Setenv(app.EnvAttempts, "")
	resolve := func(args ...string) app.Config {
		t.Helper()
		var cfg app.Config
		cmd, opts := buildRoot(&bytes.Buffer{})
		cmd.AddCommand(newProbeCmd(opts, &cfg))
		cmd.SetArgs(append([]string{"probe", "--env-file", filepath.Join(dir, "none.env"), "--config", cfgPath}, args...))
		require.NoError(t, cmd.Execute())
		return cfg
	}

	cfg := resolve()
	require.Equal(t, app.FormatYAML, cfg.Format)
	require.Equal(t, 4, cfg.Attempts)

	t.Setenv(app.EnvFormat, "json")
	cfg = resolve()
	require.Equal(t, app.FormatJSON, cfg.Format)

	cfg = resolve("--format", "CSV", "--attempts", "-1")
	require.Equal(t, app.FormatCSV, cfg.Format)
	require.Equal(t, -1, cfg.Attempts)
}

func TestConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte(app.EnvFormat+"=yaml\n"), 0o644))
	t.Setenv(app.EnvFormat, "")

	var cfg app.Config
	cmd, opts := buildRoot(&bytes.Buffer{})
	cmd.AddCommand(newProbeCmd(opts, &cfg))
	cmd.SetArgs([]string{"probe", "--env-file", envPath})
	require.NoError(t, cmd.Execute())
	require.Equal(t, app.FormatYAML, cfg.Format)
}

func TestConfig_InvalidFormat(t *testing.T) {
	_, err := execute(t, nil, "info", "1", "--format", "xml")
	require.Error(t, err)
	require.Equal(t, exitFailure, exitCode(err))
}

func TestOffsets_PrintAndWrite(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(in, []byte("spotlitShift: 1\n"), 0o644))
	outPath := filepath.Join(dir, "out", "offsets.json")

	out, err := execute(t, nil, "offsets", "--offsets", in, "--write", outPath)
	require.NoError(t, err)
	require.Contains(t, out, "spotlitShift     1")
	require.Contains(t, out, "instrumentBlock  1")

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var saved modarchive.Offsets
	require.NoError(t, json.Unmarshal(b, &saved))
	require.Equal(t, modarchive.Offsets{SpotlitShift: 1, InstrumentBlock: 1}, saved)
}

// newProbeCmd captures the resolved configuration without contacting the archive.
func newProbeCmd(opts *rootOptions, dst *app.Config) *cobra.Command {
	return &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			*dst = cfg
			return err
		},
	}
}
