// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/dvbchannels/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validList = `# cable
0   498000000 6900000 2 3 "Demo" 3 "DVB-C" -1 -1 101 256 -1 -1 0
3 57028615 2 "KCET" 7 "ATSC" -1 1 3 48 49 52 1
`

const canonicalList = `# cable
0 498000000 6900000 2 3 "Demo" 3 "DVB-C" -1 -1 101 256 -1 -1 0
3 57028615 2 "KCET" 7 "ATSC" -1 1 3 48 49 52 1
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "channels.dvb")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Usage:")

	code, _, stderr = runCLI("frobnicate")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)

	code, stdout, _ := runCLI("-version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "commit:")
}

func TestValidate(t *testing.T) {
	code, stdout, _ := runCLI("validate", "-f", writeFile(t, validList))
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "2 channels, 2 transponders")

	bad := writeFile(t, validList+"0 498000000 6900000 9 3 \"Bad\" 4 \"DVB-C\" -1 -1 1 2 -1 -1 0\n")
	code, _, stderr := runCLI("validate", "-f", bad)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, "1 invalid line(s)")

	code, _, stderr = runCLI("validate", "-fail-fast", "-f", bad)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, bad+":4")

	code, _, _ = runCLI("validate")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("validate", "-f", bad, "extra")
	assert.Equal(t, exitUsage, code)
}

func TestFmt(t *testing.T) {
	path := writeFile(t, validList)

	code, stdout, _ := runCLI("fmt", "-f", path)
	require.Equal(t, exitOK, code)
	assert.Equal(t, canonicalList, stdout)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, validList, string(raw), "file untouched without -w")

	code, _, _ = runCLI("fmt", "-w", "-f", path)
	require.Equal(t, exitOK, code)
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, canonicalList, string(raw))
}

func TestFmt_WriteKeepsComments(t *testing.T) {
	content := "# Kabel Deutschland, scanned 2024-01-12\n\n" + canonicalList[len("# cable\n"):] + "# end\n"
	path := writeFile(t, content)

	code, _, _ := runCLI("fmt", "-w", "-f", path)
	require.Equal(t, exitOK, code)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))
}

func TestFmt_RefusesInvalidInput(t *testing.T) {
	path := writeFile(t, "garbage\n")
	code, _, _ := runCLI("fmt", "-w", "-f", path)
	assert.Equal(t, exitInvalid, code)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "garbage\n", string(raw))
}

func TestServe_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("channelFile: x\nbogus: 1\n"), 0o600))

	code, _, stderr := runCLI("serve", "-config", cfgPath)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, "Configuration error")
}

func TestServe_RunsUntilCancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := config.Default()
	cfg.ChannelFile = writeFile(t, validList)
	cfg.HTTP.ListenAddr = addr
	cfg.HDHR.Enabled = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/lineup.json")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_MissingChannelFile(t *testing.T) {
	cfg := config.Default()
	cfg.ChannelFile = filepath.Join(t.TempDir(), "missing.dvb")
	assert.ErrorIs(t, serve(context.Background(), cfg), os.ErrNotExist)
}
