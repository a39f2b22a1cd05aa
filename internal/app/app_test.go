package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSID(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(NewSIDCommand(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func runTCPCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(NewTCPCommand(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSIDDecodes(t *testing.T) {
	code, stdout, stderr := runSID("0x010500000000000515000000FA5B8B204064BEA19FED6724EB030000")
	assert.Equal(t, 0, code)
	assert.Equal(t, "S-1-5-21-546003962-2713609280-610790815-1003\n", stdout)
	assert.Empty(t, stderr)
}

func TestSIDEncodesCanonicalForm(t *testing.T) {
	code, stdout, _ := runSID("S-1-5-32-544")
	assert.Equal(t, 0, code)
	assert.Equal(t, "01020000000000052000000020020000\n", stdout)
}

func TestSIDUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"01", "05"}} {
		code, stdout, stderr := runSID(args...)
		assert.Equal(t, 1, code)
		assert.Equal(t, sidUsage+"\n", stdout)
		assert.Empty(t, stderr)
	}
}

func TestSIDMalformed(t *testing.T) {
	code, stdout, stderr := runSID("010500000000000515000000")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "Error: "))
	assert.Contains(t, stderr, "malformed SID input")
}

const tcpTable = `  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode
   0: 0100007F:1F90 00000000:0000 0A 00000000:00000000 00:00000000 00000000  1000        0 0 1 0000000000000000 100 0 0 10 0
   1: 0F02000A:C4E2 22D8B85D:01BB 01 00000000:00000000 02:000A1B2C 00000000  1000        0 98765 2 0000000000000000 20 4 30 10 -1
`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tcp")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTCPTable(t *testing.T) {
	path := writeTable(t, tcpTable)

	code, stdout, stderr := runTCPCmd("-f", path)
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t,
		"SL   Local Address          Remote Address         State         UID    Inode\n"+
			"0    127.0.0.1:8080         0.0.0.0:0              LISTEN        1000   0\n"+
			"1    10.0.2.15:50402        93.184.216.34:443      ESTABLISHED   1000   98765\n",
		stdout)
}

func TestTCPStateFilterAndJSON(t *testing.T) {
	path := writeTable(t, tcpTable)

	code, stdout, stderr := runTCPCmd("--file", path, "--state", "established", "-o", "json")
	require.Equal(t, 0, code, stderr)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "98765", decoded[0]["inode"])
}

func TestTCPMalformedRowFails(t *testing.T) {
	path := writeTable(t, tcpTable+"   2: 0100007F:1F90\n")

	code, stdout, stderr := runTCPCmd("-f", path)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "line 4")
	assert.Contains(t, stderr, "malformed row")
}

func TestTCPLenientSkipsMalformedRow(t *testing.T) {
	path := writeTable(t, tcpTable+"   2: 0100007F:1F90\n")

	code, stdout, stderr := runTCPCmd("-f", path, "--lenient")
	assert.Equal(t, 0, code)
	assert.Len(t, strings.Split(strings.TrimRight(stdout, "\n"), "\n"), 3)
	assert.Contains(t, stderr, "skipping malformed row")
}

func TestTCPMissingFile(t *testing.T) {
	code, _, stderr := runTCPCmd("-f", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no such file or directory")
}

func TestTCPRejectsBadFlags(t *testing.T) {
	path := writeTable(t, tcpTable)

	code, _, stderr := runTCPCmd("-f", path, "--state", "bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unknown state "bogus"`)

	code, _, stderr = runTCPCmd("-f", path, "-o", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unknown output format "xml"`)
}

func TestVersionString(t *testing.T) {
	defer SetVersionBuildCommitString("dev", "", "")

	SetVersionBuildCommitString("v0.2.0", "abc123", "2026-10-19")
	assert.Equal(t, "v0.2.0 (abc123) built 2026-10-19", versionString())
}
