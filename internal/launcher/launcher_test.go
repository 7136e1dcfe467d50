package launcher

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCommand_DefaultOverrides(t *testing.T) {
	l := New(testLogger(), DefaultConfig())

	cmdLine := strings.Join(l.Command(), " ")

	for _, want := range []string{
		"server.port=80",
		"server.address=localhost",
		"spring.datasource.username=rtsp",
		"spring.datasource.password=changeme3",
		"spring.datasource.url=jdbc:mariadb://localhost:3306/cameras_db",
	} {
		assert.Contains(t, cmdLine, want)
	}
}

func TestCommand_CustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 8080
	cfg.DatabaseHost = "db.internal"
	cfg.DatabaseName = "other_db"

	l := New(testLogger(), cfg)

	cmdLine := strings.Join(l.Command(), " ")

	assert.Contains(t, cmdLine, "server.port=8080")
	assert.Contains(t, cmdLine, "spring.datasource.url=jdbc:mariadb://db.internal:3306/other_db")
}

func TestDir_JavaSubdirectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = "/opt/backend"

	l := New(testLogger(), cfg)

	assert.Equal(t, filepath.Join("/opt/backend", "java"), l.Dir())
}

func TestDatasourceURL(t *testing.T) {
	assert.Equal(t, "jdbc:mariadb://localhost:3306/cameras_db", DefaultConfig().DatasourceURL())
}

// Start must not block on the spawned process. A stub mvn on PATH that
// sleeps stands in for the real build tool.
func TestStart_DoesNotBlock(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub")
	}

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "java"), 0o755))

	binDir := t.TempDir()
	stub := filepath.Join(binDir, "mvn")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\nsleep 5\n"), 0o755))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	cfg := DefaultConfig()
	cfg.Root = root

	l := New(testLogger(), cfg)

	started := time.Now()
	cmd, err := l.Start()
	require.NoError(t, err)

	t.Cleanup(func() {
		cmd.Process.Kill()
		cmd.Wait()
	})

	assert.Less(t, time.Since(started), 2*time.Second)
	assert.NotNil(t, cmd.Process)
	assert.Equal(t, filepath.Join(root, "java"), cmd.Dir)
}
