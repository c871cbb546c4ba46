package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrife/mapkeeper/config"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "mapkeeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	return path
}

func TestDefault(t *testing.T) {
	c := config.Default()

	require.NoError(t, c.Validate())
	require.Equal(t, 9090, c.Server.Port)
	require.Equal(t, 32, c.Server.Workers)
	require.Equal(t, "data", c.Storage.DataDir)
	require.Equal(t, ":9090", c.Address())
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, `
server:
  port: 9091
  workers: 8
storage:
  engine: memory
  sync_interval: 250ms
logging:
  level: debug
`)

	t.Setenv("MAPKEEPER_WORKERS", "4")
	t.Setenv("MAPKEEPER_NO_SYNC", "true")

	c, err := config.Load(path)
	require.NoError(t, err)

	// file beats defaults
	require.Equal(t, 9091, c.Server.Port)
	require.Equal(t, "memory", c.Storage.Engine)
	require.Equal(t, 250*time.Millisecond, c.Storage.SyncInterval)
	require.Equal(t, "debug", c.Logging.Level)
	// env beats file
	require.Equal(t, 4, c.Server.Workers)
	require.True(t, c.Storage.NoSync)
	// untouched keys keep defaults
	require.Equal(t, "grpc", c.Server.Frontend)
	require.Equal(t, "json", c.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	testCases := map[string]struct {
		file string
		env  map[string]string
	}{
		"missing-file": {
			file: filepath.Join(os.TempDir(), "does-not-exist", "mapkeeper.yaml"),
		},
		"bad-yaml": {
			file: "server: [",
		},
		"bad-int": {
			env: map[string]string{"MAPKEEPER_PORT": "ninety"},
		},
		"bad-duration": {
			env: map[string]string{"MAPKEEPER_SYNC_INTERVAL": "soon"},
		},
		"bad-bool": {
			env: map[string]string{"MAPKEEPER_NO_SYNC": "maybe"},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			path := testCase.file

			if path != "" && !filepath.IsAbs(path) {
				path = writeFile(t, testCase.file)
			}

			for key, value := range testCase.env {
				t.Setenv(key, value)
			}

			_, err := config.Load(path)
			require.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	testCases := map[string]func(c *config.Config){
		"port":        func(c *config.Config) { c.Server.Port = 70000 },
		"workers":     func(c *config.Config) { c.Server.Workers = 0 },
		"frontend":    func(c *config.Config) { c.Server.Frontend = "thrift" },
		"engine":      func(c *config.Config) { c.Storage.Engine = "" },
		"data-dir":    func(c *config.Config) { c.Storage.DataDir = "" },
		"page-size":   func(c *config.Config) { c.Storage.PageSize = -1 },
		"sync":        func(c *config.Config) { c.Storage.NoSync = true; c.Storage.SyncInterval = 0 },
		"window":      func(c *config.Config) { c.Stats.Window = 0 },
		"log-format":  func(c *config.Config) { c.Logging.Format = "xml" },
		"stats-every": func(c *config.Config) { c.Stats.ReportInterval = -time.Second },
	}

	for name, mutate := range testCases {
		t.Run(name, func(t *testing.T) {
			c := config.Default()
			mutate(c)

			require.Error(t, c.Validate())
		})
	}
}

func TestSaveToFile(t *testing.T) {
	c := config.Default()
	c.Server.Port = 1234
	c.Storage.SyncInterval = 3 * time.Second

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, c.SaveToFile(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, c, loaded)
}
