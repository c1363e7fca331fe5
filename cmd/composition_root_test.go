package cmd_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"pancakehouse/cmd"
	"pancakehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultConfig(t *testing.T) cmd.Config {
	cfg, err := cmd.LoadConfig(env(nil))
	require.NoError(t, err)
	return cfg
}

func TestNewCompositionRoot(t *testing.T) {
	t.Run("should wire the default setup", func(t *testing.T) {
		root, err := cmd.NewCompositionRoot(defaultConfig(t), discardLogger())
		require.NoError(t, err)
		defer root.Close(t.Context())

		e, err := root.CreateHTTPServer()
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		assert.NotNil(t, root.CreateKitchenPipeline())
		assert.NotNil(t, root.CreateDeliveryPipeline())
		assert.NotNil(t, root.CreateJobManager())
	})

	t.Run("should reject a crew without desk privileges", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"users":[
			{"name":"kitchen-crew","privileges":{"kitchen":"R"}},
			{"name":"delivery-crew","privileges":{"delivery":"RU"}}
		]}`), 0o600))

		cfg := defaultConfig(t)
		cfg.UsersFile = path

		_, err := cmd.NewCompositionRoot(cfg, discardLogger())

		require.ErrorIs(t, err, errs.ErrInsufficientPrivilege)
	})

	t.Run("should reject a crew missing from the users file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"users":[{"name":"alice","privileges":{"order":"CRUD"}}]}`), 0o600))

		cfg := defaultConfig(t)
		cfg.UsersFile = path

		_, err := cmd.NewCompositionRoot(cfg, discardLogger())

		require.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})
}
