package generation_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"model-generator/feature/generation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T, svc *generation.Service, readOnly bool) *fiber.App {
	t.Helper()
	app := fiber.New()
	generation.NewHandler(svc, readOnly).RegisterRoutes(app)
	return app
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandlePlan(t *testing.T) {
	cfg := newProject(t)
	app := newApp(t, generation.NewService(cfg, generation.Deps{Logger: zap.NewNop()}), false)

	resp, err := app.Test(httptest.NewRequest("GET", "/generation/plan", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.NotEmpty(t, body["run_id"])
	assert.Len(t, body["reconciliations"], 3)
	assert.NoDirExists(t, cfg.TargetDir)
}

func TestHandleApply(t *testing.T) {
	cfg := newProject(t)
	app := newApp(t, generation.NewService(cfg, generation.Deps{}), false)

	resp, err := app.Test(httptest.NewRequest("POST", "/generation/apply", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.FileExists(t, filepath.Join(cfg.TargetDir, "customer.txt"))

	require.NoError(t, os.WriteFile(filepath.Join(cfg.TargetDir, "customer.txt"), []byte("edited"), 0o644))

	resp, err = app.Test(httptest.NewRequest("POST", "/generation/apply", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, []any{"customer.txt"}, body["paths"])
	assert.Contains(t, body, "run")
}

func TestHandleApplyEvaluationError(t *testing.T) {
	cfg := newProject(t)
	root := cfg.TemplateRoots[0]
	broken := "templates:\n  - name: broken\n    pathExpression: \"${model.missing.path}\"\n    template: x\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "project.yaml"), []byte(broken), 0o644))

	app := newApp(t, generation.NewService(cfg, generation.Deps{}), false)
	resp, err := app.Test(httptest.NewRequest("POST", "/generation/apply", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandleReadOnly(t *testing.T) {
	app := newApp(t, generation.NewService(newProject(t), generation.Deps{}), true)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"POST", "/generation/apply", fiber.StatusForbidden},
		{"POST", "/generation/checksum", fiber.StatusForbidden},
		{"GET", "/generation/plan", fiber.StatusOK},
		{"GET", "/generation/manifest", fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestHandleManifest(t *testing.T) {
	cfg := newProject(t)
	svc := generation.NewService(cfg, generation.Deps{})
	app := newApp(t, svc, false)

	resp, err := app.Test(httptest.NewRequest("POST", "/generation/apply", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/generation/manifest?actor=guest", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, ".generated-files-guest", body["name"])
	entries, ok := body["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "screen.txt", entries[0].(map[string]any)["path"])

	resp, err = app.Test(httptest.NewRequest("GET", "/generation/manifest?actor=..", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleChecksum(t *testing.T) {
	cfg := newProject(t)
	app := newApp(t, generation.NewService(cfg, generation.Deps{}), false)

	resp, err := app.Test(httptest.NewRequest("POST", "/generation/checksum", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp.Body)
	manifests, ok := body["manifests"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, manifests, ".generated-files")
	assert.Contains(t, manifests, ".generated-files-admin")
}
