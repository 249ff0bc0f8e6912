package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testInventory() model.Inventory {
	return model.Inventory{Containers: []model.ContainerPreset{
		{ID: "cube10", Name: "Cube", Dimensions: model.Dims(10, 10, 10), Price: 5},
	}}
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func scenarioItems() []model.Item {
	return []model.Item{
		{Label: "small", Dimensions: model.Dims(2, 2, 2), Quantity: 1},
		{Label: "mid", Dimensions: model.Dims(5, 5, 5), Quantity: 1},
		{Label: "cube", Dimensions: model.Dims(3, 3, 3), Quantity: 1},
	}
}

func TestHealthz(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestPresets(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodGet, "/api/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var presets []model.ContainerPreset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &presets))
	require.Len(t, presets, 1)
	assert.Equal(t, "cube10", presets[0].ID)
}

func TestPack(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/pack", PackRequest{
		Container: model.Dims(10, 10, 10),
		Items:     scenarioItems(),
		Verify:    true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.ContainersUsed)
	assert.Equal(t, 3, resp.PlacedCount)
	assert.Equal(t, 0, resp.RejectedCount)
	assert.InDelta(t, 0.16, resp.GlobalEfficiency, 1e-9)
	assert.Empty(t, resp.Violations)

	got := resp.Result.Outcomes
	require.Len(t, got, 3)
	assert.Equal(t, model.Position{X: 2}, got[1].Position)
	assert.Equal(t, model.Position{X: 7}, got[2].Position)
}

func TestPack_Preset(t *testing.T) {
	s := New(testInventory(), nil)

	w := do(t, s, http.MethodPost, "/api/pack", PackRequest{
		PresetID: "cube10",
		Items:    []model.Item{{Label: "big", Dimensions: model.Dims(6, 6, 6), Quantity: 2}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp PackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.ContainersUsed)

	w = do(t, s, http.MethodPost, "/api/pack", PackRequest{PresetID: "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPack_RejectsOversizedItem(t *testing.T) {
	settings := model.DefaultSettings()
	settings.AllowRotation = model.RotationAllAxes
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/pack", PackRequest{
		Container: model.Dims(10, 10, 10),
		Items:     []model.Item{{Label: "long", Dimensions: model.Dims(11, 5, 5), Quantity: 1}},
		Settings:  settings,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp PackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.ContainersUsed)
	require.Len(t, resp.Result.Outcomes, 1)
	assert.Equal(t, model.RejectItemExceedsContainer, resp.Result.Outcomes[0].Reason)
}

func TestPack_InvalidSettings(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Heuristic = "best-guess"
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/pack", PackRequest{
		Container: model.Dims(10, 10, 10),
		Settings:  settings,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid settings")
}

func TestPack_TooManyItems(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/pack", PackRequest{
		Container: model.Dims(10, 10, 10),
		Items:     []model.Item{{Label: "bulk", Dimensions: model.Dims(1, 1, 1), Quantity: 1_000_000_000}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "too many items")
}

func TestPack_InvalidContainer(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/pack", PackRequest{
		Container: model.Dims(0, 10, 10),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPack_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/pack", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	New(testInventory(), nil).Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPack_SVGFormat(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/pack?format=svg", PackRequest{
		Container: model.Dims(10, 10, 10),
		Items:     scenarioItems(),
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")
}

func TestCompare_DefaultScenarios(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/compare", CompareRequest{
		Container: model.Dims(10, 10, 10),
		Items:     scenarioItems(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Scenarios)
	assert.Equal(t, "Current Settings", resp.Scenarios[0].Name)
	require.GreaterOrEqual(t, resp.Best, 0)
	require.NotNil(t, resp.Result)
	for _, sc := range resp.Scenarios {
		assert.Empty(t, sc.Error)
		assert.Equal(t, 3, sc.PlacedCount, sc.Name)
	}
}

func TestCompare_TooManyItems(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/compare", CompareRequest{
		Container: model.Dims(10, 10, 10),
		Items:     []model.Item{{Label: "bulk", Dimensions: model.Dims(1, 1, 1), Quantity: model.MaxExpandedItems + 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "too many items")
}

func TestCompare_ScenarioErrorReported(t *testing.T) {
	bad := model.DefaultSettings()
	bad.BinPolicy = "everywhere"
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/compare", map[string]any{
		"container": model.Dims(10, 10, 10),
		"items":     scenarioItems(),
		"scenarios": []map[string]any{
			{"name": "ok", "settings": model.DefaultSettings()},
			{"name": "bad", "settings": bad},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Scenarios, 2)
	assert.Empty(t, resp.Scenarios[0].Error)
	assert.Contains(t, resp.Scenarios[1].Error, "invalid settings")
	assert.Equal(t, 0, resp.Best)
}

func TestEstimate(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/estimate", EstimateRequest{
		PresetID:          "cube10",
		Items:             []model.Item{{Label: "half", Dimensions: model.Dims(10, 10, 5), Quantity: 3}},
		PricePerContainer: 5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var est model.ContainerEstimate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &est))
	assert.Equal(t, 2, est.ContainersNeededMin)
	assert.InDelta(t, 1.5, est.ContainersNeededExact, 1e-9)
}

func TestEstimate_InvalidItemsDoNotCancelVolume(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/estimate", EstimateRequest{
		Container: model.Dims(10, 10, 10),
		Items: []model.Item{
			{Label: "cube", Dimensions: model.Dims(10, 10, 10), Quantity: 3},
			{Label: "negative", Dimensions: model.Dims(-10, 10, 10), Quantity: 3},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var est model.ContainerEstimate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &est))
	assert.Equal(t, 3, est.ContainersNeededMin)
	assert.Equal(t, 3, est.InvalidItems)
	assert.InDelta(t, 3000, est.TotalItemVolume, 1e-9)
}

func TestEstimate_InvalidRotation(t *testing.T) {
	w := do(t, New(testInventory(), nil), http.MethodPost, "/api/estimate", EstimateRequest{
		Container:     model.Dims(10, 10, 10),
		AllowRotation: "sideways",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
