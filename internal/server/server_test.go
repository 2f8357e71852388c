package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildagent/multibuild/internal/advisor"
	"github.com/buildagent/multibuild/internal/catalog"
	"github.com/buildagent/multibuild/internal/engine"
	"github.com/buildagent/multibuild/internal/planner"
	"github.com/buildagent/multibuild/internal/quickcalc"
	"github.com/buildagent/multibuild/internal/recommend"
	"github.com/buildagent/multibuild/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	quick, err := quickcalc.Load()
	require.NoError(t, err)

	adv := advisor.New(advisor.NewClient(advisor.Config{}, zerolog.Nop()), zerolog.Nop())
	eng := engine.New(cat, planner.New(cat), recommend.New(cat), adv,
		session.NewMemoryStore(), zerolog.Nop())

	srv := httptest.NewServer(New(eng, quick, cat, zerolog.Nop()).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func decodeSuccess(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var env struct {
		Success   bool           `json:"success"`
		Data      map[string]any `json:"data"`
		Timestamp string         `json:"timestamp"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Timestamp)
	return env.Data
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	var env struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env.Error
}

func TestCalculate(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/oven/calculate", map[string]any{
		"area_sqm":       2.0,
		"quality_option": "premium",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeSuccess(t, resp)
	assert.Equal(t, "Pizzaofen", data["project"])
	assert.Equal(t, "premium", data["quality_option"])
	assert.Equal(t, "5-7 Tage", data["estimated_build_time"])
	assert.Greater(t, data["total_cost"].(float64), 0.0)
	assert.Len(t, data["components"].([]any), 6)
}

func TestCalculateFromMessage(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/oven/calculate", map[string]any{
		"message": "1.2 qm Pizzaofen premium",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeSuccess(t, resp)
	assert.Equal(t, "premium", data["quality_option"])
	assert.Equal(t, "5-7 Tage", data["estimated_build_time"])
	prompt := data["image_prompt"].(map[string]any)
	assert.Contains(t, prompt["details"], "Fläche: 1.2 Quadratmeter")
}

func TestCalculateExplicitFieldsWinOverMessage(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/oven/calculate", map[string]any{
		"message":        "1.2 qm Pizzaofen premium",
		"area_sqm":       2.0,
		"quality_option": "schnell",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeSuccess(t, resp)
	assert.Equal(t, "schnell", data["quality_option"])
	prompt := data["image_prompt"].(map[string]any)
	assert.Contains(t, prompt["details"], "Fläche: 2 Quadratmeter")
}

func TestCalculateMessageWithoutAreaUsesDefault(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/oven/calculate", map[string]any{
		"message": "bitte einen günstigen Ofen",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeSuccess(t, resp)
	assert.Equal(t, "günstig", data["quality_option"])
	prompt := data["image_prompt"].(map[string]any)
	assert.Contains(t, prompt["details"], "Fläche: 1.5 Quadratmeter")
}

func TestCalculateValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		body    any
		wantErr string
	}{
		{"area too small", map[string]any{"area_sqm": 0.5, "quality_option": "günstig"}, "below the minimum"},
		{"area too large", map[string]any{"area_sqm": 9.0, "quality_option": "günstig"}, "exceeds the maximum"},
		{"unknown tier", map[string]any{"area_sqm": 1.5, "quality_option": "deluxe"}, "unknown quality option"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/oven/calculate", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, decodeError(t, resp), tt.wantErr)
		})
	}
}

func TestCalculateBadJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/oven/calculate", "application/json",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, resp), "invalid JSON")
}

func TestOptions(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/oven/options/" + url.PathEscape("günstig") + "?area=1.2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeSuccess(t, resp)
	assert.Equal(t, "günstig", data["quality_option"])
	assert.Equal(t, "3-5 Tage", data["estimated_build_time"])
}

func TestOptionsUnknownTier(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/oven/options/deluxe")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, resp), "unknown quality option")
}

func TestDemo(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/oven/demo")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeSuccess(t, resp)
	results := data["demo_results"].([]any)
	require.Len(t, results, 3)

	first := results[0].(map[string]any)
	assert.Equal(t, "Kompakter Ofen", first["label"])
	assert.Equal(t, 1.2, first["area_sqm"])
}

func TestMaterials(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/oven/materials")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeSuccess(t, resp)
	assert.NotEmpty(t, data["materials"])
	assert.NotEmpty(t, data["oven_components"])
	stats := data["stats"].(map[string]any)
	assert.Greater(t, stats["total_materials"].(float64), 20.0)
}

func TestMaterialsSearch(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/oven/materials?q=firebrick")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeSuccess(t, resp)
	materials := data["materials"].([]any)
	require.NotEmpty(t, materials)
	for _, m := range materials {
		name := m.(map[string]any)["name"].(string)
		assert.Contains(t, name, "Firebrick")
	}
}

func TestChatAndSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/chat", map[string]any{
		"message": "I want to build a pizza oven 1m x 1m, I'm a beginner",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeSuccess(t, resp)
	sessionID := data["session_id"].(string)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, "interactive", data["phase"])

	// Follow-up message reuses the session.
	resp = postJSON(t, srv.URL+"/api/chat", map[string]any{
		"session_id": sessionID,
		"message":    "how much does it cost?",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = decodeSuccess(t, resp)
	assert.Equal(t, sessionID, data["session_id"])

	// Session info reflects the conversation.
	resp, err := http.Get(srv.URL + "/api/session/" + sessionID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	info := decodeSuccess(t, resp)
	assert.Equal(t, float64(4), info["messages"])
	assert.Equal(t, true, info["has_blueprint"])

	// Delete, then info is gone.
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/session/"+sessionID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/session/" + sessionID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestChatRequiresMessage(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/chat", map[string]any{"session_id": "whatever"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, resp), "message is required")
}

func TestSessionNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/session/session-0-000000")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decodeError(t, resp), "not found")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/oven/calculate")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
