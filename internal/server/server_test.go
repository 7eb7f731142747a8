package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fitness-planner/internal/generator"
	"fitness-planner/internal/imagegen"
	"fitness-planner/internal/plan"
)

type fakePlanner struct {
	plan    *plan.FitnessPlan
	err     error
	profile plan.UserProfile
	calls   int
}

func (f *fakePlanner) Generate(_ context.Context, p plan.UserProfile) (*plan.FitnessPlan, error) {
	f.calls++
	f.profile = p
	return f.plan, f.err
}

func samplePlan() *plan.FitnessPlan {
	return &plan.FitnessPlan{
		WorkoutPlan: []plan.WorkoutDay{{
			Day:       "Day 1",
			Exercises: []plan.Exercise{{Name: "Row", Sets: 3, Reps: "12", Description: "Squeeze at the top."}},
		}},
		DietPlan: plan.DietPlan{
			Breakfast: []string{"Oats"}, Lunch: []string{"Rice"},
			Dinner: []string{"Beans"}, Snacks: []string{"Apple"},
		},
		Tips:       []string{"Stretch", "Hydrate"},
		Motivation: "Go!",
	}
}

const alexJSON = `{"name":"Alex","age":30,"gender":"Male","height":180,"weight":80,
	"goal":"Muscle Gain","level":"Beginner","diet":"Non-Veg","location":"Gym","notes":""}`

func newTestServer(p Planner) *httptest.Server {
	s := New(Options{
		Planner: p,
		Images:  imagegen.NewRequestor("https://img.test/prompt/"),
		Logger:  zap.NewNop(),
	})
	return httptest.NewServer(s.Handler())
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestGeneratePlan(t *testing.T) {
	planner := &fakePlanner{plan: samplePlan()}
	srv := newTestServer(planner)
	defer srv.Close()

	resp, out := post(t, srv.URL+"/api/generate", alexJSON)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	raw, err := json.Marshal(out["result"])
	require.NoError(t, err)
	got, err := plan.Parse(string(raw))
	require.NoError(t, err)
	assert.Equal(t, samplePlan(), got)

	assert.Equal(t, plan.Attr("30"), planner.profile.Age)
	assert.Equal(t, plan.Attr("Muscle Gain"), planner.profile.Goal)
}

func TestGeneratePlanMalformed(t *testing.T) {
	planner := &fakePlanner{err: &plan.MalformedError{Err: errors.New("bad"), Raw: "just prose"}}
	srv := newTestServer(planner)
	defer srv.Close()

	resp, out := post(t, srv.URL+"/api/generate", alexJSON)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "invalid structured response", out["error"])
	assert.Equal(t, "just prose", out["raw"])
}

func TestGeneratePlanProviderFailure(t *testing.T) {
	planner := &fakePlanner{err: fmt.Errorf("%w: API key not valid", generator.ErrProvider)}
	srv := newTestServer(planner)
	defer srv.Close()

	resp, out := post(t, srv.URL+"/api/generate", alexJSON)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "failed to generate plan", out["error"])
	assert.NotContains(t, out, "raw")
}

func TestGeneratePlanBadInput(t *testing.T) {
	planner := &fakePlanner{plan: samplePlan()}
	srv := newTestServer(planner)
	defer srv.Close()

	resp, out := post(t, srv.URL+"/api/generate", `{"name":"Alex"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "age")

	resp, _ = post(t, srv.URL+"/api/generate", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, planner.calls, "invalid input never reaches the provider")
}

func TestGenerateImage(t *testing.T) {
	srv := newTestServer(&fakePlanner{})
	defer srv.Close()

	resp, out := post(t, srv.URL+"/api/image", `{"prompt":"grilled chicken"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://img.test/prompt/grilled%20chicken", out["image"])

	resp, out = post(t, srv.URL+"/api/image", `{"prompt":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No prompt provided", out["error"])

	resp, out = post(t, srv.URL+"/api/image", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, out = post(t, srv.URL+"/api/image", `{`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to generate image", out["error"])
}

func exportBody(t *testing.T, format string) string {
	b, err := json.Marshal(map[string]any{"name": "Alex", "plan": samplePlan(), "format": format})
	require.NoError(t, err)
	return string(b)
}

func TestExportPDF(t *testing.T) {
	srv := newTestServer(&fakePlanner{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/export", "application/json", strings.NewReader(exportBody(t, "")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Alex_fitness_plan.pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestExportXLSX(t *testing.T) {
	srv := newTestServer(&fakePlanner{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/export", "application/json", strings.NewReader(exportBody(t, "xlsx")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Alex_fitness_plan.xlsx")
	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Workout")
}

func TestExportRejectsBadPlan(t *testing.T) {
	srv := newTestServer(&fakePlanner{})
	defer srv.Close()

	resp, _ := post(t, srv.URL+"/api/export", `{"name":"Alex","plan":{"tips":[]}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, srv.URL+"/api/export", exportBody(t, "docx"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(&fakePlanner{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/generate")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(&fakePlanner{})
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/generate", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
