package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fitness-planner/internal/imagegen"
	"fitness-planner/internal/plan"
	"fitness-planner/internal/server"
)

type stubPlanner struct {
	plan *plan.FitnessPlan
	err  error
}

func (s stubPlanner) Generate(context.Context, plan.UserProfile) (*plan.FitnessPlan, error) {
	return s.plan, s.err
}

func samplePlan() *plan.FitnessPlan {
	return &plan.FitnessPlan{
		WorkoutPlan: []plan.WorkoutDay{{
			Day:       "Day 1",
			Exercises: []plan.Exercise{{Name: "Burpee", Sets: 3, Reps: "10", Description: "Explode up."}},
		}},
		DietPlan: plan.DietPlan{
			Breakfast: []string{"Toast"}, Lunch: []string{"Salad"},
			Dinner: []string{"Pasta"}, Snacks: []string{"Berries"},
		},
		Tips:       []string{"Rest", "Eat protein"},
		Motivation: "Start now.",
	}
}

var alex = plan.UserProfile{
	Name: "Alex", Age: "30", Gender: "Male", Height: "180", Weight: "80",
	Goal: "Muscle Gain", Level: "Beginner", Diet: "Veg", Location: "Home",
}

func newClient(t *testing.T, p server.Planner) *Client {
	s := server.New(server.Options{Planner: p, Images: imagegen.NewRequestor(""), Logger: zap.NewNop()})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func TestGeneratePlan(t *testing.T) {
	c := newClient(t, stubPlanner{plan: samplePlan()})

	got, err := c.GeneratePlan(context.Background(), alex)
	require.NoError(t, err)
	assert.Equal(t, samplePlan(), got)
}

func TestGeneratePlanMalformed(t *testing.T) {
	c := newClient(t, stubPlanner{err: &plan.MalformedError{Err: errors.New("x"), Raw: "prose"}})

	_, err := c.GeneratePlan(context.Background(), alex)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, plan.ReasonMalformed, apiErr.Message)
	assert.Equal(t, "prose", apiErr.Raw)
}

func TestGeneratePlanMissingInput(t *testing.T) {
	c := newClient(t, stubPlanner{plan: samplePlan()})

	_, err := c.GeneratePlan(context.Background(), plan.UserProfile{Name: "Alex"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestGeneratePlanRejectsPartialResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{"tips": []string{"x"}}})
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).GeneratePlan(context.Background(), alex)
	assert.True(t, plan.IsMalformed(err))
}

func TestImageURL(t *testing.T) {
	c := newClient(t, stubPlanner{})

	url, err := c.ImageURL(context.Background(), "grilled chicken")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "/grilled%20chicken"))

	_, err = c.ImageURL(context.Background(), "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "No prompt provided", apiErr.Message)
}

func TestExport(t *testing.T) {
	c := newClient(t, stubPlanner{})

	var buf bytes.Buffer
	name, err := c.Export(context.Background(), &buf, samplePlan(), "Alex", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "Alex_fitness_plan.pdf", name)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).ImageURL(context.Background(), "x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}
