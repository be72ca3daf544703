package handlers

import (
	"net/http"
	"testing"

	"github.com/briefmate/briefmate/internal/dto"
	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTemplate(t *testing.T, env handlerTestEnv) dto.TemplateDTO {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/templates", env.user.ID, map[string]interface{}{
		"name":            "Site vitrine",
		"description":     "Site de 5 pages",
		"priority":        "HIGH",
		"estimated_hours": 24,
		"tasks":           []string{"Maquettes", " ", "Intégration", "Mise en ligne"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.TemplateDTO](t, w)
}

func TestTemplateHandler_CRUD(t *testing.T) {
	env := setupHandlerTestEnv(t, false)

	created := createTemplate(t, env)
	assert.Equal(t, models.BriefPriorityHigh, created.Priority)
	assert.Equal(t, []models.TemplateTask{{Title: "Maquettes"}, {Title: "Intégration"}, {Title: "Mise en ligne"}}, created.Tasks)

	w := env.do(t, http.MethodGet, idPath("/api/templates", created.ID, ""), env.user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Site vitrine", decode[dto.TemplateDTO](t, w).Name)

	w = env.do(t, http.MethodPut, idPath("/api/templates", created.ID, ""), env.user.ID, map[string]interface{}{
		"name":  "Landing page",
		"tasks": []string{"Copywriting"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.TemplateDTO](t, w)
	assert.Equal(t, "Landing page", updated.Name)
	assert.Equal(t, models.BriefPriorityMedium, updated.Priority)
	assert.Len(t, updated.Tasks, 1)

	w = env.do(t, http.MethodGet, "/api/templates", env.user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Templates []dto.TemplateDTO `json:"templates"`
	}](t, w)
	assert.Len(t, list.Templates, 1)

	w = env.do(t, http.MethodDelete, idPath("/api/templates", created.ID, ""), env.user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, idPath("/api/templates", created.ID, ""), env.user.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplateHandler_InvalidPriority(t *testing.T) {
	env := setupHandlerTestEnv(t, false)

	w := env.do(t, http.MethodPost, "/api/templates", env.user.ID, map[string]interface{}{
		"name":     "Mauvais",
		"priority": "CRITICAL",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateHandler_UseTemplate(t *testing.T) {
	env := setupHandlerTestEnv(t, false)
	template := createTemplate(t, env)
	client := testutil.CreateClient(t, env.db, env.user.ID, "Acme")

	w := env.do(t, http.MethodPost, idPath("/api/templates", template.ID, "/use"), env.user.ID, map[string]interface{}{
		"title":     "Site Acme",
		"client_id": client.ID,
		"deadline":  "2026-12-15",
		"budget":    2000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	brief := decode[dto.BriefDTO](t, w)
	assert.Equal(t, "Site Acme", brief.Title)
	assert.Equal(t, models.BriefStatusDraft, brief.Status)
	assert.Equal(t, models.BriefPriorityHigh, brief.Priority)
	require.NotNil(t, brief.EstimatedHours)
	assert.Equal(t, 24.0, *brief.EstimatedHours)
	require.NotNil(t, brief.Client)
	assert.Equal(t, "Acme", brief.Client.Name)
	require.Len(t, brief.Tasks, 3)
	for i, task := range brief.Tasks {
		assert.Equal(t, i, task.Order)
	}
	assert.Equal(t, "Mise en ligne", brief.Tasks[2].Title)
}

func TestTemplateHandler_UseTemplateWithEmptyBody(t *testing.T) {
	env := setupHandlerTestEnv(t, false)
	template := createTemplate(t, env)

	w := env.do(t, http.MethodPost, idPath("/api/templates", template.ID, "/use"), env.user.ID, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Site vitrine", decode[dto.BriefDTO](t, w).Title)
}

func TestTemplateHandler_ForeignTemplateLooksMissing(t *testing.T) {
	env := setupHandlerTestEnv(t, false)
	template := createTemplate(t, env)

	for _, req := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, idPath("/api/templates", template.ID, "")},
		{http.MethodDelete, idPath("/api/templates", template.ID, "")},
		{http.MethodPost, idPath("/api/templates", template.ID, "/use")},
	} {
		w := env.do(t, req.method, req.path, env.other.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, req.method+" "+req.path)
	}
}
