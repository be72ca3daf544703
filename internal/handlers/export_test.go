package handlers

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/briefmate/briefmate/internal/export"
	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/services"
	"github.com/briefmate/briefmate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHandler_JSON(t *testing.T) {
	env := setupHandlerTestEnv(t, false)
	acme := testutil.CreateClient(t, env.db, env.user.ID, "Acme")
	testutil.CreateBrief(t, env.db, env.user.ID, "Avec client", testutil.WithClient(acme.ID), testutil.WithStatus(models.BriefStatusCompleted))
	testutil.CreateBrief(t, env.db, env.user.ID, "Sans client")
	testutil.CreateBrief(t, env.db, env.other.ID, "Étranger")

	w := env.do(t, http.MethodGet, "/api/export?status=COMPLETED", env.user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Briefs []export.Row `json:"briefs"`
		Count  int          `json:"count"`
	}](t, w)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Acme", resp.Briefs[0].ClientName)

	w = env.do(t, http.MethodGet, "/api/export?search=sans", env.user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[struct {
		Briefs []export.Row `json:"briefs"`
		Count  int          `json:"count"`
	}](t, w)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Aucun client", resp.Briefs[0].ClientName)
}

func TestExportHandler_CSV(t *testing.T) {
	env := setupHandlerTestEnv(t, false)
	testutil.CreateBrief(t, env.db, env.user.ID, "Brochure", testutil.WithBudget(1500))

	w := env.do(t, http.MethodGet, "/api/export/csv", env.user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Regexp(t, `attachment; filename="briefmate-export-\d{4}-\d{2}-\d{2}\.csv"`, w.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, export.CSVHeader, records[0])
	assert.Equal(t, "Brochure", records[1][0])
}

func TestExportHandler_EmptyExports(t *testing.T) {
	env := setupHandlerTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/api/export/csv", env.user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)

	w = env.do(t, http.MethodGet, "/api/export/pdf", env.user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestStatsHandler(t *testing.T) {
	env := setupHandlerTestEnv(t, false)
	testutil.CreateClient(t, env.db, env.user.ID, "Acme")
	testutil.CreateBrief(t, env.db, env.user.ID, "Fini", testutil.WithStatus(models.BriefStatusCompleted), testutil.WithBudget(1000))
	testutil.CreateBrief(t, env.db, env.user.ID, "En cours", testutil.WithStatus(models.BriefStatusInProgress), testutil.WithBudget(500),
		testutil.WithDeadline(time.Now().UTC().Add(-48*time.Hour)))
	testutil.CreateBrief(t, env.db, env.other.ID, "Étranger", testutil.WithBudget(99999))

	w := env.do(t, http.MethodGet, "/api/stats", env.user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	stats := decode[services.DashboardStats](t, w)
	assert.EqualValues(t, 2, stats.TotalBriefs)
	assert.EqualValues(t, 1, stats.TotalClients)
	assert.EqualValues(t, 1, stats.CompletedBriefs)
	assert.Equal(t, 1500.0, stats.TotalBudget)
	assert.EqualValues(t, 1, stats.OverdueBriefs)
	require.Len(t, stats.BriefsOverTime, 1)
	assert.EqualValues(t, 2, stats.BriefsOverTime[0].Count)

	w = env.do(t, http.MethodGet, "/api/stats?fill_months=true", env.user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[services.DashboardStats](t, w).BriefsOverTime, 7)
}
