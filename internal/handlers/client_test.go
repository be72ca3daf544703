package handlers

import (
	"net/http"
	"testing"

	"github.com/briefmate/briefmate/internal/dto"
	apierrors "github.com/briefmate/briefmate/internal/errors"
	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientHandler_CRUD(t *testing.T) {
	apierrors.UseJSONFieldNames()
	env := setupHandlerTestEnv(t, false)
	user := env.user

	w := env.do(t, http.MethodPost, "/api/clients", user.ID, map[string]string{
		"name":    "Zeta Studio",
		"email":   "hello@zeta.example",
		"company": "Zeta",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	zeta := decode[dto.ClientDTO](t, w)
	require.NotNil(t, zeta.Email)
	assert.Nil(t, zeta.Phone)

	w = env.do(t, http.MethodPost, "/api/clients", user.ID, map[string]string{"name": "Alpha"})
	require.Equal(t, http.StatusCreated, w.Code)
	alpha := decode[dto.ClientDTO](t, w)

	zetaBrief := testutil.CreateBrief(t, env.db, user.ID, "Brief Zeta", testutil.WithClient(zeta.ID))
	testutil.CreateTask(t, env.db, zetaBrief.ID, "Moodboard", 0)

	w = env.do(t, http.MethodGet, "/api/clients", user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Clients []dto.ClientDTO `json:"clients"`
	}](t, w)
	require.Len(t, list.Clients, 2)
	assert.Equal(t, "Alpha", list.Clients[0].Name)
	assert.EqualValues(t, 0, list.Clients[0].BriefsCount)
	assert.EqualValues(t, 1, list.Clients[1].BriefsCount)

	w = env.do(t, http.MethodGet, idPath("/api/clients", zeta.ID, ""), user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[dto.ClientDetailDTO](t, w)
	require.Len(t, detail.Briefs, 1)
	assert.Equal(t, "Brief Zeta", detail.Briefs[0].Title)
	assert.EqualValues(t, 1, detail.Briefs[0].TasksCount)

	w = env.do(t, http.MethodPut, idPath("/api/clients", alpha.ID, ""), user.ID, map[string]string{
		"name":  "Alpha Corp",
		"phone": "+33 1 23 45 67 89",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[dto.ClientDTO](t, w)
	assert.Equal(t, "Alpha Corp", updated.Name)
	require.NotNil(t, updated.Phone)
}

func TestClientHandler_Validation(t *testing.T) {
	apierrors.UseJSONFieldNames()
	env := setupHandlerTestEnv(t, false)

	w := env.do(t, http.MethodPost, "/api/clients", env.user.ID, map[string]string{
		"name":  "Bad Email",
		"email": "nope",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Details, "email")

	w = env.do(t, http.MethodPost, "/api/clients", env.user.ID, map[string]string{"name": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientHandler_DeleteDetachesBriefs(t *testing.T) {
	env := setupHandlerTestEnv(t, false)
	user := env.user
	client := testutil.CreateClient(t, env.db, user.ID, "Partant")
	brief := testutil.CreateBrief(t, env.db, user.ID, "Reste", testutil.WithClient(client.ID))

	w := env.do(t, http.MethodDelete, idPath("/api/clients", client.ID, ""), user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Brief
	require.NoError(t, env.db.First(&stored, brief.ID).Error)
	assert.Nil(t, stored.ClientID)
}

func TestClientHandler_ForeignClientLooksMissing(t *testing.T) {
	env := setupHandlerTestEnv(t, false)
	foreign := testutil.CreateClient(t, env.db, env.other.ID, "Foreign")

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := env.do(t, method, idPath("/api/clients", foreign.ID, ""), env.user.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}

	w := env.do(t, http.MethodPut, idPath("/api/clients", foreign.ID, ""), env.user.ID, map[string]string{"name": "Mine"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
