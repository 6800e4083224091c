package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agrifield/agridir-be/internal/models"
	"github.com/agrifield/agridir-be/internal/models/dto"
)

func validDistributorInput() dto.DistributorInput {
	return dto.DistributorInput{
		Name:           "AgroSupplies",
		Address:        "12 Market Road",
		SupportedCrops: "Rice, Wheat",
		Contact:        "+91 555 0100",
		Region:         "North",
		State:          "Punjab",
		City:           "Ludhiana",
		Image:          "https://cdn.example.com/agro.jpg",
	}
}

func TestDistributorLifecycleAsAdmin(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.adminCookie(t)

	created := env.do(t, http.MethodPost, "/distributors", validDistributorInput(), cookie)
	require.Equal(t, http.StatusCreated, created.StatusCode)
	d := decodeBody[models.Distributor](t, created)
	require.NotEmpty(t, d.ID)

	list := env.do(t, http.MethodGet, "/distributors", nil, nil)
	require.Equal(t, http.StatusOK, list.StatusCode)
	require.Len(t, decodeBody[[]models.Distributor](t, list), 1)

	update := validDistributorInput()
	update.City = "Amritsar"
	updatedResp := env.do(t, http.MethodPut, "/distributors/"+d.ID, update, cookie)
	require.Equal(t, http.StatusOK, updatedResp.StatusCode)
	require.Equal(t, "Amritsar", decodeBody[models.Distributor](t, updatedResp).City)

	deleted := env.do(t, http.MethodDelete, "/distributors/"+d.ID, nil, cookie)
	require.Equal(t, http.StatusOK, deleted.StatusCode)

	gone := env.do(t, http.MethodGet, "/distributors/"+d.ID, nil, nil)
	require.Equal(t, http.StatusNotFound, gone.StatusCode)
}

func TestDistributorMutationsAreGated(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/distributors", validDistributorInput(), nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	env.createUser(t, "A", "a@x.com", "password1", false)
	_, cookie := env.login(t, "/login", "a@x.com", "password1")
	require.NotNil(t, cookie)

	resp = env.do(t, http.MethodPost, "/distributors", validDistributorInput(), cookie)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDistributorCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.adminCookie(t)

	input := validDistributorInput()
	input.Contact = ""
	resp := env.do(t, http.MethodPost, "/distributors", input, cookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, decodeBody[map[string]string](t, resp)["message"], "contact")
}
