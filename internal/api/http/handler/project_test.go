package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ryancham715/sav4us/internal/model"
	"github.com/ryancham715/sav4us/internal/testutil"
)

func newProjectApp(service *mockProjectService, authed bool) *fiber.App {
	h := NewProject(service, testutil.MakeNoopLogger())
	return newTestApp(func(app *fiber.App) {
		app.Post("/v1/projects", h.Create)
		app.Get("/v1/projects", h.List)
	}, authed)
}

func TestProjectHandler_Create(t *testing.T) {
	service := new(mockProjectService)
	service.On("CreateProject", mock.Anything, testUserID, model.CreateProjectParams{
		Name:        "Trip",
		TargetMajor: 100,
		WeightA:     1,
		WeightB:     1,
	}).Return(model.Project{
		ID:          uuid.New(),
		Name:        "Trip",
		TargetCents: 10000,
		MemberAUID:  testUserID,
		Status:      model.ProjectOpen,
	}, nil)

	app := newProjectApp(service, true)

	resp, err := app.Test(jsonRequest("POST", "/v1/projects", fiber.Map{
		"name":    "Trip",
		"target":  100,
		"weightA": 1,
		"weightB": 1,
	}))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got model.Project
	decodeBody(t, resp, &got)
	assert.Equal(t, int64(10000), got.TargetCents)
	assert.Equal(t, model.ProjectOpen, got.Status)
	service.AssertExpectations(t)
}

func TestProjectHandler_Create_ValidationError(t *testing.T) {
	service := new(mockProjectService)
	service.On("CreateProject", mock.Anything, testUserID, mock.Anything).
		Return(model.Project{}, model.NewErrInvalidTarget())

	app := newProjectApp(service, true)

	resp, err := app.Test(jsonRequest("POST", "/v1/projects", fiber.Map{
		"name":    "Trip",
		"target":  -5,
		"weightA": 1,
		"weightB": 1,
	}))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProjectHandler_Create_Unauthenticated(t *testing.T) {
	app := newProjectApp(new(mockProjectService), false)

	resp, err := app.Test(jsonRequest("POST", "/v1/projects", fiber.Map{
		"name":    "Trip",
		"target":  100,
		"weightA": 1,
		"weightB": 1,
	}))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProjectHandler_List(t *testing.T) {
	service := new(mockProjectService)
	service.On("ListProjects", mock.Anything, testUserID).Return([]model.Project{
		{ID: uuid.New(), Name: "Alpha"},
		{ID: uuid.New(), Name: "Beta"},
	}, nil)

	app := newProjectApp(service, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/projects", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got []model.Project
	decodeBody(t, resp, &got)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Name)
}

func TestProjectHandler_List_EmptyIsArray(t *testing.T) {
	service := new(mockProjectService)
	service.On("ListProjects", mock.Anything, testUserID).Return([]model.Project(nil), nil)

	app := newProjectApp(service, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/projects", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got []model.Project
	decodeBody(t, resp, &got)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
