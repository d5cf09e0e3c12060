package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"navhub/internal/apperrors"
	"navhub/internal/common"
	"navhub/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) ListMenus(ctx context.Context) ([]models.Menu, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Menu), args.Error(1)
}

func (m *MockMenuService) ListSubmenus(ctx context.Context, menuID int64) ([]models.Submenu, error) {
	args := m.Called(ctx, menuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submenu), args.Error(1)
}

func (m *MockMenuService) UpsertMenu(ctx context.Context, actor uuid.UUID, menu *models.Menu) (*models.Menu, error) {
	args := m.Called(ctx, actor, menu)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Menu), args.Error(1)
}

func (m *MockMenuService) UpsertSubmenu(ctx context.Context, actor uuid.UUID, submenu *models.Submenu) (*models.Submenu, error) {
	args := m.Called(ctx, actor, submenu)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submenu), args.Error(1)
}

func (m *MockMenuService) SetActive(ctx context.Context, actor uuid.UUID, kind models.NodeKind, id int64, active bool) error {
	args := m.Called(ctx, actor, kind, id, active)
	return args.Error(0)
}

func (m *MockMenuService) ReorderMenus(ctx context.Context, actor uuid.UUID, orderedIDs []int64) error {
	args := m.Called(ctx, actor, orderedIDs)
	return args.Error(0)
}

func (m *MockMenuService) ReorderSubmenus(ctx context.Context, actor uuid.UUID, menuID int64, orderedIDs []int64) error {
	args := m.Called(ctx, actor, menuID, orderedIDs)
	return args.Error(0)
}

func (m *MockMenuService) CurrentVersion() uint64 {
	args := m.Called()
	return args.Get(0).(uint64)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportRegistry(ctx context.Context) (*excelize.File, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*excelize.File), args.Error(1)
}

type MenuHandlersTestSuite struct {
	suite.Suite
	mockService *MockMenuService
	mockExport  *MockExportService
	handlers    *MenuHandlers
	echo        *echo.Echo
	actorID     uuid.UUID
}

func (suite *MenuHandlersTestSuite) SetupTest() {
	suite.mockService = &MockMenuService{}
	suite.mockExport = &MockExportService{}
	suite.handlers = NewMenuHandlers(suite.mockService, suite.mockExport)
	suite.echo = echo.New()
	suite.echo.Validator = common.NewRequestValidator()
	suite.actorID = uuid.New()

	suite.mockService.Test(suite.T())
	suite.mockExport.Test(suite.T())
}

func (suite *MenuHandlersTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
	suite.mockExport.AssertExpectations(suite.T())
}

func TestMenuHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(MenuHandlersTestSuite))
}

func (suite *MenuHandlersTestSuite) newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req = req.WithContext(context.WithValue(req.Context(), common.UserIDKey, suite.actorID))
	rec := httptest.NewRecorder()
	return suite.echo.NewContext(req, rec), rec
}

func (suite *MenuHandlersTestSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body common.ErrorResponse
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func (suite *MenuHandlersTestSuite) TestCreateMenu_Success() {
	saved := &models.Menu{ID: 7, Title: "Reports", SortOrder: 10, IsActive: true}
	c, rec := suite.newContext(http.MethodPost, "/v1/admin/menus", `{"title":"Reports","sort_order":10}`)

	suite.mockService.On("UpsertMenu", mock.Anything, suite.actorID, mock.AnythingOfType("*models.Menu")).
		Return(saved, nil).Run(func(args mock.Arguments) {
		menu := args.Get(2).(*models.Menu)
		assert.Equal(suite.T(), int64(0), menu.ID)
		assert.Equal(suite.T(), "Reports", menu.Title)
		assert.True(suite.T(), menu.IsActive)
	})

	err := suite.handlers.CreateMenu(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
}

func (suite *MenuHandlersTestSuite) TestCreateMenu_ValidationErrorMapsTo400() {
	c, rec := suite.newContext(http.MethodPost, "/v1/admin/menus", `{"title":"   ","sort_order":0}`)

	suite.mockService.On("UpsertMenu", mock.Anything, suite.actorID, mock.Anything).
		Return(nil, apperrors.NewValidationError("title", "title is required"))

	err := suite.handlers.CreateMenu(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "VALIDATION_ERROR", suite.errorCode(rec))
}

func (suite *MenuHandlersTestSuite) TestCreateSubmenu_MissingParentMapsTo422() {
	c, rec := suite.newContext(http.MethodPost, "/v1/admin/submenus",
		`{"menu_id":42,"title":"Orphan","endpoint":"orphan.home"}`)

	suite.mockService.On("UpsertSubmenu", mock.Anything, suite.actorID, mock.Anything).
		Return(nil, &apperrors.ReferentialIntegrityError{ParentMenuID: 42})

	err := suite.handlers.CreateSubmenu(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(suite.T(), "REFERENTIAL_INTEGRITY", suite.errorCode(rec))
}

func (suite *MenuHandlersTestSuite) TestUpdateMenu_NotFoundMapsTo404() {
	c, rec := suite.newContext(http.MethodPut, "/v1/admin/menus/99", `{"title":"Ghost"}`)
	c.SetParamNames("id")
	c.SetParamValues("99")

	suite.mockService.On("UpsertMenu", mock.Anything, suite.actorID, mock.Anything).
		Return(nil, apperrors.ErrNotFound)

	err := suite.handlers.UpdateMenu(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), "NOT_FOUND", suite.errorCode(rec))
}

func (suite *MenuHandlersTestSuite) TestSetMenuActive_BadIDMapsTo400() {
	c, rec := suite.newContext(http.MethodPatch, "/v1/admin/menus/abc/active", `{"is_active":false}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := suite.handlers.SetMenuActive(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	suite.mockService.AssertNotCalled(suite.T(), "SetActive",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MenuHandlersTestSuite) TestSetSubmenuActive_Success() {
	c, rec := suite.newContext(http.MethodPatch, "/v1/admin/submenus/9/active", `{"is_active":false}`)
	c.SetParamNames("id")
	c.SetParamValues("9")

	suite.mockService.On("SetActive", mock.Anything, suite.actorID, models.KindSubmenu, int64(9), false).
		Return(nil)

	err := suite.handlers.SetSubmenuActive(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *MenuHandlersTestSuite) TestReorderMenus_UnknownIDMapsTo404() {
	c, rec := suite.newContext(http.MethodPut, "/v1/admin/menus/reorder", `{"ordered_ids":[3,99]}`)

	suite.mockService.On("ReorderMenus", mock.Anything, suite.actorID, []int64{3, 99}).
		Return(apperrors.ErrNotFound)

	err := suite.handlers.ReorderMenus(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *MenuHandlersTestSuite) TestReorderMenus_Success() {
	c, rec := suite.newContext(http.MethodPut, "/v1/admin/menus/reorder", `{"ordered_ids":[2,1]}`)

	suite.mockService.On("ReorderMenus", mock.Anything, suite.actorID, []int64{2, 1}).Return(nil)
	suite.mockService.On("CurrentVersion").Return(uint64(5))

	err := suite.handlers.ReorderMenus(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var body map[string]interface{}
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), float64(5), body["version"])
}

func (suite *MenuHandlersTestSuite) TestListMenus_IncludesVersion() {
	menus := []models.Menu{
		{ID: 1, Title: "Dashboard", IsActive: true},
		{ID: 2, Title: "Archive", IsActive: false},
	}
	c, rec := suite.newContext(http.MethodGet, "/v1/admin/menus", "")

	suite.mockService.On("ListMenus", mock.Anything).Return(menus, nil)
	suite.mockService.On("CurrentVersion").Return(uint64(3))

	err := suite.handlers.ListMenus(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	var listed []models.Menu
	assert.NoError(suite.T(), json.Unmarshal(body["menus"], &listed))
	assert.Len(suite.T(), listed, 2, "admin listing must include inactive menus")
}

func (suite *MenuHandlersTestSuite) TestExportRegistry_StreamsWorkbook() {
	f := excelize.NewFile()
	c, rec := suite.newContext(http.MethodGet, "/v1/admin/menus/export", "")

	suite.mockExport.On("ExportRegistry", mock.Anything).Return(f, nil)

	err := suite.handlers.ExportRegistry(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Header().Get(echo.HeaderContentDisposition), "navigation_registry.xlsx")
	assert.NotZero(suite.T(), rec.Body.Len())
}
