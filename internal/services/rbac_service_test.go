package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"navhub/internal/apperrors"
	"navhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockRolePermissionRepository struct {
	mock.Mock
}

func (m *MockRolePermissionRepository) Grant(ctx context.Context, roleID, permissionID uuid.UUID) error {
	args := m.Called(ctx, roleID, permissionID)
	return args.Error(0)
}

func (m *MockRolePermissionRepository) Revoke(ctx context.Context, roleID, permissionID uuid.UUID) error {
	args := m.Called(ctx, roleID, permissionID)
	return args.Error(0)
}

func (m *MockRolePermissionRepository) ReplaceForRole(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	args := m.Called(ctx, roleID, permissionIDs)
	return args.Error(0)
}

func (m *MockRolePermissionRepository) ListByRole(ctx context.Context, roleID uuid.UUID) ([]*models.RolePermission, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RolePermission), args.Error(1)
}

func (m *MockRolePermissionRepository) GetCodesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetPermissions(ctx context.Context, userID uuid.UUID) ([]string, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Bool(1), args.Error(2)
}

func (m *MockCacheService) SetPermissions(ctx context.Context, userID uuid.UUID, codes []string, ttl time.Duration) error {
	args := m.Called(ctx, userID, codes, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidatePermissions(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateAllPermissions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type RBACServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockRolePermissionRepository
	mockCache *MockCacheService
	service   RBACService
	userID    uuid.UUID
	ctx       context.Context
}

func (suite *RBACServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockRolePermissionRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewRBACService(suite.mockRepo, suite.mockCache, time.Minute)
	suite.userID = uuid.New()
	suite.ctx = context.Background()

	suite.mockRepo.Test(suite.T())
	suite.mockCache.Test(suite.T())
}

func (suite *RBACServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestRBACServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RBACServiceTestSuite))
}

func (suite *RBACServiceTestSuite) TestResolvePermissions_CacheHitSkipsRepo() {
	suite.mockCache.On("GetPermissions", suite.ctx, suite.userID).
		Return([]string{"invoices.view", "menus.manage"}, true, nil)

	perms, err := suite.service.ResolvePermissions(suite.ctx, suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), perms.Has("invoices.view"))
	assert.True(suite.T(), perms.Has("menus.manage"))
	suite.mockRepo.AssertNotCalled(suite.T(), "GetCodesByUser", mock.Anything, mock.Anything)
}

func (suite *RBACServiceTestSuite) TestResolvePermissions_CachedEmptySetIsAnAnswer() {
	// A memoized empty set means "resolved: no grants", not a miss.
	suite.mockCache.On("GetPermissions", suite.ctx, suite.userID).
		Return([]string{}, true, nil)

	perms, err := suite.service.ResolvePermissions(suite.ctx, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), perms.Sorted())
	suite.mockRepo.AssertNotCalled(suite.T(), "GetCodesByUser", mock.Anything, mock.Anything)
}

func (suite *RBACServiceTestSuite) TestResolvePermissions_MissResolvesAndMemoizes() {
	codes := []string{"invoices.view"}
	suite.mockCache.On("GetPermissions", suite.ctx, suite.userID).Return(nil, false, nil)
	suite.mockRepo.On("GetCodesByUser", suite.ctx, suite.userID).Return(codes, nil)
	suite.mockCache.On("SetPermissions", suite.ctx, suite.userID, codes, time.Minute).Return(nil)

	perms, err := suite.service.ResolvePermissions(suite.ctx, suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), perms.Has("invoices.view"))
}

func (suite *RBACServiceTestSuite) TestResolvePermissions_RepoErrorNeverDegradesToEmptySet() {
	suite.mockCache.On("GetPermissions", suite.ctx, suite.userID).Return(nil, false, nil)
	suite.mockRepo.On("GetCodesByUser", suite.ctx, suite.userID).
		Return(nil, errors.New("connection refused"))

	perms, err := suite.service.ResolvePermissions(suite.ctx, suite.userID)
	assert.Nil(suite.T(), perms)
	assert.True(suite.T(), apperrors.IsAuthorityUnavailable(err))
	suite.mockCache.AssertNotCalled(suite.T(), "SetPermissions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RBACServiceTestSuite) TestResolvePermissions_CacheReadFailureFallsThroughToRepo() {
	suite.mockCache.On("GetPermissions", suite.ctx, suite.userID).
		Return(nil, false, errors.New("redis timeout"))
	suite.mockRepo.On("GetCodesByUser", suite.ctx, suite.userID).Return([]string{"menus.manage"}, nil)
	suite.mockCache.On("SetPermissions", suite.ctx, suite.userID, []string{"menus.manage"}, time.Minute).Return(nil)

	perms, err := suite.service.ResolvePermissions(suite.ctx, suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), perms.Has("menus.manage"))
}

func (suite *RBACServiceTestSuite) TestResolvePermissions_CacheWriteFailureNonFatal() {
	codes := []string{"invoices.view"}
	suite.mockCache.On("GetPermissions", suite.ctx, suite.userID).Return(nil, false, nil)
	suite.mockRepo.On("GetCodesByUser", suite.ctx, suite.userID).Return(codes, nil)
	suite.mockCache.On("SetPermissions", suite.ctx, suite.userID, codes, time.Minute).
		Return(errors.New("redis write failed"))

	perms, err := suite.service.ResolvePermissions(suite.ctx, suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), perms.Has("invoices.view"))
}

func (suite *RBACServiceTestSuite) TestResolvePermissions_NoCacheConfigured() {
	service := NewRBACService(suite.mockRepo, nil, time.Minute)
	suite.mockRepo.On("GetCodesByUser", suite.ctx, suite.userID).Return([]string{"invoices.view"}, nil)

	perms, err := service.ResolvePermissions(suite.ctx, suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), perms.Has("invoices.view"))
}

func (suite *RBACServiceTestSuite) TestUserHasPermission() {
	suite.mockCache.On("GetPermissions", suite.ctx, suite.userID).
		Return([]string{"menus.manage"}, true, nil)

	granted, err := suite.service.UserHasPermission(suite.ctx, suite.userID, "menus.manage")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), granted)

	denied, err := suite.service.UserHasPermission(suite.ctx, suite.userID, "admin.rbac.manage")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), denied)
}

func (suite *RBACServiceTestSuite) TestUserHasPermission_AuthorityErrorPropagates() {
	suite.mockCache.On("GetPermissions", suite.ctx, suite.userID).Return(nil, false, nil)
	suite.mockRepo.On("GetCodesByUser", suite.ctx, suite.userID).
		Return(nil, errors.New("connection refused"))

	granted, err := suite.service.UserHasPermission(suite.ctx, suite.userID, "menus.manage")
	assert.False(suite.T(), granted)
	assert.True(suite.T(), apperrors.IsAuthorityUnavailable(err))
}

func (suite *RBACServiceTestSuite) TestInvalidateUser() {
	suite.mockCache.On("InvalidatePermissions", suite.ctx, suite.userID).Return(nil)
	suite.service.InvalidateUser(suite.ctx, suite.userID)
}

func (suite *RBACServiceTestSuite) TestInvalidateAll() {
	suite.mockCache.On("InvalidateAllPermissions", suite.ctx).Return(nil)
	suite.service.InvalidateAll(suite.ctx)
}

func (suite *RBACServiceTestSuite) TestInvalidate_NoCacheConfiguredIsNoop() {
	service := NewRBACService(suite.mockRepo, nil, time.Minute)
	service.InvalidateUser(suite.ctx, suite.userID)
	service.InvalidateAll(suite.ctx)
}
