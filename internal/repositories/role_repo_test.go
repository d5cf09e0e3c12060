package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"navhub/internal/apperrors"
	"navhub/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RoleRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    RoleRepository
	roleID  uuid.UUID
	context context.Context
}

func (suite *RoleRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewRoleRepo(mock)
	suite.roleID = uuid.New()
	suite.context = context.Background()
}

func (suite *RoleRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestRoleRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RoleRepoTestSuite))
}

func (suite *RoleRepoTestSuite) TestCreate_Success() {
	role := &models.Role{
		ID:          uuid.New(),
		Name:        "admin",
		Description: stringPtr("Full administrative access"),
	}

	suite.mock.ExpectExec(`
		INSERT INTO roles \(id, name, description, created_at\)
		VALUES \(\$1, \$2, \$3, NOW\(\)\)
		ON CONFLICT \(name\) DO NOTHING
	`).WithArgs(role.ID, role.Name, role.Description).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, role)
	assert.NoError(suite.T(), err)
}

func (suite *RoleRepoTestSuite) TestCreate_DuplicateName() {
	role := &models.Role{
		ID:   uuid.New(),
		Name: "admin",
	}

	suite.mock.ExpectExec(`
		INSERT INTO roles \(id, name, description, created_at\)
		VALUES \(\$1, \$2, \$3, NOW\(\)\)
		ON CONFLICT \(name\) DO NOTHING
	`).WithArgs(role.ID, role.Name, role.Description).
		WillReturnResult(pgxmock.NewResult("INSERT", 0)) // conflict skips silently

	err := suite.repo.Create(suite.context, role)
	assert.NoError(suite.T(), err)
}

func (suite *RoleRepoTestSuite) TestCreate_DatabaseError() {
	role := &models.Role{ID: uuid.New(), Name: "editor"}

	suite.mock.ExpectExec(`
		INSERT INTO roles \(id, name, description, created_at\)
		VALUES \(\$1, \$2, \$3, NOW\(\)\)
		ON CONFLICT \(name\) DO NOTHING
	`).WithArgs(role.ID, role.Name, role.Description).
		WillReturnError(errors.New("connection reset"))

	err := suite.repo.Create(suite.context, role)
	assert.Error(suite.T(), err)
}

func (suite *RoleRepoTestSuite) TestGetByID_Success() {
	createdAt := time.Now()

	suite.mock.ExpectQuery(`
		SELECT id, name, description, created_at
		FROM roles
		WHERE id = \$1
	`).WithArgs(suite.roleID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "created_at"}).
			AddRow(suite.roleID, "viewer", stringPtr("Read-only access"), createdAt))

	role, err := suite.repo.GetByID(suite.context, suite.roleID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.roleID, role.ID)
	assert.Equal(suite.T(), "viewer", role.Name)
	assert.Equal(suite.T(), "Read-only access", *role.Description)
}

func (suite *RoleRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`
		SELECT id, name, description, created_at
		FROM roles
		WHERE id = \$1
	`).WithArgs(suite.roleID).
		WillReturnError(pgx.ErrNoRows)

	role, err := suite.repo.GetByID(suite.context, suite.roleID)
	assert.Nil(suite.T(), role)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *RoleRepoTestSuite) TestGetByName_Success() {
	suite.mock.ExpectQuery(`
		SELECT id, name, description, created_at
		FROM roles
		WHERE name = \$1
	`).WithArgs("admin").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "created_at"}).
			AddRow(suite.roleID, "admin", nil, time.Now()))

	role, err := suite.repo.GetByName(suite.context, "admin")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "admin", role.Name)
	assert.Nil(suite.T(), role.Description)
}

func (suite *RoleRepoTestSuite) TestGetByName_NotFound() {
	suite.mock.ExpectQuery(`
		SELECT id, name, description, created_at
		FROM roles
		WHERE name = \$1
	`).WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	role, err := suite.repo.GetByName(suite.context, "ghost")
	assert.Nil(suite.T(), role)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *RoleRepoTestSuite) TestUpdate_Success() {
	role := &models.Role{ID: suite.roleID, Name: "editor", Description: stringPtr("Can edit")}

	suite.mock.ExpectExec(`
		UPDATE roles
		SET name = \$1, description = \$2
		WHERE id = \$3
	`).WithArgs(role.Name, role.Description, role.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, role)
	assert.NoError(suite.T(), err)
}

func (suite *RoleRepoTestSuite) TestUpdate_NotFound() {
	role := &models.Role{ID: suite.roleID, Name: "editor"}

	suite.mock.ExpectExec(`
		UPDATE roles
		SET name = \$1, description = \$2
		WHERE id = \$3
	`).WithArgs(role.Name, role.Description, role.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, role)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *RoleRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM roles WHERE id = \$1`).
		WithArgs(suite.roleID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.roleID)
	assert.NoError(suite.T(), err)
}

func (suite *RoleRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(`DELETE FROM roles WHERE id = \$1`).
		WithArgs(suite.roleID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.roleID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *RoleRepoTestSuite) TestList_OrderedByName() {
	adminID := uuid.New()
	viewerID := uuid.New()

	suite.mock.ExpectQuery(`
		SELECT id, name, description, created_at
		FROM roles
		ORDER BY name ASC
	`).WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "created_at"}).
		AddRow(adminID, "admin", nil, time.Now()).
		AddRow(viewerID, "viewer", nil, time.Now()))

	roles, err := suite.repo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), roles, 2)
	assert.Equal(suite.T(), "admin", roles[0].Name)
	assert.Equal(suite.T(), "viewer", roles[1].Name)
}

func (suite *RoleRepoTestSuite) TestList_Empty() {
	suite.mock.ExpectQuery(`
		SELECT id, name, description, created_at
		FROM roles
		ORDER BY name ASC
	`).WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "created_at"}))

	roles, err := suite.repo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), roles)
}

func stringPtr(s string) *string {
	return &s
}
