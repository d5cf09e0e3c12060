package integration

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"navhub/internal/apperrors"
	"navhub/internal/caching"
	"navhub/internal/models"
	"navhub/internal/navigation"
	"navhub/internal/services"
	"navhub/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// In-memory repository fakes. They honor the listing contract the real
// repositories provide, (sort_order, id) ascending, so the store and
// projector behave exactly as they do against Postgres.

type menuRepoFake struct {
	menus  map[int64]models.Menu
	nextID int64
}

func newMenuRepoFake() *menuRepoFake {
	return &menuRepoFake{menus: make(map[int64]models.Menu)}
}

func (f *menuRepoFake) Insert(_ context.Context, menu *models.Menu) error {
	f.nextID++
	menu.ID = f.nextID
	menu.CreatedAt = time.Now()
	f.menus[menu.ID] = *menu
	return nil
}

func (f *menuRepoFake) Update(_ context.Context, menu *models.Menu) error {
	existing, ok := f.menus[menu.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	menu.CreatedAt = existing.CreatedAt
	f.menus[menu.ID] = *menu
	return nil
}

func (f *menuRepoFake) GetByID(_ context.Context, id int64) (*models.Menu, error) {
	menu, ok := f.menus[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &menu, nil
}

func (f *menuRepoFake) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.menus[id]
	return ok, nil
}

func (f *menuRepoFake) List(_ context.Context) ([]models.Menu, error) {
	out := make([]models.Menu, 0, len(f.menus))
	for _, m := range f.menus {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *menuRepoFake) SetActive(_ context.Context, id int64, active bool) error {
	menu, ok := f.menus[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	menu.IsActive = active
	f.menus[id] = menu
	return nil
}

func (f *menuRepoFake) Reorder(_ context.Context, orderedIDs []int64) error {
	for pos, id := range orderedIDs {
		menu, ok := f.menus[id]
		if !ok {
			return apperrors.ErrNotFound
		}
		menu.SortOrder = pos + 1
		f.menus[id] = menu
	}
	return nil
}

type submenuRepoFake struct {
	submenus map[int64]models.Submenu
	nextID   int64
}

func newSubmenuRepoFake() *submenuRepoFake {
	return &submenuRepoFake{submenus: make(map[int64]models.Submenu)}
}

func (f *submenuRepoFake) Insert(_ context.Context, submenu *models.Submenu) error {
	f.nextID++
	submenu.ID = f.nextID
	submenu.CreatedAt = time.Now()
	f.submenus[submenu.ID] = *submenu
	return nil
}

func (f *submenuRepoFake) Update(_ context.Context, submenu *models.Submenu) error {
	existing, ok := f.submenus[submenu.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	submenu.CreatedAt = existing.CreatedAt
	f.submenus[submenu.ID] = *submenu
	return nil
}

func (f *submenuRepoFake) GetByID(_ context.Context, id int64) (*models.Submenu, error) {
	submenu, ok := f.submenus[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &submenu, nil
}

func (f *submenuRepoFake) ListByMenu(ctx context.Context, menuID int64) ([]models.Submenu, error) {
	all, _ := f.ListAll(ctx)
	out := make([]models.Submenu, 0, len(all))
	for _, sm := range all {
		if sm.MenuID == menuID {
			out = append(out, sm)
		}
	}
	return out, nil
}

func (f *submenuRepoFake) ListAll(_ context.Context) ([]models.Submenu, error) {
	out := make([]models.Submenu, 0, len(f.submenus))
	for _, sm := range f.submenus {
		out = append(out, sm)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *submenuRepoFake) SetActive(_ context.Context, id int64, active bool) error {
	submenu, ok := f.submenus[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	submenu.IsActive = active
	f.submenus[id] = submenu
	return nil
}

func (f *submenuRepoFake) Reorder(_ context.Context, menuID int64, orderedIDs []int64) error {
	for pos, id := range orderedIDs {
		submenu, ok := f.submenus[id]
		if !ok || submenu.MenuID != menuID {
			return apperrors.ErrNotFound
		}
		submenu.SortOrder = pos + 1
		f.submenus[id] = submenu
	}
	return nil
}

type rolePermissionRepoFake struct {
	codesByUser map[uuid.UUID][]string
	failWith    error
}

func newRolePermissionRepoFake() *rolePermissionRepoFake {
	return &rolePermissionRepoFake{codesByUser: make(map[uuid.UUID][]string)}
}

func (f *rolePermissionRepoFake) Grant(_ context.Context, _, _ uuid.UUID) error   { return nil }
func (f *rolePermissionRepoFake) Revoke(_ context.Context, _, _ uuid.UUID) error  { return nil }
func (f *rolePermissionRepoFake) ReplaceForRole(_ context.Context, _ uuid.UUID, _ []uuid.UUID) error {
	return nil
}
func (f *rolePermissionRepoFake) ListByRole(_ context.Context, _ uuid.UUID) ([]*models.RolePermission, error) {
	return nil, nil
}

func (f *rolePermissionRepoFake) GetCodesByUser(_ context.Context, userID uuid.UUID) ([]string, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.codesByUser[userID], nil
}

// NavigationFlowTestSuite exercises the real store, projector, projection
// cache and permission resolver wired together, with only persistence faked.
type NavigationFlowTestSuite struct {
	suite.Suite
	menuRepo    *menuRepoFake
	submenuRepo *submenuRepoFake
	permRepo    *rolePermissionRepoFake
	nodeStore   store.NodeStore
	navService  services.NavigationService

	viewerID uuid.UUID
	adminID  uuid.UUID
	ctx      context.Context

	reportsMenuID     int64
	overviewSubmenuID int64
	exportSubmenuID   int64
}

func TestNavigationFlowTestSuite(t *testing.T) {
	suite.Run(t, new(NavigationFlowTestSuite))
}

func (suite *NavigationFlowTestSuite) SetupTest() {
	suite.menuRepo = newMenuRepoFake()
	suite.submenuRepo = newSubmenuRepoFake()
	suite.permRepo = newRolePermissionRepoFake()
	suite.nodeStore = store.NewNodeStore(suite.menuRepo, suite.submenuRepo)

	rbac := services.NewRBACService(suite.permRepo, nil, time.Minute)
	projCache := caching.NewProjectionCache(caching.ProjectionCacheConfig{Capacity: 32})
	suite.navService = services.NewNavigationService(rbac, suite.nodeStore, projCache, navigation.Policy{}, nil)

	suite.viewerID = uuid.New()
	suite.adminID = uuid.New()
	suite.ctx = context.Background()

	suite.permRepo.codesByUser[suite.adminID] = []string{"reports.view", "reports.export"}
	suite.permRepo.codesByUser[suite.viewerID] = []string{"reports.view"}

	suite.seedTree()
}

func (suite *NavigationFlowTestSuite) seedTree() {
	menu, err := suite.nodeStore.UpsertMenu(suite.ctx, &models.Menu{Title: "Reports", SortOrder: 10, IsActive: true})
	suite.Require().NoError(err)
	suite.reportsMenuID = menu.ID

	endpoint := "reports.overview"
	code := "reports.view"
	overview, err := suite.nodeStore.UpsertSubmenu(suite.ctx, &models.Submenu{
		MenuID: menu.ID, Title: "Overview", Endpoint: &endpoint,
		PermissionCode: &code, SortOrder: 10, IsActive: true,
	})
	suite.Require().NoError(err)
	suite.overviewSubmenuID = overview.ID

	exportEndpoint := "reports.export"
	exportCode := "reports.export"
	export, err := suite.nodeStore.UpsertSubmenu(suite.ctx, &models.Submenu{
		MenuID: menu.ID, Title: "Export", Endpoint: &exportEndpoint,
		PermissionCode: &exportCode, SortOrder: 20, IsActive: true,
	})
	suite.Require().NoError(err)
	suite.exportSubmenuID = export.ID
}

func (suite *NavigationFlowTestSuite) submenuTitles(resp *services.NavigationResponse) []string {
	var titles []string
	for _, menu := range resp.Menus {
		for _, submenu := range menu.Submenus {
			titles = append(titles, submenu.Title)
		}
	}
	return titles
}

func (suite *NavigationFlowTestSuite) TestProjectionFollowsGrants() {
	adminResp, err := suite.navService.GetNavigation(suite.ctx, suite.adminID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), []string{"Overview", "Export"}, suite.submenuTitles(adminResp))

	viewerResp, err := suite.navService.GetNavigation(suite.ctx, suite.viewerID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), []string{"Overview"}, suite.submenuTitles(viewerResp))

	strangerResp, err := suite.navService.GetNavigation(suite.ctx, uuid.New())
	suite.Require().NoError(err)
	assert.Empty(suite.T(), strangerResp.Menus)
}

func (suite *NavigationFlowTestSuite) TestIdenticalGrantsShareCacheEntry() {
	twinID := uuid.New()
	suite.permRepo.codesByUser[twinID] = []string{"reports.view"}

	_, err := suite.navService.GetNavigation(suite.ctx, suite.viewerID)
	suite.Require().NoError(err)
	statsAfterFirst := suite.navService.CacheStats()

	_, err = suite.navService.GetNavigation(suite.ctx, twinID)
	suite.Require().NoError(err)
	statsAfterTwin := suite.navService.CacheStats()

	assert.Equal(suite.T(), statsAfterFirst.Misses, statsAfterTwin.Misses)
	assert.Equal(suite.T(), statsAfterFirst.Hits+1, statsAfterTwin.Hits)
}

func (suite *NavigationFlowTestSuite) TestMutationInvalidatesCachedProjection() {
	resp, err := suite.navService.GetNavigation(suite.ctx, suite.adminID)
	suite.Require().NoError(err)
	versionBefore := resp.Version

	endpoint := "reports.scheduled"
	code := "reports.view"
	_, err = suite.nodeStore.UpsertSubmenu(suite.ctx, &models.Submenu{
		MenuID: suite.reportsMenuID, Title: "Scheduled", Endpoint: &endpoint,
		PermissionCode: &code, SortOrder: 30, IsActive: true,
	})
	suite.Require().NoError(err)

	resp, err = suite.navService.GetNavigation(suite.ctx, suite.adminID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), versionBefore+1, resp.Version)
	assert.Contains(suite.T(), suite.submenuTitles(resp), "Scheduled")
}

func (suite *NavigationFlowTestSuite) TestRejectedMutationLeavesProjectionUntouched() {
	resp, err := suite.navService.GetNavigation(suite.ctx, suite.adminID)
	suite.Require().NoError(err)
	versionBefore := resp.Version

	endpoint := "orphan"
	_, err = suite.nodeStore.UpsertSubmenu(suite.ctx, &models.Submenu{
		MenuID: 9999, Title: "Orphan", Endpoint: &endpoint, SortOrder: 40, IsActive: true,
	})
	assert.True(suite.T(), apperrors.IsReferentialIntegrity(err))

	statsBefore := suite.navService.CacheStats()
	resp, err = suite.navService.GetNavigation(suite.ctx, suite.adminID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), versionBefore, resp.Version)
	assert.Equal(suite.T(), statsBefore.Hits+1, suite.navService.CacheStats().Hits)
}

func (suite *NavigationFlowTestSuite) TestDeactivatedSubmenuDisappears() {
	err := suite.nodeStore.SetActive(suite.ctx, models.KindSubmenu, suite.exportSubmenuID, false)
	suite.Require().NoError(err)

	resp, err := suite.navService.GetNavigation(suite.ctx, suite.adminID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), []string{"Overview"}, suite.submenuTitles(resp))
}

func (suite *NavigationFlowTestSuite) TestResolverOutageNeverDegradesToEmptyTree() {
	suite.permRepo.failWith = errors.New("authority timeout")

	resp, err := suite.navService.GetNavigation(suite.ctx, suite.adminID)
	assert.Nil(suite.T(), resp)
	assert.True(suite.T(), apperrors.IsAuthorityUnavailable(err))

	suite.permRepo.failWith = nil
	resp, err = suite.navService.GetNavigation(suite.ctx, suite.adminID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), []string{"Overview", "Export"}, suite.submenuTitles(resp))
}
