package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
)

// ---- 内存假仓库 ----

type fakeIssueRepo struct {
	issues map[string]*models.Issue
	seq    int
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: make(map[string]*models.Issue)}
}

func (r *fakeIssueRepo) CreateIssue(issue *models.Issue) (*models.Issue, error) {
	r.seq++
	if issue.ID == "" {
		issue.ID = fmt.Sprintf("issue-%d", r.seq)
	}
	issue.CreatedAt = time.Now()
	stored := *issue
	r.issues[issue.ID] = &stored
	result := stored
	return &result, nil
}

func (r *fakeIssueRepo) FindByID(id string) (*models.Issue, error) {
	issue, ok := r.issues[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	result := *issue
	return &result, nil
}

func (r *fakeIssueRepo) GetAllIssues(pageNumber, pageSize int) ([]models.Issue, int64, error) {
	var all []models.Issue
	for _, issue := range r.issues {
		all = append(all, *issue)
	}
	return all, int64(len(all)), nil
}

func (r *fakeIssueRepo) ListByScope(scope repositories.IssueScope) ([]models.Issue, error) {
	var result []models.Issue
	for _, issue := range r.issues {
		if scope.CreatedByUser != "" {
			if issue.CreatedByUser == nil || *issue.CreatedByUser != scope.CreatedByUser {
				continue
			}
		}
		if scope.AssignedUser != "" || scope.AssignedTeam != "" {
			matchUser := scope.AssignedUser != "" && issue.AssignedUser != nil && *issue.AssignedUser == scope.AssignedUser
			matchTeam := scope.AssignedTeam != "" && issue.AssignedTeam != nil && *issue.AssignedTeam == scope.AssignedTeam
			if !matchUser && !matchTeam {
				continue
			}
		}
		if len(scope.Statuses) > 0 {
			found := false
			for _, s := range scope.Statuses {
				if issue.Status == s {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		result = append(result, *issue)
	}
	return result, nil
}

func (r *fakeIssueRepo) UpdateIssue(id string, version int64, updates map[string]interface{}) (*models.Issue, error) {
	issue, ok := r.issues[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	if issue.Version != version {
		return nil, repositories.ErrStaleVersion
	}
	for key, value := range updates {
		switch key {
		case "status":
			issue.Status = value.(models.IssueStatus)
		case "title":
			issue.Title = value.(string)
		case "priority":
			issue.Priority = models.IssuePriority(fmt.Sprintf("%v", value))
		case "comments":
			s := value.(string)
			issue.Comments = &s
		case "assigned_user":
			s := value.(string)
			issue.AssignedUser = &s
		case "assigned_team":
			s := value.(string)
			issue.AssignedTeam = &s
		case "updated_user":
			issue.UpdatedUser = value.(string)
		case "updated_at":
			issue.UpdatedAt = value.(time.Time)
		}
	}
	issue.Version++
	result := *issue
	return &result, nil
}

func (r *fakeIssueRepo) DeleteIssue(id string) error {
	if _, ok := r.issues[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(r.issues, id)
	return nil
}

func (r *fakeIssueRepo) CountByStatus(scope repositories.IssueScope) (map[models.IssueStatus]int64, error) {
	counts := make(map[models.IssueStatus]int64)
	issues, _ := r.ListByScope(scope)
	for _, issue := range issues {
		counts[issue.Status]++
	}
	return counts, nil
}

func (r *fakeIssueRepo) CountByPriority(scope repositories.IssueScope) (map[models.IssuePriority]int64, error) {
	counts := make(map[models.IssuePriority]int64)
	issues, _ := r.ListByScope(scope)
	for _, issue := range issues {
		counts[issue.Priority]++
	}
	return counts, nil
}

func (r *fakeIssueRepo) GetAllForExport() ([]models.Issue, error) {
	var all []models.Issue
	for _, issue := range r.issues {
		all = append(all, *issue)
	}
	return all, nil
}

type fakeProjectRepo struct {
	projects map[string]*models.Project
}

func (r *fakeProjectRepo) CreateProject(p *models.Project) (*models.Project, error) { return p, nil }
func (r *fakeProjectRepo) FindByID(id string) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return p, nil
}
func (r *fakeProjectRepo) FindByCode(code string) (*models.Project, error) {
	return nil, repositories.ErrRecordNotFound
}
func (r *fakeProjectRepo) GetAllProjects(pageNumber, pageSize int) ([]models.Project, int64, error) {
	return nil, 0, nil
}
func (r *fakeProjectRepo) UpdateProject(id string, updates map[string]interface{}) (*models.Project, error) {
	return nil, repositories.ErrRecordNotFound
}
func (r *fakeProjectRepo) DeleteProject(id string) error { return nil }

type fakeUnitRepo struct {
	units map[string]*models.Unit
}

func (r *fakeUnitRepo) CreateUnit(u *models.Unit) (*models.Unit, error) { return u, nil }
func (r *fakeUnitRepo) FindByID(id string) (*models.Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return u, nil
}
func (r *fakeUnitRepo) GetUnitsByBuildingID(buildingID string) ([]models.Unit, error) {
	return nil, nil
}
func (r *fakeUnitRepo) UpdateUnit(id string, updates map[string]interface{}) (*models.Unit, error) {
	return nil, repositories.ErrRecordNotFound
}
func (r *fakeUnitRepo) DeleteUnit(id string) error { return nil }

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) CreateUser(u *models.User) (*models.User, error) { return u, nil }
func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return u, nil
}
func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	return nil, repositories.ErrRecordNotFound
}
func (r *fakeUserRepo) GetAllUsers(pageNumber, pageSize int) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (r *fakeUserRepo) UpdateUser(id string, updates map[string]interface{}) (*models.User, error) {
	return nil, repositories.ErrRecordNotFound
}
func (r *fakeUserRepo) DeleteUser(id string) error { return nil }

// ---- 测试环境 ----

type issueServiceFixture struct {
	service   *issueService
	issueRepo *fakeIssueRepo
	userRepo  *fakeUserRepo
}

func newIssueServiceFixture() *issueServiceFixture {
	teamID := "team-1"
	projectRepo := &fakeProjectRepo{projects: map[string]*models.Project{
		"proj-1": {ID: "proj-1", ProjectCode: "P1", ProjectName: "滨江一期"},
	}}
	unitRepo := &fakeUnitRepo{units: map[string]*models.Unit{
		"unit-1": {ID: "unit-1", BuildingID: "bld-1", ProjectID: "proj-1", UnitNumber: "12-03"},
	}}
	userRepo := &fakeUserRepo{users: map[string]*models.User{
		"contractor-1": {ID: "contractor-1", FullName: "张三", Email: "c1@example.com", UserRole: models.RoleContractor, TeamID: &teamID},
		"contractor-2": {ID: "contractor-2", FullName: "李四", Email: "c2@example.com", UserRole: models.RoleContractor},
		"qa-1":         {ID: "qa-1", FullName: "王五", Email: "qa1@example.com", UserRole: models.RoleQAVerify},
		"inspector-1":  {ID: "inspector-1", FullName: "赵六", Email: "i1@example.com", UserRole: models.RoleInspector},
	}}
	issueRepo := newFakeIssueRepo()

	svc := &issueService{
		repo:        issueRepo,
		projectRepo: projectRepo,
		unitRepo:    unitRepo,
		userRepo:    userRepo,
		table:       access.NewTable(),
		notify:      nil, // 测试不发通知邮件
	}
	return &issueServiceFixture{service: svc, issueRepo: issueRepo, userRepo: userRepo}
}

// seedIssue 直接向假仓库注入一条指定状态的问题
func (f *issueServiceFixture) seedIssue(status models.IssueStatus, assignedUser, assignedTeam string) *models.Issue {
	issue := &models.Issue{
		ProjectID:   "proj-1",
		ProjectName: "滨江一期",
		Status:      status,
		Title:       "卫生间墙砖空鼓",
		Priority:    models.PriorityMedium,
		Version:     1,
	}
	if assignedUser != "" {
		issue.AssignedUser = &assignedUser
	}
	if assignedTeam != "" {
		issue.AssignedTeam = &assignedTeam
	}
	created, _ := f.issueRepo.CreateIssue(issue)
	return created
}

func TestCreateIssueForcesOpenStatus(t *testing.T) {
	f := newIssueServiceFixture()
	caller := Caller{ID: "inspector-1", Role: models.RoleInspector}

	created, err := f.service.CreateIssue(caller, CreateIssueInput{
		ProjectID: "proj-1",
		UnitID:    "unit-1",
		Title:     "  墙面裂缝  ",
		Priority:  "High",
	})
	if err != nil {
		t.Fatalf("CreateIssue returned error: %v", err)
	}
	if created.Status != models.StatusOpen {
		t.Errorf("new issue status = %q, want %q", created.Status, models.StatusOpen)
	}
	if created.Title != "墙面裂缝" {
		t.Errorf("title not trimmed: %q", created.Title)
	}
	if created.Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want High", created.Priority)
	}
	if created.Version != 1 {
		t.Errorf("version = %d, want 1", created.Version)
	}
	if created.CreatedByUser == nil || *created.CreatedByUser != "inspector-1" {
		t.Errorf("createdByUser = %v, want inspector-1", created.CreatedByUser)
	}
	if created.ProjectName != "滨江一期" {
		t.Errorf("projectName not denormalized: %q", created.ProjectName)
	}
	if created.UnitNumber == nil || *created.UnitNumber != "12-03" {
		t.Errorf("unitNumber not denormalized: %v", created.UnitNumber)
	}
}

func TestCreateIssueValidation(t *testing.T) {
	f := newIssueServiceFixture()
	caller := Caller{ID: "inspector-1", Role: models.RoleInspector}

	cases := []struct {
		name    string
		input   CreateIssueInput
		wantErr error
	}{
		{"空标题", CreateIssueInput{ProjectID: "proj-1", UnitID: "unit-1", Title: "   "}, ErrTitleRequired},
		{"缺少单元", CreateIssueInput{ProjectID: "proj-1", Title: "标题"}, ErrUnitRequired},
		{"非法优先级", CreateIssueInput{ProjectID: "proj-1", UnitID: "unit-1", Title: "标题", Priority: "Urgent"}, ErrInvalidPriority},
		{"项目不存在", CreateIssueInput{ProjectID: "proj-x", UnitID: "unit-1", Title: "标题"}, ErrProjectNotFound},
		{"单元不存在", CreateIssueInput{ProjectID: "proj-1", UnitID: "unit-x", Title: "标题"}, ErrUnitNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.service.CreateIssue(caller, tc.input); !errors.Is(err, tc.wantErr) {
				t.Errorf("CreateIssue error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateIssueDefaultsPriorityToMedium(t *testing.T) {
	f := newIssueServiceFixture()
	created, err := f.service.CreateIssue(Caller{ID: "inspector-1", Role: models.RoleInspector}, CreateIssueInput{
		ProjectID: "proj-1", UnitID: "unit-1", Title: "标题",
	})
	if err != nil {
		t.Fatalf("CreateIssue returned error: %v", err)
	}
	if created.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want Medium", created.Priority)
	}
}

func TestContractorTransitionRequiresOwnership(t *testing.T) {
	f := newIssueServiceFixture()
	issue := f.seedIssue(models.StatusOpen, "contractor-1", "")

	// 非被指派的承包商被拒绝
	_, err := f.service.UpdateIssueStatus(Caller{ID: "contractor-2", Role: models.RoleContractor}, issue.ID, "In Progress", 1, nil)
	if !errors.Is(err, ErrNotAssignee) {
		t.Fatalf("non-assignee error = %v, want ErrNotAssignee", err)
	}

	// 被指派用户本人可以流转
	updated, err := f.service.UpdateIssueStatus(Caller{ID: "contractor-1", Role: models.RoleContractor}, issue.ID, "In Progress", 1, nil)
	if err != nil {
		t.Fatalf("assignee transition failed: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("status = %q, want In Progress", updated.Status)
	}
	if updated.Version != 2 {
		t.Errorf("version = %d, want 2 after update", updated.Version)
	}
}

func TestContractorTeamMembershipGrantsOwnership(t *testing.T) {
	f := newIssueServiceFixture()
	// 只指派到团队，contractor-1 属于 team-1
	issue := f.seedIssue(models.StatusOpen, "", "team-1")

	updated, err := f.service.UpdateIssueStatus(Caller{ID: "contractor-1", Role: models.RoleContractor}, issue.ID, "Fixed", 1, nil)
	if err != nil {
		t.Fatalf("team member transition failed: %v", err)
	}
	if updated.Status != models.StatusFixed {
		t.Errorf("status = %q, want Fixed", updated.Status)
	}
}

func TestQATransitionLimitedToClosedOrReopened(t *testing.T) {
	f := newIssueServiceFixture()
	issue := f.seedIssue(models.StatusFixed, "qa-1", "")
	qa := Caller{ID: "qa-1", Role: models.RoleQAVerify}

	// QA 将 Fixed 问题设为 In Progress 必须被拒，错误文案从访问控制表生成
	_, err := f.service.UpdateIssueStatus(qa, issue.ID, "In Progress", 1, nil)
	var statusErr *StatusNotAllowedError
	if !errors.As(err, &statusErr) {
		t.Fatalf("QA invalid target error = %v, want *StatusNotAllowedError", err)
	}
	if got := statusErr.Error(); got != "Invalid status transition. Allowed: Closed or Reopened." {
		t.Errorf("QA error message = %q", got)
	}

	// 被拒的流转不允许落库
	stored, _ := f.issueRepo.FindByID(issue.ID)
	if stored.Status != models.StatusFixed {
		t.Errorf("rejected transition persisted: status = %q", stored.Status)
	}

	// Fixed → Closed 验收通过
	updated, err := f.service.UpdateIssueStatus(qa, issue.ID, "Closed", 1, nil)
	if err != nil {
		t.Fatalf("QA close failed: %v", err)
	}
	if updated.Status != models.StatusClosed {
		t.Errorf("status = %q, want Closed", updated.Status)
	}

	// Closed → Reopened 重开
	updated, err = f.service.UpdateIssueStatus(qa, issue.ID, "Reopened", updated.Version, nil)
	if err != nil {
		t.Fatalf("QA reopen failed: %v", err)
	}
	if updated.Status != models.StatusReopened {
		t.Errorf("status = %q, want Reopened", updated.Status)
	}
}

func TestTransitionTableRejectsSkips(t *testing.T) {
	f := newIssueServiceFixture()
	// 承包商不能直接关闭问题（Closed 不在其可设置状态内）
	issue := f.seedIssue(models.StatusFixed, "contractor-1", "")

	_, err := f.service.UpdateIssueStatus(Caller{ID: "contractor-1", Role: models.RoleContractor}, issue.ID, "Closed", 1, nil)
	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("contractor close error = %v, want *TransitionError", err)
	}

	// In Progress 状态下不允许回退到 Open
	issue2 := f.seedIssue(models.StatusInProgress, "contractor-1", "")
	_, err = f.service.UpdateIssueStatus(Caller{ID: "contractor-1", Role: models.RoleContractor}, issue2.ID, "Open", 1, nil)
	if !errors.As(err, &transitionErr) {
		t.Fatalf("backward transition error = %v, want *TransitionError", err)
	}
}

func TestSuperAdminBypassesTransitionTable(t *testing.T) {
	f := newIssueServiceFixture()
	issue := f.seedIssue(models.StatusClosed, "", "")
	admin := Caller{ID: "admin-1", Role: models.RoleSuperAdmin}

	// 管理员可执行任意流转，无需是被指派方
	updated, err := f.service.UpdateIssueStatus(admin, issue.ID, "Open", 1, nil)
	if err != nil {
		t.Fatalf("admin forced transition failed: %v", err)
	}
	if updated.Status != models.StatusOpen {
		t.Errorf("status = %q, want Open", updated.Status)
	}

	// 但目标状态必须是合法枚举值
	if _, err := f.service.UpdateIssueStatus(admin, issue.ID, "Verified", updated.Version, nil); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("admin invalid status error = %v, want ErrInvalidStatus", err)
	}
}

func TestStaleVersionRejected(t *testing.T) {
	f := newIssueServiceFixture()
	issue := f.seedIssue(models.StatusOpen, "contractor-1", "")
	caller := Caller{ID: "contractor-1", Role: models.RoleContractor}

	// 第一次更新成功，版本推进到2
	if _, err := f.service.UpdateIssueStatus(caller, issue.ID, "In Progress", 1, nil); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	// 携带过期版本的并发更新被拒
	_, err := f.service.UpdateIssueStatus(caller, issue.ID, "Fixed", 1, nil)
	if !errors.Is(err, ErrIssueVersionConflict) {
		t.Errorf("stale update error = %v, want ErrIssueVersionConflict", err)
	}
}

func TestUpdateIssueRefreshesAuditFields(t *testing.T) {
	f := newIssueServiceFixture()
	issue := f.seedIssue(models.StatusOpen, "contractor-1", "")
	caller := Caller{ID: "admin-1", Role: models.RoleSuperAdmin}

	before := time.Now()
	// 无字段变更的更新仍然刷新审计字段
	updated, err := f.service.UpdateIssue(caller, issue.ID, UpdateIssueInput{Version: 1})
	if err != nil {
		t.Fatalf("UpdateIssue returned error: %v", err)
	}
	if updated.UpdatedUser != "admin-1" {
		t.Errorf("updatedUser = %q, want admin-1", updated.UpdatedUser)
	}
	if updated.UpdatedAt.Before(before) {
		t.Errorf("updatedAt not refreshed: %v", updated.UpdatedAt)
	}
	if updated.Status != models.StatusOpen || updated.Title != issue.Title {
		t.Errorf("no-op update changed fields: status=%q title=%q", updated.Status, updated.Title)
	}
}

func TestUpdateIssueStatusChangeGoesThroughStateMachine(t *testing.T) {
	f := newIssueServiceFixture()
	issue := f.seedIssue(models.StatusOpen, "contractor-2", "")
	qa := Caller{ID: "qa-1", Role: models.RoleQAVerify}

	// 通用更新接口同样不允许绕过状态机
	status := "Closed"
	_, err := f.service.UpdateIssue(qa, issue.ID, UpdateIssueInput{Version: 1, Status: &status})
	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Errorf("generic update status bypass error = %v, want *TransitionError", err)
	}
}

func TestListIssuesByInspector(t *testing.T) {
	f := newIssueServiceFixture()
	inspector := "inspector-1"
	issue := f.seedIssue(models.StatusOpen, "", "")
	stored, _ := f.issueRepo.FindByID(issue.ID)
	stored.CreatedByUser = &inspector
	f.issueRepo.issues[issue.ID] = stored
	f.seedIssue(models.StatusOpen, "", "") // 他人创建的问题

	issues, err := f.service.ListIssuesByInspector(Caller{ID: inspector, Role: models.RoleInspector})
	if err != nil {
		t.Fatalf("ListIssuesByInspector returned error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}
	if issues[0].ID != issue.ID {
		t.Errorf("got issue %q, want %q", issues[0].ID, issue.ID)
	}
}

func TestListIssuesForVerificationFiltersStatus(t *testing.T) {
	f := newIssueServiceFixture()
	f.seedIssue(models.StatusOpen, "qa-1", "")
	fixedIssue := f.seedIssue(models.StatusFixed, "qa-1", "")

	issues, err := f.service.ListIssuesForVerification(Caller{ID: "qa-1", Role: models.RoleQAVerify})
	if err != nil {
		t.Fatalf("ListIssuesForVerification returned error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1 (only Fixed/Closed/Reopened)", len(issues))
	}
	if issues[0].ID != fixedIssue.ID {
		t.Errorf("got issue %q, want %q", issues[0].ID, fixedIssue.ID)
	}
}

func TestDeleteIssueNotFound(t *testing.T) {
	f := newIssueServiceFixture()
	if err := f.service.DeleteIssue("missing"); !errors.Is(err, ErrIssueNotFound) {
		t.Errorf("DeleteIssue error = %v, want ErrIssueNotFound", err)
	}
}
