package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/construction_qa/internal/access"
	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
	"github.com/construction_qa/pkg/email"
	"github.com/construction_qa/pkg/utils"
)

// 服务层错误
var (
	ErrIssueNotFound   = errors.New("问题未找到")
	ErrProjectNotFound = errors.New("项目未找到")
	ErrUnitNotFound    = errors.New("单元未找到")

	ErrTitleRequired   = errors.New("问题标题不能为空")
	ErrUnitRequired    = errors.New("必须指定单元")
	ErrInvalidStatus   = errors.New("非法的问题状态")
	ErrInvalidPriority = errors.New("非法的优先级，允许值: Low, Medium, High")

	// ErrIssueVersionConflict 表示乐观并发冲突，调用方持有的版本已过期
	ErrIssueVersionConflict = errors.New("问题已被其他请求修改，请刷新后重试")

	// ErrNotAssignee 所有权校验失败：调用者不是被指派的用户，也不在被指派的团队
	ErrNotAssignee = errors.New("只有被指派的用户或其团队成员才能更新该问题")
)

// StatusNotAllowedError 表示目标状态不在角色可设置的状态集合内。
// 文案从访问控制表拼出，与表内容始终一致。
type StatusNotAllowedError struct {
	Role    models.UserRole
	Allowed []models.IssueStatus
}

func (e *StatusNotAllowedError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("Invalid status transition. Allowed: %s.", strings.Join(names, " or "))
}

// TransitionError 描述一次被状态机拒绝的流转，供处理器映射为400。
type TransitionError struct {
	From models.IssueStatus
	To   models.IssueStatus
	Role models.UserRole
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("角色 %s 不允许将问题从 %s 流转到 %s", e.Role, e.From, e.To)
}

// statusTransitions 是唯一的状态流转表：当前状态 → 目标状态 → 允许的角色。
// Reopened 在工作流上等价于 Open（返工），但作为独立状态保留在审计历史中。
// 超级管理员不在表内：它可以强制执行任意流转（逃生通道）。
var statusTransitions = map[models.IssueStatus]map[models.IssueStatus][]models.UserRole{
	models.StatusOpen: {
		models.StatusInProgress: {models.RoleContractor, models.RoleSubContractor},
		models.StatusFixed:      {models.RoleContractor, models.RoleSubContractor},
	},
	models.StatusReopened: {
		models.StatusInProgress: {models.RoleContractor, models.RoleSubContractor},
		models.StatusFixed:      {models.RoleContractor, models.RoleSubContractor},
	},
	models.StatusInProgress: {
		models.StatusFixed: {models.RoleContractor, models.RoleSubContractor},
	},
	models.StatusFixed: {
		models.StatusClosed:   {models.RoleQAVerify},
		models.StatusReopened: {models.RoleQAVerify},
	},
	models.StatusClosed: {
		models.StatusClosed:   {models.RoleQAVerify},
		models.StatusReopened: {models.RoleQAVerify},
	},
}

// Caller 是服务层视角的调用者身份（已通过认证与模块授权）。
type Caller struct {
	ID   string
	Role models.UserRole
}

// CreateIssueInput 定义创建问题所需的字段
type CreateIssueInput struct {
	ProjectID string
	UnitID    string
	Title     string

	Description   *string
	Priority      string
	DueDate       *time.Time
	CreatedByTeam *string
	AssignedTeam  *string
	AssignedUser  *string

	MediaBase64      *string
	MediaContentType *string
	Comments         *string
	Category         *string
	IssueType        *string
	IssueItem        *string
	Location         *string
}

// UpdateIssueInput 定义通用更新可修改的字段，nil 表示不修改。
// Version 必填：调用方必须回传读取时的版本号。
type UpdateIssueInput struct {
	Version int64

	Title        *string
	Description  *string
	Priority     *string
	Status       *string
	DueDate      *time.Time
	AssignedTeam *string
	AssignedUser *string

	MediaBase64      *string
	MediaContentType *string
	Comments         *string
	Category         *string
	IssueType        *string
	IssueItem        *string
	Location         *string
}

// IssueService 定义了问题生命周期服务的接口
type IssueService interface {
	GetAllIssues(pageNumber, pageSize int) ([]models.Issue, int64, bool, error)
	GetIssueByID(id string) (*models.Issue, error)
	// CreateIssue 创建问题。无论输入如何，初始状态强制为 Open。
	CreateIssue(caller Caller, input CreateIssueInput) (*models.Issue, error)
	// UpdateIssue 通用字段更新；若包含状态变更则同样经过状态机校验。
	UpdateIssue(caller Caller, id string, input UpdateIssueInput) (*models.Issue, error)
	// UpdateIssueStatus 状态流转入口，承包商/分包商/QA/管理员路由共用。
	UpdateIssueStatus(caller Caller, issueID string, targetStatus string, version int64, comments *string) (*models.Issue, error)
	DeleteIssue(id string) error

	ListIssuesByInspector(caller Caller) ([]models.Issue, error)
	ListAssignedIssues(caller Caller) ([]models.Issue, error)
	ListIssuesForVerification(caller Caller) ([]models.Issue, error)
	GetAllForExport() ([]models.Issue, error)
}

// issueService 是 IssueService 的实现
type issueService struct {
	repo        repositories.IssueRepository
	projectRepo repositories.ProjectRepository
	unitRepo    repositories.UnitRepository
	userRepo    repositories.UserRepository
	table       *access.Table
	// notify 为 nil 时不发送指派通知（测试环境）
	notify func(toEmail, fullName string, issue *models.Issue)
}

// NewIssueService 创建一个新的 issueService 实例
func NewIssueService(
	repo repositories.IssueRepository,
	projectRepo repositories.ProjectRepository,
	unitRepo repositories.UnitRepository,
	userRepo repositories.UserRepository,
	table *access.Table,
) IssueService {
	return &issueService{
		repo:        repo,
		projectRepo: projectRepo,
		unitRepo:    unitRepo,
		userRepo:    userRepo,
		table:       table,
		notify:      sendAssignmentNotification,
	}
}

// sendAssignmentNotification 异步发送指派通知邮件，失败只记录日志，绝不影响主流程。
func sendAssignmentNotification(toEmail, fullName string, issue *models.Issue) {
	go func() {
		if err := email.SendIssueAssignedEmail(toEmail, fullName, issue.Title, issue.ProjectName, string(issue.Priority)); err != nil {
			log.Printf("发送问题指派通知失败 (issue=%s, to=%s): %v", issue.ID, toEmail, err)
		}
	}()
}

// GetAllIssues 分页获取全部问题
func (s *issueService) GetAllIssues(pageNumber, pageSize int) ([]models.Issue, int64, bool, error) {
	issues, totalCount, err := s.repo.GetAllIssues(pageNumber, pageSize)
	if err != nil {
		return nil, 0, false, err
	}
	hasNext := utils.HasNextPage(totalCount, pageNumber, pageSize)
	return issues, totalCount, hasNext, nil
}

// GetIssueByID 根据ID获取单个问题
func (s *issueService) GetIssueByID(id string) (*models.Issue, error) {
	issue, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return issue, nil
}

// CreateIssue 创建问题。
// 安全不变量：新问题必定以 Open 状态诞生，调用方提交的状态值被直接忽略。
func (s *issueService) CreateIssue(caller Caller, input CreateIssueInput) (*models.Issue, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.UnitID) == "" {
		return nil, ErrUnitRequired
	}

	priority := models.PriorityMedium
	if input.Priority != "" {
		if !models.IsValidIssuePriority(input.Priority) {
			return nil, ErrInvalidPriority
		}
		priority = models.IssuePriority(input.Priority)
	}

	// 解析项目与单元，同时取冗余展示字段
	project, err := s.projectRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	unit, err := s.unitRepo.FindByID(input.UnitID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	now := time.Now()
	createdByUser := caller.ID
	issue := &models.Issue{
		DocumentStatus: true,
		ProjectID:      project.ID,
		UnitID:         &unit.ID,
		ProjectName:    project.ProjectName,
		UnitNumber:     &unit.UnitNumber,
		Status:         models.StatusOpen, // 强制 Open，问题不可能"出生即关闭"
		CreatedByTeam:  input.CreatedByTeam,
		CreatedByUser:  &createdByUser,
		AssignedTeam:   input.AssignedTeam,
		AssignedUser:   input.AssignedUser,
		Title:          title,
		Description:    input.Description,
		Priority:       priority,
		DueDate:        input.DueDate,

		MediaBase64:      input.MediaBase64,
		MediaContentType: input.MediaContentType,
		Comments:         input.Comments,
		Category:         input.Category,
		IssueType:        input.IssueType,
		IssueItem:        input.IssueItem,
		Location:         input.Location,

		Version:     1,
		CreatedUser: caller.ID,
		UpdatedUser: caller.ID,
		UpdatedAt:   now,
	}

	created, err := s.repo.CreateIssue(issue)
	if err != nil {
		return nil, err
	}

	s.notifyAssignee(created)
	return created, nil
}

// notifyAssignee 问题被指派到具体用户时发送通知邮件
func (s *issueService) notifyAssignee(issue *models.Issue) {
	if s.notify == nil || issue.AssignedUser == nil || *issue.AssignedUser == "" {
		return
	}
	assignee, err := s.userRepo.FindByID(*issue.AssignedUser)
	if err != nil {
		log.Printf("查询被指派用户失败 (issue=%s, user=%s): %v", issue.ID, *issue.AssignedUser, err)
		return
	}
	s.notify(assignee.Email, assignee.FullName, issue)
}

// callerTeamID 查询调用者所属团队，管理员与无团队用户返回空。
func (s *issueService) callerTeamID(caller Caller) string {
	if caller.Role == models.RoleSuperAdmin {
		return ""
	}
	user, err := s.userRepo.FindByID(caller.ID)
	if err != nil || user.TeamID == nil {
		return ""
	}
	return *user.TeamID
}

// isAssignee 所有权校验：调用者是被指派用户，或属于被指派团队。
func isAssignee(issue *models.Issue, callerID, callerTeamID string) bool {
	if issue.AssignedUser != nil && *issue.AssignedUser == callerID {
		return true
	}
	if issue.AssignedTeam != nil && callerTeamID != "" && *issue.AssignedTeam == callerTeamID {
		return true
	}
	return false
}

// applyTransition 是状态流转合法性判断的唯一入口。
// 校验顺序：状态值合法 → 角色可设置目标状态 → 流转表允许 → 所有权。
// 超级管理员跳过流转表与所有权（逃生通道），但目标状态必须合法。
func (s *issueService) applyTransition(issue *models.Issue, target models.IssueStatus, caller Caller) error {
	if !models.IsValidIssueStatus(string(target)) {
		if caller.Role == models.RoleQAVerify {
			return &StatusNotAllowedError{Role: caller.Role, Allowed: s.table.AllowedStatuses(caller.Role)}
		}
		return ErrInvalidStatus
	}

	if caller.Role == models.RoleSuperAdmin {
		return nil
	}

	if !s.table.CanSetStatus(caller.Role, target) {
		if caller.Role == models.RoleQAVerify {
			return &StatusNotAllowedError{Role: caller.Role, Allowed: s.table.AllowedStatuses(caller.Role)}
		}
		return &TransitionError{From: issue.Status, To: target, Role: caller.Role}
	}

	allowedRoles, ok := statusTransitions[issue.Status][target]
	if !ok {
		return &TransitionError{From: issue.Status, To: target, Role: caller.Role}
	}
	roleAllowed := false
	for _, r := range allowedRoles {
		if r == caller.Role {
			roleAllowed = true
			break
		}
	}
	if !roleAllowed {
		return &TransitionError{From: issue.Status, To: target, Role: caller.Role}
	}

	// 承包商/分包商/QA 都必须是问题的被指派方
	if !isAssignee(issue, caller.ID, s.callerTeamID(caller)) {
		return ErrNotAssignee
	}
	return nil
}

// UpdateIssueStatus 执行一次状态流转。
// 每次流转都会刷新 updatedUser/updatedAt；持久化是一次版本守卫的原子更新。
func (s *issueService) UpdateIssueStatus(caller Caller, issueID string, targetStatus string, version int64, comments *string) (*models.Issue, error) {
	issue, err := s.GetIssueByID(issueID)
	if err != nil {
		return nil, err
	}

	target := models.IssueStatus(targetStatus)
	if err := s.applyTransition(issue, target, caller); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":       target,
		"updated_user": caller.ID,
		"updated_at":   time.Now(),
	}
	if comments != nil {
		updates["comments"] = *comments
	}

	updated, err := s.repo.UpdateIssue(issueID, version, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrStaleVersion) {
			return nil, ErrIssueVersionConflict
		}
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return updated, nil
}

// UpdateIssue 通用字段更新。
// 即使没有任何字段变化，也会刷新 updatedUser/updatedAt（幂等审计约定）。
func (s *issueService) UpdateIssue(caller Caller, id string, input UpdateIssueInput) (*models.Issue, error) {
	issue, err := s.GetIssueByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_user": caller.ID,
		"updated_at":   time.Now(),
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		updates["title"] = title
	}
	if input.Priority != nil {
		if !models.IsValidIssuePriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		updates["priority"] = *input.Priority
	}
	// 状态变更不允许绕过状态机
	if input.Status != nil && models.IssueStatus(*input.Status) != issue.Status {
		target := models.IssueStatus(*input.Status)
		if err := s.applyTransition(issue, target, caller); err != nil {
			return nil, err
		}
		updates["status"] = target
	}

	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}
	if input.AssignedTeam != nil {
		updates["assigned_team"] = *input.AssignedTeam
	}
	if input.AssignedUser != nil {
		updates["assigned_user"] = *input.AssignedUser
	}
	if input.MediaBase64 != nil {
		updates["media_base64"] = *input.MediaBase64
	}
	if input.MediaContentType != nil {
		updates["media_content_type"] = *input.MediaContentType
	}
	if input.Comments != nil {
		updates["comments"] = *input.Comments
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.IssueType != nil {
		updates["issue_type"] = *input.IssueType
	}
	if input.IssueItem != nil {
		updates["issue_item"] = *input.IssueItem
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}

	updated, err := s.repo.UpdateIssue(id, input.Version, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrStaleVersion) {
			return nil, ErrIssueVersionConflict
		}
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}

	// 指派对象发生变化时发送通知
	if input.AssignedUser != nil && *input.AssignedUser != "" {
		s.notifyAssignee(updated)
	}
	return updated, nil
}

// DeleteIssue 物理删除问题（仅管理员路由暴露）
func (s *issueService) DeleteIssue(id string) error {
	if err := s.repo.DeleteIssue(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrIssueNotFound
		}
		return err
	}
	return nil
}

// ListIssuesByInspector 巡检视图：本人创建的问题
func (s *issueService) ListIssuesByInspector(caller Caller) ([]models.Issue, error) {
	return s.repo.ListByScope(repositories.IssueScope{CreatedByUser: caller.ID})
}

// ListAssignedIssues 承包商/分包商视图：指派给本人或本人团队的问题
func (s *issueService) ListAssignedIssues(caller Caller) ([]models.Issue, error) {
	return s.repo.ListByScope(repositories.IssueScope{
		AssignedUser: caller.ID,
		AssignedTeam: s.callerTeamID(caller),
	})
}

// ListIssuesForVerification QA视图：指派给本人或本人团队、处于待验收阶段的问题
func (s *issueService) ListIssuesForVerification(caller Caller) ([]models.Issue, error) {
	return s.repo.ListByScope(repositories.IssueScope{
		AssignedUser: caller.ID,
		AssignedTeam: s.callerTeamID(caller),
		Statuses:     []models.IssueStatus{models.StatusFixed, models.StatusClosed, models.StatusReopened},
	})
}

// GetAllForExport 导出用全量问题列表
func (s *issueService) GetAllForExport() ([]models.Issue, error) {
	return s.repo.GetAllForExport()
}
