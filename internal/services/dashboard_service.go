package services

import (
	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
)

// DashboardSummary 仪表盘汇总数据。
// 管理员看全量，普通角色只看各自范围内的问题。
type DashboardSummary struct {
	TotalIssues int64 `json:"totalIssues"`
	OpenCount   int64 `json:"openCount"`
	ClosedCount int64 `json:"closedCount"`

	ByStatus   map[models.IssueStatus]int64   `json:"byStatus"`
	ByPriority map[models.IssuePriority]int64 `json:"byPriority"`
}

// DashboardService 定义了仪表盘服务的接口
type DashboardService interface {
	GetSummary(caller Caller) (*DashboardSummary, error)
}

// dashboardService 是 DashboardService 的实现
type dashboardService struct {
	issueRepo repositories.IssueRepository
	userRepo  repositories.UserRepository
}

// NewDashboardService 创建一个新的 dashboardService 实例
func NewDashboardService(issueRepo repositories.IssueRepository, userRepo repositories.UserRepository) DashboardService {
	return &dashboardService{issueRepo: issueRepo, userRepo: userRepo}
}

// scopeFor 按角色决定统计范围：
// 管理员全量，巡检看本人创建，QA验收看待验收状态，
// 承包商/分包商看指派给本人或本人团队的问题。
func (s *dashboardService) scopeFor(caller Caller) repositories.IssueScope {
	switch caller.Role {
	case models.RoleSuperAdmin:
		return repositories.IssueScope{}
	case models.RoleInspector:
		return repositories.IssueScope{CreatedByUser: caller.ID}
	case models.RoleQAVerify:
		return repositories.IssueScope{
			Statuses: []models.IssueStatus{models.StatusFixed, models.StatusClosed, models.StatusReopened},
		}
	default:
		scope := repositories.IssueScope{AssignedUser: caller.ID}
		if user, err := s.userRepo.FindByID(caller.ID); err == nil && user.TeamID != nil {
			scope.AssignedTeam = *user.TeamID
		}
		return scope
	}
}

// GetSummary 生成仪表盘汇总
func (s *dashboardService) GetSummary(caller Caller) (*DashboardSummary, error) {
	scope := s.scopeFor(caller)

	byStatus, err := s.issueRepo.CountByStatus(scope)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.issueRepo.CountByPriority(scope)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		ByStatus:   byStatus,
		ByPriority: byPriority,
	}
	for status, count := range byStatus {
		summary.TotalIssues += count
		switch status {
		case models.StatusClosed:
			summary.ClosedCount += count
		default:
			summary.OpenCount += count
		}
	}
	return summary, nil
}
