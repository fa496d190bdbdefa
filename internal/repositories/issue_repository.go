package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/pkg/utils"
)

// IssueScope 描述看板统计与角色视图的过滤范围。
// 零值表示不过滤（管理员全量视图）。
type IssueScope struct {
	CreatedByUser string
	AssignedUser  string
	AssignedTeam  string
	Statuses      []models.IssueStatus
}

// IssueRepository 定义了问题数据仓库的接口
type IssueRepository interface {
	CreateIssue(issue *models.Issue) (*models.Issue, error)
	FindByID(id string) (*models.Issue, error)
	GetAllIssues(pageNumber, pageSize int) ([]models.Issue, int64, error)
	ListByScope(scope IssueScope) ([]models.Issue, error)
	// UpdateIssue 以单条原子语句更新：WHERE id = ? AND version = ?，
	// 版本不匹配返回 ErrStaleVersion，记录不存在返回 ErrRecordNotFound。
	UpdateIssue(id string, version int64, updates map[string]interface{}) (*models.Issue, error)
	DeleteIssue(id string) error
	CountByStatus(scope IssueScope) (map[models.IssueStatus]int64, error)
	CountByPriority(scope IssueScope) (map[models.IssuePriority]int64, error)
	GetAllForExport() ([]models.Issue, error)
}

// gormIssueRepository 是 IssueRepository 的 GORM 实现
type gormIssueRepository struct {
	db *gorm.DB
}

// NewGormIssueRepository 创建一个新的 gormIssueRepository 实例
func NewGormIssueRepository(db *gorm.DB) IssueRepository {
	return &gormIssueRepository{db: db}
}

// CreateIssue 在数据库中创建一条问题记录
func (r *gormIssueRepository) CreateIssue(issue *models.Issue) (*models.Issue, error) {
	if err := r.db.Create(issue).Error; err != nil {
		return nil, err
	}
	return issue, nil
}

// FindByID 根据主键查询问题
func (r *gormIssueRepository) FindByID(id string) (*models.Issue, error) {
	var issue models.Issue
	if err := r.db.First(&issue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// GetAllIssues 分页查询全部问题，返回列表与总数
func (r *gormIssueRepository) GetAllIssues(pageNumber, pageSize int) ([]models.Issue, int64, error) {
	var totalCount int64
	if err := r.db.Model(&models.Issue{}).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var issues []models.Issue
	offset := utils.PaginationOffset(pageNumber, pageSize)
	if err := r.db.Order("created_at desc").Limit(pageSize).Offset(offset).Find(&issues).Error; err != nil {
		return nil, 0, err
	}
	return issues, totalCount, nil
}

// scopedQuery 按范围条件组装查询
func (r *gormIssueRepository) scopedQuery(scope IssueScope) *gorm.DB {
	query := r.db.Model(&models.Issue{})
	if scope.CreatedByUser != "" {
		query = query.Where("created_by_user = ?", scope.CreatedByUser)
	}
	if scope.AssignedUser != "" && scope.AssignedTeam != "" {
		query = query.Where("assigned_user = ? OR assigned_team = ?", scope.AssignedUser, scope.AssignedTeam)
	} else if scope.AssignedUser != "" {
		query = query.Where("assigned_user = ?", scope.AssignedUser)
	} else if scope.AssignedTeam != "" {
		query = query.Where("assigned_team = ?", scope.AssignedTeam)
	}
	if len(scope.Statuses) > 0 {
		query = query.Where("status IN ?", scope.Statuses)
	}
	return query
}

// ListByScope 查询范围内的问题列表（巡检/承包商/QA的角色视图）
func (r *gormIssueRepository) ListByScope(scope IssueScope) ([]models.Issue, error) {
	var issues []models.Issue
	if err := r.scopedQuery(scope).Order("created_at desc").Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

// UpdateIssue 版本守卫更新。整个更新是一条 UPDATE 语句：
// 命中行数为0时区分"记录不存在"与"版本过期"两种失败。
func (r *gormIssueRepository) UpdateIssue(id string, version int64, updates map[string]interface{}) (*models.Issue, error) {
	updates["version"] = gorm.Expr("version + 1")

	result := r.db.Model(&models.Issue{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Issue{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrRecordNotFound
		}
		return nil, ErrStaleVersion
	}

	return r.FindByID(id)
}

// DeleteIssue 物理删除问题记录（仅管理员入口暴露）
func (r *gormIssueRepository) DeleteIssue(id string) error {
	result := r.db.Delete(&models.Issue{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// CountByStatus 按状态统计范围内的问题数量
func (r *gormIssueRepository) CountByStatus(scope IssueScope) (map[models.IssueStatus]int64, error) {
	type row struct {
		Status models.IssueStatus
		Count  int64
	}
	var rows []row
	if err := r.scopedQuery(scope).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.IssueStatus]int64, len(rows))
	for _, item := range rows {
		counts[item.Status] = item.Count
	}
	return counts, nil
}

// CountByPriority 按优先级统计范围内的问题数量
func (r *gormIssueRepository) CountByPriority(scope IssueScope) (map[models.IssuePriority]int64, error) {
	type row struct {
		Priority models.IssuePriority
		Count    int64
	}
	var rows []row
	if err := r.scopedQuery(scope).
		Select("priority, count(*) as count").
		Group("priority").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.IssuePriority]int64, len(rows))
	for _, item := range rows {
		counts[item.Priority] = item.Count
	}
	return counts, nil
}

// GetAllForExport 导出用全量查询，按项目与创建时间排序
func (r *gormIssueRepository) GetAllForExport() ([]models.Issue, error) {
	var issues []models.Issue
	if err := r.db.Order("project_name asc, created_at asc").Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}
