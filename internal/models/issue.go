package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueStatus 定义了缺陷问题的生命周期状态。
// 状态枚举只在此处定义一份，状态机与权限表均引用这里。
type IssueStatus string

const (
	StatusOpen       IssueStatus = "Open"
	StatusInProgress IssueStatus = "In Progress"
	StatusFixed      IssueStatus = "Fixed"
	StatusClosed     IssueStatus = "Closed"
	StatusReopened   IssueStatus = "Reopened"
)

// AllIssueStatuses 返回全部合法状态。
func AllIssueStatuses() []IssueStatus {
	return []IssueStatus{StatusOpen, StatusInProgress, StatusFixed, StatusClosed, StatusReopened}
}

// IsValidIssueStatus 检查给定字符串是否为合法状态值。
func IsValidIssueStatus(status string) bool {
	for _, s := range AllIssueStatuses() {
		if string(s) == status {
			return true
		}
	}
	return false
}

// IssuePriority 定义了问题优先级。
type IssuePriority string

const (
	PriorityLow    IssuePriority = "Low"
	PriorityMedium IssuePriority = "Medium"
	PriorityHigh   IssuePriority = "High"
)

// IsValidIssuePriority 检查给定字符串是否为合法优先级。
func IsValidIssuePriority(priority string) bool {
	switch IssuePriority(priority) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Issue 对应于数据库中的 issues 表，是系统的核心可变实体。
// projectId 级联删除（项目删除时问题一并删除），unitId 置空删除（单元删除后问题保留）。
type Issue struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	DocumentStatus bool   `json:"documentStatus" gorm:"column:document_status;not null;default:true"`

	ProjectID string  `json:"projectId" gorm:"column:project_id;size:36;not null;index:idx_issues_project"`
	UnitID    *string `json:"unitId,omitempty" gorm:"column:unit_id;size:36;index:idx_issues_unit"`

	// 冗余存储项目名称与单元号，列表展示免去联表查询
	ProjectName string  `json:"projectName" gorm:"column:project_name;not null"`
	UnitNumber  *string `json:"unitNumber,omitempty" gorm:"column:unit_number"`

	Status IssueStatus `json:"status" gorm:"column:status;not null;default:'Open';index:idx_issues_status"`

	CreatedByTeam *string `json:"createdByTeam,omitempty" gorm:"column:created_by_team;size:36"`
	CreatedByUser *string `json:"createdByUser,omitempty" gorm:"column:created_by_user;size:36"`
	AssignedTeam  *string `json:"assignedTeam,omitempty" gorm:"column:assigned_team;size:36;index:idx_issues_assigned_team"`
	AssignedUser  *string `json:"assignedUser,omitempty" gorm:"column:assigned_user;size:36;index:idx_issues_assigned_user"`

	Title       string        `json:"title" gorm:"column:title;not null"`
	Description *string       `json:"description,omitempty" gorm:"column:description"`
	Priority    IssuePriority `json:"priority" gorm:"column:priority;not null;default:'Medium'"`
	DueDate     *time.Time    `json:"dueDate,omitempty" gorm:"column:due_date;index:idx_issues_due"`

	MediaBase64      *string `json:"mediaBase64,omitempty" gorm:"column:media_base64"`
	MediaContentType *string `json:"mediaContentType,omitempty" gorm:"column:media_content_type"`

	Comments  *string `json:"comments,omitempty" gorm:"column:comments"`
	Category  *string `json:"category,omitempty" gorm:"column:category"`
	IssueType *string `json:"issueType,omitempty" gorm:"column:issue_type"`
	IssueItem *string `json:"issueItem,omitempty" gorm:"column:issue_item"`
	Location  *string `json:"location,omitempty" gorm:"column:location"`

	// 乐观并发控制：每次更新要求携带读取时的版本号，版本不匹配则拒绝写入
	Version int64 `json:"version" gorm:"column:version;not null;default:1"`

	CreatedUser string    `json:"createdUser" gorm:"column:created_user;size:36"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedUser string    `json:"updatedUser" gorm:"column:updated_user;size:36"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;not null"`

	// 外键约束：项目删除级联删除问题，单元删除仅置空 unit_id
	Project *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Unit    *Unit    `json:"-" gorm:"foreignKey:UnitID;constraint:OnDelete:SET NULL"`
}

// TableName 指定 Issue 结构体对应的数据库表名
func (Issue) TableName() string {
	return "issues"
}

// BeforeCreate 在创建前自动生成UUID主键
func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
