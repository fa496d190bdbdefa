package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueType 对应于数据库中的 issue_types 表，
// 提供问题分类三元组：大类/类型/条目（例如 Electrical/Switches/Light switch）。
// 三元组组合唯一。
type IssueType struct {
	ID string `json:"id" gorm:"primaryKey;size:36"`

	Category string `json:"category" gorm:"column:category;not null;uniqueIndex:uq_issue_types_combination"` // 例如 Electrical, Plumbing
	Type     string `json:"type" gorm:"column:type;not null;uniqueIndex:uq_issue_types_combination"`         // 例如 Switches, Pipes
	Item     string `json:"item" gorm:"column:item;not null;uniqueIndex:uq_issue_types_combination"`         // 例如 Light switch, Faucet
	Current  bool   `json:"current" gorm:"column:current;not null;default:true"`
}

// TableName 指定 IssueType 结构体对应的数据库表名
func (IssueType) TableName() string {
	return "issue_types"
}

// BeforeCreate 在创建前自动生成UUID主键
func (t *IssueType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
