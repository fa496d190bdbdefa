package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenType 令牌类型
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Token 对应于数据库中的 tokens 表，持久化已签发的刷新令牌。
// 登出时将对应记录标记为 blacklisted，刷新时校验该标记。
type Token struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	DocumentStatus bool   `json:"documentStatus" gorm:"column:document_status;not null;default:true"`

	Token     string    `json:"token" gorm:"column:token;not null;index:idx_tokens_token"`
	AccountID string    `json:"accountId" gorm:"column:account_id;size:36;not null;index:idx_tokens_account"`
	Type      string    `json:"type" gorm:"column:type;not null;size:20"` // access | refresh
	Expires   time.Time `json:"expires" gorm:"column:expires;not null"`

	Blacklisted bool `json:"blacklisted" gorm:"column:blacklisted;not null;default:false"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 Token 结构体对应的数据库表名
func (Token) TableName() string {
	return "tokens"
}

// BeforeCreate 在创建前自动生成UUID主键
func (t *Token) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
