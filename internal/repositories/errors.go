package repositories

import "errors"

// 仓库层通用错误。各仓库把 gorm.ErrRecordNotFound 统一转换为 ErrRecordNotFound，
// 服务层只依赖本包的哨兵错误，不感知 GORM。
var (
	ErrRecordNotFound = errors.New("记录未找到")

	// 唯一约束冲突类错误
	ErrProjectCodeExists   = errors.New("项目编号已存在")
	ErrTeamNameExists      = errors.New("团队名称已存在")
	ErrUserEmailExists     = errors.New("用户邮箱已存在")
	ErrAdminEmailExists    = errors.New("管理员邮箱已存在")
	ErrBuildingCodeExists  = errors.New("同一项目下楼栋编号已存在")
	ErrUnitNumberExists    = errors.New("同一楼栋下单元号已存在")
	ErrIssueTypeCombExists = errors.New("问题分类三元组已存在")

	// ErrStaleVersion 表示乐观并发冲突：调用方携带的版本号已过期
	ErrStaleVersion = errors.New("数据已被其他请求修改，请刷新后重试")
)
