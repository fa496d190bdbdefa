// Package access 提供静态的角色访问控制表：
// 角色→模块 的访问权限，以及 角色→可设置状态 的权限。
// 表在进程启动时构建一次，之后只读，由中间件与服务层注入使用。
package access

import (
	"github.com/construction_qa/internal/models"
)

// Table 是不可变的访问控制表。未知角色、模块或状态一律拒绝（fail closed）。
type Table struct {
	moduleAccess map[models.Module]map[models.UserRole]struct{}
	statusAccess map[models.UserRole]map[models.IssueStatus]struct{}
}

// NewTable 构建默认访问控制表。
// 两个维度互相独立：模块权限决定能否进入某组路由，
// 状态权限决定角色允许把问题设置成哪些目标状态。
func NewTable() *Table {
	moduleAccess := map[models.Module][]models.UserRole{
		models.ModuleAdmin: {
			models.RoleSuperAdmin, // 全量权限
		},
		models.ModuleTeams: {
			models.RoleSuperAdmin, // 团队管理
		},
		models.ModuleUsers: {
			models.RoleSuperAdmin, // 用户管理
		},
		models.ModuleProjects: {
			models.RoleSuperAdmin, // 创建/分配项目
			models.RoleInspector,  // 查看所属项目、创建问题
			models.RoleQAVerify,   // 验收/关闭/重开问题
		},
		models.ModuleBuildings: {
			models.RoleSuperAdmin,
			models.RoleInspector,
			models.RoleQAVerify,
		},
		models.ModuleUnits: {
			models.RoleSuperAdmin,
			models.RoleInspector,
			models.RoleQAVerify,
		},
		models.ModuleIssueTypes: {
			models.RoleSuperAdmin,    // 全量配置
			models.RoleInspector,     // 创建问题
			models.RoleContractor,    // Open → Fixed/In Progress
			models.RoleSubContractor, // Open → Fixed/In Progress
			models.RoleQAVerify,      // 关闭/重开已验收问题
		},
		models.ModuleDashboard: {
			models.RoleSuperAdmin,    // 全量可见
			models.RoleInspector,     // 仅所属项目/楼栋
			models.RoleContractor,    // 仅自己的问题
			models.RoleSubContractor, // 仅自己的问题
			models.RoleQAVerify,      // 验收看板
		},
	}

	statusAccess := map[models.UserRole][]models.IssueStatus{
		models.RoleSuperAdmin: {
			models.StatusOpen, models.StatusInProgress, models.StatusFixed,
			models.StatusClosed, models.StatusReopened,
		},
		models.RoleInspector:     {models.StatusOpen},
		models.RoleContractor:    {models.StatusOpen, models.StatusInProgress, models.StatusFixed},
		models.RoleSubContractor: {models.StatusOpen, models.StatusInProgress, models.StatusFixed},
		models.RoleQAVerify:      {models.StatusClosed, models.StatusReopened},
	}

	t := &Table{
		moduleAccess: make(map[models.Module]map[models.UserRole]struct{}, len(moduleAccess)),
		statusAccess: make(map[models.UserRole]map[models.IssueStatus]struct{}, len(statusAccess)),
	}
	for module, roles := range moduleAccess {
		set := make(map[models.UserRole]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		t.moduleAccess[module] = set
	}
	for role, statuses := range statusAccess {
		set := make(map[models.IssueStatus]struct{}, len(statuses))
		for _, s := range statuses {
			set[s] = struct{}{}
		}
		t.statusAccess[role] = set
	}
	return t
}

// CanAccessModule 判断角色是否允许访问模块。纯查表，无副作用。
func (t *Table) CanAccessModule(role models.UserRole, module models.Module) bool {
	roles, ok := t.moduleAccess[module]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}

// CanSetStatus 判断角色是否允许把问题设置为目标状态。纯查表，无副作用。
func (t *Table) CanSetStatus(role models.UserRole, status models.IssueStatus) bool {
	statuses, ok := t.statusAccess[role]
	if !ok {
		return false
	}
	_, ok = statuses[status]
	return ok
}

// AllowedStatuses 返回角色允许设置的全部状态，用于错误提示。
func (t *Table) AllowedStatuses(role models.UserRole) []models.IssueStatus {
	statuses, ok := t.statusAccess[role]
	if !ok {
		return nil
	}
	result := make([]models.IssueStatus, 0, len(statuses))
	// 按固定顺序返回，保证错误消息稳定
	for _, s := range models.AllIssueStatuses() {
		if _, found := statuses[s]; found {
			result = append(result, s)
		}
	}
	return result
}
