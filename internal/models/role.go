package models

// UserRole 定义了系统中全部五种固定角色。
// 角色枚举只在此处定义一份，所有模块（权限表、服务层、处理器）均引用这里，
// 避免多处定义导致的取值漂移。
type UserRole string

const (
	RoleSuperAdmin    UserRole = "Super Admin/Admin"  // T1 超级管理员
	RoleInspector     UserRole = "Inspector Team"     // T2 巡检团队
	RoleContractor    UserRole = "Contractor Team"    // T3 承包商团队
	RoleSubContractor UserRole = "Sub-Contractor Team" // T4 分包商团队
	RoleQAVerify      UserRole = "Verify Team"        // T5 QA验收团队
)

// AllRoles 返回全部合法角色，用于校验和建表。
func AllRoles() []UserRole {
	return []UserRole{
		RoleSuperAdmin,
		RoleInspector,
		RoleContractor,
		RoleSubContractor,
		RoleQAVerify,
	}
}

// IsValidRole 检查给定字符串是否为合法角色值。
func IsValidRole(role string) bool {
	for _, r := range AllRoles() {
		if string(r) == role {
			return true
		}
	}
	return false
}

// Module 定义了访问控制的粒度单位，对应一组控制器路由。
type Module string

const (
	ModuleAdmin      Module = "ADMIN"
	ModuleTeams      Module = "TEAMS"
	ModuleUsers      Module = "USERS"
	ModuleProjects   Module = "PROJECTS"
	ModuleBuildings  Module = "BUILDINGS"
	ModuleUnits      Module = "UNITS"
	ModuleIssueTypes Module = "ISSUE_TYPES"
	ModuleDashboard  Module = "DASHBOARD"
)
