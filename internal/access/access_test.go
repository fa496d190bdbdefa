package access

import (
	"testing"

	"github.com/construction_qa/internal/models"
)

func TestCanAccessModule(t *testing.T) {
	table := NewTable()

	cases := []struct {
		name   string
		role   models.UserRole
		module models.Module
		want   bool
	}{
		{"超级管理员可访问Admin模块", models.RoleSuperAdmin, models.ModuleAdmin, true},
		{"超级管理员可访问Teams模块", models.RoleSuperAdmin, models.ModuleTeams, true},
		{"巡检团队可访问Projects模块", models.RoleInspector, models.ModuleProjects, true},
		{"巡检团队不可访问Teams模块", models.RoleInspector, models.ModuleTeams, false},
		{"承包商不可访问Projects模块", models.RoleContractor, models.ModuleProjects, false},
		{"承包商可访问IssueTypes模块", models.RoleContractor, models.ModuleIssueTypes, true},
		{"分包商可访问Dashboard模块", models.RoleSubContractor, models.ModuleDashboard, true},
		{"QA团队可访问Units模块", models.RoleQAVerify, models.ModuleUnits, true},
		{"QA团队不可访问Users模块", models.RoleQAVerify, models.ModuleUsers, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := table.CanAccessModule(tc.role, tc.module); got != tc.want {
				t.Errorf("CanAccessModule(%q, %q) = %v, want %v", tc.role, tc.module, got, tc.want)
			}
		})
	}
}

// 未知角色或未知模块必须一律拒绝
func TestCanAccessModuleFailClosed(t *testing.T) {
	table := NewTable()

	if table.CanAccessModule(models.UserRole("Ghost Team"), models.ModuleProjects) {
		t.Error("未知角色不应获得任何模块权限")
	}
	if table.CanAccessModule(models.RoleSuperAdmin, models.Module("REPORTS")) {
		t.Error("未知模块不应对任何角色开放")
	}
	if table.CanAccessModule(models.UserRole(""), models.Module("")) {
		t.Error("空角色与空模块应被拒绝")
	}
}

func TestCanSetStatus(t *testing.T) {
	table := NewTable()

	cases := []struct {
		name   string
		role   models.UserRole
		status models.IssueStatus
		want   bool
	}{
		{"巡检团队可设置Open", models.RoleInspector, models.StatusOpen, true},
		{"巡检团队不可设置Closed", models.RoleInspector, models.StatusClosed, false},
		{"承包商可设置Fixed", models.RoleContractor, models.StatusFixed, true},
		{"承包商可设置InProgress", models.RoleContractor, models.StatusInProgress, true},
		{"承包商不可设置Closed", models.RoleContractor, models.StatusClosed, false},
		{"分包商可设置Fixed", models.RoleSubContractor, models.StatusFixed, true},
		{"QA团队可设置Closed", models.RoleQAVerify, models.StatusClosed, true},
		{"QA团队可设置Reopened", models.RoleQAVerify, models.StatusReopened, true},
		{"QA团队不可设置InProgress", models.RoleQAVerify, models.StatusInProgress, false},
		{"QA团队不可设置Fixed", models.RoleQAVerify, models.StatusFixed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := table.CanSetStatus(tc.role, tc.status); got != tc.want {
				t.Errorf("CanSetStatus(%q, %q) = %v, want %v", tc.role, tc.status, got, tc.want)
			}
		})
	}

	// 超级管理员可设置全部状态
	for _, s := range models.AllIssueStatuses() {
		if !table.CanSetStatus(models.RoleSuperAdmin, s) {
			t.Errorf("超级管理员应可设置状态 %q", s)
		}
	}
}

func TestCanSetStatusFailClosed(t *testing.T) {
	table := NewTable()

	if table.CanSetStatus(models.UserRole("Ghost Team"), models.StatusOpen) {
		t.Error("未知角色不应获得任何状态权限")
	}
	if table.CanSetStatus(models.RoleQAVerify, models.IssueStatus("Verified")) {
		t.Error("未定义的状态值应被拒绝")
	}
}

func TestAllowedStatusesOrderStable(t *testing.T) {
	table := NewTable()

	got := table.AllowedStatuses(models.RoleQAVerify)
	want := []models.IssueStatus{models.StatusClosed, models.StatusReopened}
	if len(got) != len(want) {
		t.Fatalf("AllowedStatuses(QA) 返回 %v, 期望 %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllowedStatuses(QA)[%d] = %q, 期望 %q", i, got[i], want[i])
		}
	}

	if table.AllowedStatuses(models.UserRole("Ghost Team")) != nil {
		t.Error("未知角色的 AllowedStatuses 应返回 nil")
	}
}
