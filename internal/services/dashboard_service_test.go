package services

import (
	"testing"

	"github.com/construction_qa/internal/models"
)

// dashboardFixture 复用问题服务的假仓库，预置一批覆盖各角色范围的问题
func dashboardFixture() (*dashboardService, *fakeIssueRepo, *fakeUserRepo) {
	f := newIssueServiceFixture()
	svc := &dashboardService{issueRepo: f.issueRepo, userRepo: f.userRepo}

	inspectorID := "inspector-1"
	contractorID := "contractor-1"
	teamID := "team-1"

	seed := []*models.Issue{
		{Status: models.StatusOpen, Priority: models.PriorityHigh, CreatedByUser: &inspectorID, AssignedUser: &contractorID, Version: 1},
		{Status: models.StatusInProgress, Priority: models.PriorityMedium, CreatedByUser: &inspectorID, AssignedTeam: &teamID, Version: 1},
		{Status: models.StatusFixed, Priority: models.PriorityMedium, CreatedByUser: &inspectorID, AssignedUser: &contractorID, Version: 1},
		{Status: models.StatusClosed, Priority: models.PriorityLow, Version: 1},
		{Status: models.StatusReopened, Priority: models.PriorityHigh, Version: 1},
	}
	for _, issue := range seed {
		issue.ProjectID = "proj-1"
		issue.ProjectName = "滨江一期"
		issue.Title = "卫生间墙砖空鼓"
		f.issueRepo.CreateIssue(issue)
	}
	return svc, f.issueRepo, f.userRepo
}

func TestDashboardSummaryForAdmin(t *testing.T) {
	svc, _, _ := dashboardFixture()

	summary, err := svc.GetSummary(Caller{ID: "admin-1", Role: models.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("GetSummary returned error: %v", err)
	}
	if summary.TotalIssues != 5 {
		t.Errorf("TotalIssues = %d, want 5", summary.TotalIssues)
	}
	if summary.ClosedCount != 1 {
		t.Errorf("ClosedCount = %d, want 1", summary.ClosedCount)
	}
	if summary.OpenCount != 4 {
		t.Errorf("OpenCount = %d, want 4", summary.OpenCount)
	}
	if summary.ByStatus[models.StatusFixed] != 1 {
		t.Errorf("ByStatus[Fixed] = %d, want 1", summary.ByStatus[models.StatusFixed])
	}
	if summary.ByPriority[models.PriorityHigh] != 2 {
		t.Errorf("ByPriority[High] = %d, want 2", summary.ByPriority[models.PriorityHigh])
	}
}

func TestDashboardSummaryScopedToInspector(t *testing.T) {
	svc, _, _ := dashboardFixture()

	summary, err := svc.GetSummary(Caller{ID: "inspector-1", Role: models.RoleInspector})
	if err != nil {
		t.Fatalf("GetSummary returned error: %v", err)
	}
	// 巡检只统计本人创建的3条
	if summary.TotalIssues != 3 {
		t.Errorf("TotalIssues = %d, want 3", summary.TotalIssues)
	}
	if summary.ClosedCount != 0 {
		t.Errorf("ClosedCount = %d, want 0", summary.ClosedCount)
	}
}

func TestDashboardSummaryScopedToContractorTeam(t *testing.T) {
	svc, _, _ := dashboardFixture()

	// contractor-1 属于 team-1：直接指派2条 + 团队指派1条
	summary, err := svc.GetSummary(Caller{ID: "contractor-1", Role: models.RoleContractor})
	if err != nil {
		t.Fatalf("GetSummary returned error: %v", err)
	}
	if summary.TotalIssues != 3 {
		t.Errorf("TotalIssues = %d, want 3", summary.TotalIssues)
	}

	// contractor-2 没有团队也没有指派
	summary, err = svc.GetSummary(Caller{ID: "contractor-2", Role: models.RoleContractor})
	if err != nil {
		t.Fatalf("GetSummary returned error: %v", err)
	}
	if summary.TotalIssues != 0 {
		t.Errorf("unassigned contractor TotalIssues = %d, want 0", summary.TotalIssues)
	}
}

func TestDashboardSummaryScopedToVerifier(t *testing.T) {
	svc, _, _ := dashboardFixture()

	// QA验收只统计待验收状态: Fixed/Closed/Reopened
	summary, err := svc.GetSummary(Caller{ID: "qa-1", Role: models.RoleQAVerify})
	if err != nil {
		t.Fatalf("GetSummary returned error: %v", err)
	}
	if summary.TotalIssues != 3 {
		t.Errorf("TotalIssues = %d, want 3", summary.TotalIssues)
	}
	if summary.ByStatus[models.StatusOpen] != 0 {
		t.Errorf("ByStatus[Open] = %d, want 0", summary.ByStatus[models.StatusOpen])
	}
	if summary.ClosedCount != 1 {
		t.Errorf("ClosedCount = %d, want 1", summary.ClosedCount)
	}
}
