package services

import (
	"errors"
	"testing"
	"time"

	"github.com/construction_qa/internal/models"
	"github.com/construction_qa/internal/repositories"
)

type fakeProfileUserRepo struct {
	users map[string]*models.User
}

func (r *fakeProfileUserRepo) CreateUser(u *models.User) (*models.User, error) { return u, nil }

func (r *fakeProfileUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	result := *u
	return &result, nil
}

func (r *fakeProfileUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *fakeProfileUserRepo) GetAllUsers(pageNumber, pageSize int) ([]models.User, int64, error) {
	var all []models.User
	for _, u := range r.users {
		all = append(all, *u)
	}
	return all, int64(len(r.users)), nil
}

func (r *fakeProfileUserRepo) UpdateUser(id string, updates map[string]interface{}) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "full_name":
			user.FullName = value.(string)
		case "email":
			user.Email = value.(string)
		case "updated_user":
			user.UpdatedUser = value.(string)
		case "updated_at":
			user.UpdatedAt = value.(time.Time)
		}
	}
	result := *user
	return &result, nil
}

func (r *fakeProfileUserRepo) DeleteUser(id string) error { return nil }

type fakeProfileAdminRepo struct {
	admins map[string]*models.Admin
}

func (r *fakeProfileAdminRepo) CreateAdmin(a *models.Admin) (*models.Admin, error) { return a, nil }

func (r *fakeProfileAdminRepo) FindByID(id string) (*models.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	result := *a
	return &result, nil
}

func (r *fakeProfileAdminRepo) FindByEmail(email string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			result := *a
			return &result, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *fakeProfileAdminRepo) GetAllAdmins(pageNumber, pageSize int) ([]models.Admin, int64, error) {
	return nil, 0, nil
}

func (r *fakeProfileAdminRepo) UpdateAdmin(id string, updates map[string]interface{}) (*models.Admin, error) {
	admin, ok := r.admins[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "admin_user_name":
			admin.AdminUserName = value.(string)
		case "email":
			admin.Email = value.(string)
		case "updated_user":
			admin.UpdatedUser = value.(string)
		case "updated_at":
			admin.UpdatedAt = value.(time.Time)
		}
	}
	result := *admin
	return &result, nil
}

func (r *fakeProfileAdminRepo) DeleteAdmin(id string) error { return nil }

func newProfileFixture() (*profileService, *fakeProfileUserRepo, *fakeProfileAdminRepo) {
	teamID := "team-1"
	userRepo := &fakeProfileUserRepo{users: map[string]*models.User{
		"contractor-1": {ID: "contractor-1", FullName: "张三", Email: "c1@example.com", UserRole: models.RoleContractor, TeamID: &teamID},
		"inspector-1":  {ID: "inspector-1", FullName: "赵六", Email: "i1@example.com", UserRole: models.RoleInspector},
	}}
	adminRepo := &fakeProfileAdminRepo{admins: map[string]*models.Admin{
		"admin-1": {ID: "admin-1", AdminUserName: "系统管理员", Email: "admin@example.com"},
	}}
	return &profileService{userRepo: userRepo, adminRepo: adminRepo}, userRepo, adminRepo
}

func TestGetProfileResolvesUserThenAdmin(t *testing.T) {
	svc, _, _ := newProfileFixture()

	profile, err := svc.GetProfile(Caller{ID: "contractor-1", Role: models.RoleContractor})
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if profile.FullName != "张三" || profile.Role != models.RoleContractor {
		t.Errorf("user profile = %+v", profile)
	}
	if profile.IsAdmin {
		t.Error("user profile marked as admin")
	}
	if profile.TeamID == nil || *profile.TeamID != "team-1" {
		t.Errorf("TeamID = %v, want team-1", profile.TeamID)
	}

	// 用户表查不到时回落到管理员表
	profile, err = svc.GetProfile(Caller{ID: "admin-1", Role: models.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("GetProfile for admin returned error: %v", err)
	}
	if !profile.IsAdmin || profile.Role != models.RoleSuperAdmin {
		t.Errorf("admin profile = %+v", profile)
	}
	if profile.FullName != "系统管理员" {
		t.Errorf("admin FullName = %q", profile.FullName)
	}

	if _, err := svc.GetProfile(Caller{ID: "ghost", Role: models.RoleContractor}); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("unknown account error = %v, want ErrProfileNotFound", err)
	}
}

func TestUpdateProfileNormalizesFields(t *testing.T) {
	svc, userRepo, _ := newProfileFixture()
	newName := "  张三丰  "
	newEmail := "New.Name@Example.COM"

	profile, err := svc.UpdateProfile(Caller{ID: "contractor-1", Role: models.RoleContractor}, UpdateProfileInput{
		FullName: &newName,
		Email:    &newEmail,
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if profile.FullName != "张三丰" {
		t.Errorf("FullName = %q, want trimmed", profile.FullName)
	}
	if profile.Email != "new.name@example.com" {
		t.Errorf("Email = %q, want lowercased", profile.Email)
	}
	if stored := userRepo.users["contractor-1"]; stored.Email != "new.name@example.com" {
		t.Errorf("stored email = %q", stored.Email)
	}
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	svc, _, _ := newProfileFixture()

	// 其他用户已占用的邮箱
	taken := "i1@example.com"
	_, err := svc.UpdateProfile(Caller{ID: "contractor-1", Role: models.RoleContractor}, UpdateProfileInput{Email: &taken})
	if !errors.Is(err, ErrProfileEmailExists) {
		t.Fatalf("taken email error = %v, want ErrProfileEmailExists", err)
	}

	// 本人现有邮箱原样提交不算冲突
	own := "c1@example.com"
	if _, err := svc.UpdateProfile(Caller{ID: "contractor-1", Role: models.RoleContractor}, UpdateProfileInput{Email: &own}); err != nil {
		t.Errorf("resubmitting own email failed: %v", err)
	}
}

func TestUpdateProfileForAdminAccount(t *testing.T) {
	svc, _, adminRepo := newProfileFixture()
	newName := "总管理员"

	profile, err := svc.UpdateProfile(Caller{ID: "admin-1", Role: models.RoleSuperAdmin}, UpdateProfileInput{FullName: &newName})
	if err != nil {
		t.Fatalf("UpdateProfile for admin returned error: %v", err)
	}
	if profile.FullName != "总管理员" {
		t.Errorf("FullName = %q", profile.FullName)
	}
	if stored := adminRepo.admins["admin-1"]; stored.AdminUserName != "总管理员" {
		t.Errorf("stored AdminUserName = %q", stored.AdminUserName)
	}
}

func TestProfileAdminEndpointsRequireAdminRole(t *testing.T) {
	svc, _, _ := newProfileFixture()
	contractor := Caller{ID: "contractor-1", Role: models.RoleContractor}
	admin := Caller{ID: "admin-1", Role: models.RoleSuperAdmin}

	if _, _, _, err := svc.GetAllProfiles(contractor, 1, 10); !errors.Is(err, ErrProfileForbidden) {
		t.Errorf("GetAllProfiles by contractor error = %v, want ErrProfileForbidden", err)
	}
	if _, err := svc.GetProfileDetails(contractor, "inspector-1"); !errors.Is(err, ErrProfileForbidden) {
		t.Errorf("GetProfileDetails by contractor error = %v, want ErrProfileForbidden", err)
	}

	users, totalCount, hasNext, err := svc.GetAllProfiles(admin, 1, 10)
	if err != nil {
		t.Fatalf("GetAllProfiles by admin returned error: %v", err)
	}
	if totalCount != 2 || len(users) != 2 || hasNext {
		t.Errorf("GetAllProfiles = %d users, totalCount %d, hasNext %v", len(users), totalCount, hasNext)
	}

	user, err := svc.GetProfileDetails(admin, "inspector-1")
	if err != nil {
		t.Fatalf("GetProfileDetails by admin returned error: %v", err)
	}
	if user.FullName != "赵六" {
		t.Errorf("details FullName = %q", user.FullName)
	}

	if _, err := svc.GetProfileDetails(admin, "ghost"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("unknown user error = %v, want ErrProfileNotFound", err)
	}
}
