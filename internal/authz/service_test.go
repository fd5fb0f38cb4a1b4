package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestBuiltinSupportRoleCanAcceptRefunds(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	if err := svc.SetAdminRoles(3, []string{"support"}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}

	cases := []struct {
		obj   string
		act   string
		allow bool
	}{
		{obj: "/api/v1/admin/refunds", act: "GET", allow: true},
		{obj: "/api/v1/admin/refunds/12/accept", act: "post", allow: true},
		{obj: "/api/v1/admin/items", act: "POST", allow: false},
		{obj: "/api/v1/admin/coupons", act: "POST", allow: false},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceAdmin(3, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.act, tc.obj, err)
		}
		if allow != tc.allow {
			t.Fatalf("enforce %s %s want %v got %v", tc.act, tc.obj, tc.allow, allow)
		}
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	for i := 0; i < 2; i++ {
		if err := svc.BootstrapBuiltinRoles(); err != nil {
			t.Fatalf("bootstrap #%d failed: %v", i, err)
		}
	}
	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	want := []string{"role:merchandiser", "role:readonly_auditor", "role:support"}
	if strings.Join(roles, ",") != strings.Join(want, ",") {
		t.Fatalf("roles want %v got %v", want, roles)
	}
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.SetAdminRoles(2, []string{"support"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	if err := svc.SetAdminRoles(2, []string{"merchandiser"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:merchandiser" {
		t.Fatalf("roles want [role:merchandiser], got=%v", roles)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := map[string]string{
		"":                      "/",
		"admin/orders":          "/admin/orders",
		"/api/v1":               "/",
		"/api/v1/admin/refunds": "/admin/refunds",
	}
	for in, want := range cases {
		if got := NormalizeObject(in); got != want {
			t.Fatalf("NormalizeObject(%q) want %q got %q", in, want, got)
		}
	}
}
