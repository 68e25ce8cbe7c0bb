package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func roleContext(roles ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), "u1", "", roles))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireRole_Allowed(t *testing.T) {
	c, rec := roleContext(RoleDentist)

	h := RequireRole(RoleDentist, RoleReceptionist)(okHandler)
	if err := h(c); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_AdminAlwaysAllowed(t *testing.T) {
	c, _ := roleContext(RoleAdmin)

	h := RequireRole(RoleDentist)(okHandler)
	if err := h(c); err != nil {
		t.Errorf("expected admin to pass, got %v", err)
	}
}

func TestRequireRole_Denied(t *testing.T) {
	c, _ := roleContext(RoleReceptionist)

	h := RequireRole(RoleDentist)(okHandler)
	expectStatus(t, h(c), http.StatusForbidden)
}

func TestRequireRole_NoRoles(t *testing.T) {
	c, _ := roleContext()

	h := RequireRole(RoleDentist)(okHandler)
	expectStatus(t, h(c), http.StatusForbidden)
}

func TestHasAnyRole(t *testing.T) {
	tests := []struct {
		have []string
		want []string
		ok   bool
	}{
		{[]string{RoleDentist}, []string{RoleDentist}, true},
		{[]string{RoleAdmin}, []string{RoleReceptionist}, true},
		{[]string{RoleReceptionist}, []string{RoleDentist}, false},
		{nil, []string{RoleDentist}, false},
	}
	for _, tt := range tests {
		if got := HasAnyRole(tt.have, tt.want...); got != tt.ok {
			t.Errorf("HasAnyRole(%v, %v) = %v, want %v", tt.have, tt.want, got, tt.ok)
		}
	}
}
