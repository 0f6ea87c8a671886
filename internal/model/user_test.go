package model

import "testing"

func TestRoleIn(t *testing.T) {
	writers := []string{RoleSuperadmin, RoleEditor}

	tests := []struct {
		role     string
		allowed  []string
		expected bool
	}{
		{RoleSuperadmin, writers, true},
		{RoleEditor, writers, true},
		{RoleViewer, writers, false},
		{RoleViewer, Roles, true},
		{RoleEditor, []string{RoleSuperadmin}, false},
		{RoleSuperadmin, []string{RoleSuperadmin}, true},
		// Unknown roles fail closed, even if listed.
		{"admin", []string{"admin"}, false},
		{"", []string{""}, false},
		{RoleViewer, nil, false},
	}

	for _, tt := range tests {
		got := RoleIn(tt.role, tt.allowed...)
		if got != tt.expected {
			t.Errorf("RoleIn(%q, %v) = %v, want %v", tt.role, tt.allowed, got, tt.expected)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range Roles {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false, want true", r)
		}
	}
	for _, r := range []string{"", "admin", "Superadmin", "user"} {
		if ValidRole(r) {
			t.Errorf("ValidRole(%q) = true, want false", r)
		}
	}
}
