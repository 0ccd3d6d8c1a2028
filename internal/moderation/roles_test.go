package moderation

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"user":      RoleUser,
		"developer": RoleDeveloper,
		"moderator": RoleModerator,
		"admin":     RoleAdmin,
		"":          RoleUser,
		"root":      RoleUser,
	}
	for input, want := range cases {
		if got := ParseRole(input); got != want {
			t.Errorf("ParseRole(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestRolePredicates(t *testing.T) {
	for _, role := range []Role{RoleModerator, RoleAdmin} {
		if !role.CanModerate() {
			t.Errorf("expected %s to be able to moderate", role)
		}
		if !role.AutoApproved() {
			t.Errorf("expected %s content to bypass the pending state", role)
		}
	}
	for _, role := range []Role{RoleUser, RoleDeveloper} {
		if role.CanModerate() {
			t.Errorf("expected %s not to be able to moderate", role)
		}
		if role.AutoApproved() {
			t.Errorf("expected %s content to start pending", role)
		}
	}
}
