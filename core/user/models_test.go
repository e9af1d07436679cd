package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxRolePriority(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  int
	}{
		{name: "no roles"},
		{name: "unknown role", roles: []string{"galactic:overlord"}},
		{name: "student", roles: []string{RoleStudent}, want: 1},
		{name: "mentor beats student", roles: []string{RoleStudent, RoleMentor}, want: 12},
		{name: "lead beats instructor", roles: []string{RoleInstructor, RoleChapterLead}, want: 20},
		{name: "owner beats all", roles: []string{RoleStudent, RoleAdmin, RoleAdminOwner}, want: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxRolePriority(tt.roles))
		})
	}
}

func TestUser_roleChecks(t *testing.T) {
	tests := []struct {
		name                             string
		roles                            []string
		isAdmin, isLead, isInstr, isStud bool
	}{
		{name: "no roles"},
		{name: "student", roles: []string{RoleStudent}, isStud: true},
		{name: "instructor", roles: []string{RoleInstructor}, isInstr: true},
		{name: "chapter lead", roles: []string{RoleChapterLead}, isLead: true},
		{name: "admin", roles: []string{RoleAdmin}, isAdmin: true},
		{name: "owner is admin", roles: []string{RoleAdminOwner}, isAdmin: true},
		{name: "lead and instructor", roles: []string{RoleChapterLead, RoleInstructor}, isLead: true, isInstr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr := User{Roles: tt.roles}
			assert.Equal(t, tt.isAdmin, usr.IsAdmin())
			assert.Equal(t, tt.isLead, usr.IsChapterLead())
			assert.Equal(t, tt.isInstr, usr.IsInstructor())
			assert.Equal(t, tt.isStud, usr.IsStudent())
		})
	}
}

func TestUser_SetCheckPassword(t *testing.T) {
	var usr User
	assert.NoError(t, usr.SetPassword("LeSecret#69"))
	assert.NotEmpty(t, usr.PasswordHash)
	assert.NoError(t, usr.CheckPassword("LeSecret#69"))
	assert.Error(t, usr.CheckPassword("lesecret#69"))
	assert.Error(t, usr.CheckPassword(""))
}
