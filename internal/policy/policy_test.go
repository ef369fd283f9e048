package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowed(t *testing.T) {
	t.Parallel()

	registrarOnly := NewRoleSet("Registrar")
	staff := NewRoleSet("Registrar", "Admin")

	tests := []struct {
		name    string
		role    string
		allowed RoleSet
		want    bool
	}{
		{name: "member", role: "Registrar", allowed: registrarOnly, want: true},
		{name: "non member", role: "Student", allowed: registrarOnly, want: false},
		{name: "one of many", role: "Admin", allowed: staff, want: true},
		{name: "case sensitive", role: "registrar", allowed: staff, want: false},
		{name: "empty role", role: "", allowed: NewRoleSet(""), want: false},
		{name: "empty set", role: "Admin", allowed: NewRoleSet(), want: false},
		{name: "nil set", role: "Admin", allowed: nil, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsAllowed(tt.role, tt.allowed))
		})
	}
}

func TestRoleSet_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Admin, Registrar", NewRoleSet("Registrar", "Admin").String())
	assert.Empty(t, NewRoleSet().Names())
}
