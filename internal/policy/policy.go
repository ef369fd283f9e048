package policy

import (
	"slices"
	"strings"
)

type RoleSet map[string]struct{}

func NewRoleSet(roles ...string) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// IsAllowed reports whether roleName belongs to allowed. Role names compare
// exactly; an empty role is never allowed.
func IsAllowed(roleName string, allowed RoleSet) bool {
	if roleName == "" {
		return false
	}
	_, ok := allowed[roleName]
	return ok
}

func (s RoleSet) Names() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

func (s RoleSet) String() string {
	return strings.Join(s.Names(), ", ")
}
