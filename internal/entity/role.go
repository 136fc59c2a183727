package entity

// Action is a capability a request may exercise. Authorization is a pure
// lookup in the table below; there is no per-resource policy.
type Action string

const (
	ActionWatch       Action = "watch"
	ActionSearch      Action = "search"
	ActionUpload      Action = "upload"
	ActionDelete      Action = "delete"
	ActionManageUsers Action = "manage_users"
)

var capabilities = map[UserRole]map[Action]bool{
	RoleStudent: {
		ActionWatch:  true,
		ActionSearch: true,
	},
	RoleTeacher: {
		ActionWatch:       true,
		ActionSearch:      true,
		ActionUpload:      true,
		ActionDelete:      true,
		ActionManageUsers: true,
	},
}

// Can reports whether the role may perform the action. Unknown roles and
// unknown actions are always denied.
func (r UserRole) Can(action Action) bool {
	return capabilities[r][action]
}

func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}
