package access

// Role is the closed set of coordinator roles, ordered by scope breadth:
// national > site > small group.
type Role string

const (
	RoleNationalCoordinator Role = "coordinator:national"
	RoleSiteCoordinator     Role = "coordinator:site"
	RoleSmallGroupLeader    Role = "leader:small_group"
)

var (
	AllRoles = []Role{RoleNationalCoordinator, RoleSiteCoordinator, RoleSmallGroupLeader}

	rolePriorities = map[Role]int{
		RoleNationalCoordinator: 30,
		RoleSiteCoordinator:     20,
		RoleSmallGroupLeader:    10,
	}

	Roles = []RoleChoice{
		{Name: "National Coordinator", Value: RoleNationalCoordinator},
		{Name: "Site Coordinator", Value: RoleSiteCoordinator},
		{Name: "Small Group Leader", Value: RoleSmallGroupLeader},
	}
)

type RoleChoice struct {
	Name  string `json:"name"`
	Value Role   `json:"value"`
}

// RolePriority returns 0 for any role outside the closed set.
func RolePriority(role Role) int {
	return rolePriorities[role]
}

// IsValidRole reports whether role belongs to the closed set.
func IsValidRole(role Role) bool {
	_, ok := rolePriorities[role]
	return ok
}
