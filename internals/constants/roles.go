package constants

// Role labels carried in the JWT `roles` claim. Flat allow-lists only,
// there is no hierarchy: every route names the roles it accepts.
const (
	RoleAdmin          = "admin"
	RolePrincipal      = "principal"
	RoleTeacher        = "teacher"
	RoleLeadingTeacher = "leading_teacher"
	RoleParent         = "parent"
	RoleStudent        = "student"
)

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RolePrincipal,
		RoleTeacher,
		RoleLeadingTeacher,
		RoleParent,
		RoleStudent,
	}

	// Management: can administer master data (years, classes, subjects...)
	ManagementRoles = []string{
		RoleAdmin,
		RolePrincipal,
	}

	// Teaching staff: can mark attendance, enter grades, manage LMS content.
	TeachingRoles = []string{
		RoleTeacher,
		RoleLeadingTeacher,
	}

	StaffRoles = []string{
		RoleAdmin,
		RolePrincipal,
		RoleTeacher,
		RoleLeadingTeacher,
	}

	// Guardians of record: read-only access to their children's data.
	GuardianRoles = []string{
		RoleParent,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// IsKnownRole reports whether the label is one of the defined roles.
func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
