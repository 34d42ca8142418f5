package helperauth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys hydrated by the auth middleware. Keep these the single
// source of truth — controllers must not invent their own keys.
const (
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocRoles    = "roles"
)

// GetUserID returns the authenticated user's id from locals.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocUserID).(string)
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing user id")
	}
	return id, nil
}

// GetRoles returns the authenticated user's role set from locals.
func GetRoles(c *fiber.Ctx) []string {
	switch v := c.Locals(LocRoles).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// HasAnyRole is the capability-set intersection test: true when the
// current user's role set intersects the wanted set.
func HasAnyRole(c *fiber.Ctx, wanted ...string) bool {
	have := GetRoles(c)
	for _, w := range wanted {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// IsSelf reports whether the authenticated user is the given user id.
func IsSelf(c *fiber.Ctx, userID uuid.UUID) bool {
	id, err := GetUserID(c)
	return err == nil && id == userID
}

// RequireSelfOrRole allows the owner of the resource or any of the
// listed roles; otherwise 403.
func RequireSelfOrRole(c *fiber.Ctx, owner uuid.UUID, roles ...string) error {
	if IsSelf(c, owner) || HasAnyRole(c, roles...) {
		return nil
	}
	return fiber.NewError(fiber.StatusForbidden, "Forbidden: you are not authorized to access this resource")
}
