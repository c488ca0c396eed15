package policy

import (
	"errors"
	"strings"

	"plazoleta-api/models"
)

// Action names a guarded write operation.
type Action string

const (
	ActionCreateRestaurant Action = "restaurant:create"
	ActionCreateDish       Action = "dish:create"
	ActionUpdateDish       Action = "dish:update"
)

// ErrDenied is returned when a role may not perform an action.
var ErrDenied = errors.New("access denied")

// Rule grants one role permission to perform one action.
type Rule struct {
	Action      Action      `json:"action"`
	Role        models.Role `json:"role"`
	Description string      `json:"description"`
}

// rules is the authoritative route-level permission table.
var rules = []Rule{
	// Administrators register restaurants on behalf of owners
	{Action: ActionCreateRestaurant, Role: models.RoleAdmin, Description: "register a restaurant for an owner"},
	// Owners manage the menu of their own restaurants
	{Action: ActionCreateDish, Role: models.RoleOwner, Description: "add a dish to an owned restaurant"},
	{Action: ActionUpdateDish, Role: models.RoleOwner, Description: "change price or description of an owned dish"},
}

type ruleKey struct {
	Action Action
	Role   models.Role
}

var ruleMap = func() map[ruleKey]bool {
	m := make(map[ruleKey]bool)
	for _, r := range rules {
		m[ruleKey{r.Action, r.Role}] = true
	}
	return m
}()

// RolesFor returns the roles allowed to perform an action.
func RolesFor(action Action) []models.Role {
	var roles []models.Role
	for _, r := range rules {
		if r.Action == action {
			roles = append(roles, r.Role)
		}
	}
	return roles
}

// Check returns nil when role may perform action, or an error wrapping ErrDenied.
func Check(action Action, role models.Role) error {
	if ruleMap[ruleKey{Action: action, Role: role}] {
		return nil
	}
	return errors.Join(ErrDenied, errors.New(
		"role "+role.String()+" cannot perform "+string(action)+"; required role(s): "+describeRoles(action),
	))
}

func describeRoles(action Action) string {
	roles := RolesFor(action)
	if len(roles) == 0 {
		return "none"
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}

// Rules returns the full permission table for documentation.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
