// auth/policy.go
package auth

import (
	"slices"
	"strings"

	"github.com/gewnthar/flightops/models"
)

// Rule grants access to one route pattern. A pattern ending in "/*" covers
// the prefix itself and everything below it; other patterns match exactly.
type Rule struct {
	Pattern string
	Public  bool          // no login required
	Roles   []models.Role // empty: any authenticated user
}

// Permits reports whether role may use the route.
func (r Rule) Permits(role models.Role) bool {
	return r.Public || len(r.Roles) == 0 || slices.Contains(r.Roles, role)
}

func (r Rule) matches(path string) bool {
	if prefix, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}

// Policy is the route -> role table evaluated by the Gate.
type Policy []Rule

var (
	adminOnly          = []models.Role{models.RoleAdmin}
	atcOnly            = []models.Role{models.RoleATC}
	regulatorOrAdmin   = []models.Role{models.RoleRegulator, models.RoleAdmin}
	anyAuthenticated   []models.Role
	defaultRestriction = Rule{Pattern: "*"}
)

// DefaultPolicy is the application's access table.
var DefaultPolicy = Policy{
	{Pattern: "/login", Public: true},
	{Pattern: "/about/", Public: true},
	{Pattern: "/api/health", Public: true},
	{Pattern: "/static/*", Public: true},

	{Pattern: "/admin/*", Roles: adminOnly},

	{Pattern: "/atc", Roles: atcOnly},
	{Pattern: "/weather/*", Roles: atcOnly},
	{Pattern: "/flights/*", Roles: atcOnly},
	{Pattern: "/chat/", Roles: atcOnly},
	{Pattern: "/api/chat/", Roles: atcOnly},

	{Pattern: "/regulator", Roles: regulatorOrAdmin},
	{Pattern: "/prediction/", Roles: regulatorOrAdmin},
	{Pattern: "/emissions-report/*", Roles: regulatorOrAdmin},
	{Pattern: "/emissions-ranking/*", Roles: regulatorOrAdmin},

	{Pattern: "/", Roles: anyAuthenticated},
	{Pattern: "/fuel-burn/", Roles: anyAuthenticated},
	{Pattern: "/ajax/getDistance", Roles: anyAuthenticated},
	{Pattern: "/logout", Roles: anyAuthenticated},
}

// Lookup returns the most specific rule for path. Paths not in the table
// require a login and nothing more.
func (p Policy) Lookup(path string) Rule {
	best, bestLen := defaultRestriction, -1
	for _, rule := range p {
		if rule.matches(path) && len(rule.Pattern) > bestLen {
			best, bestLen = rule, len(rule.Pattern)
		}
	}
	return best
}

// Allowed reports whether role may request path under the policy.
func (p Policy) Allowed(path string, role models.Role) bool {
	return p.Lookup(path).Permits(role)
}

// Allowed evaluates DefaultPolicy.
func Allowed(path string, role models.Role) bool {
	return DefaultPolicy.Allowed(path, role)
}
