// Package user defines the User entity and the two configuration entry
// points that validate JSON text into it.
package user

import (
	"github.com/reoring/userconf"
	"github.com/reoring/userconf/jsonschema"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleIntern Role = "intern"
	RoleMentor Role = "mentor"
	RoleAdmin  Role = "admin"
)

// Roles lists every valid Role in declaration order.
var Roles = []Role{RoleIntern, RoleMentor, RoleAdmin}

// Entity is the name used in sequence diagnostics.
const Entity = "User"

// User is a validated user record. Values are produced by Schema only.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsRole reports whether v is a string naming a valid Role.
func IsRole(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	switch Role(s) {
	case RoleIntern, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

// IsUser reports whether v is an object carrying a valid id, email and role.
func IsUser(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, idOK := m["id"].(string)
	_, emailOK := m["email"].(string)
	return idOK && emailOK && IsRole(m["role"])
}

// Schema validates a single user object. Fields are checked in the order
// id, email, role and the first violation is returned.
var Schema userconf.Schema[User] = userconf.SchemaFunc[User](checkUser)

// ListSchema validates a JSON array of user objects.
var ListSchema = userconf.ArrayOf(Schema, Entity)

func checkUser(v any) userconf.Result[User] {
	if IsUser(v) {
		m := v.(map[string]any)
		return userconf.Ok(User{ID: m["id"].(string), Email: m["email"].(string), Role: Role(m["role"].(string))})
	}

	rec := userconf.CheckRecord(v)
	m, ok := rec.Value()
	if !ok {
		return fail(rec)
	}
	id := userconf.RequiredString(m, "id")
	if !id.OK() {
		return fail(id)
	}
	email := userconf.RequiredString(m, "email")
	if !email.OK() {
		return fail(email)
	}
	role := userconf.RequiredEnum(m, "role", Roles)
	if !role.OK() {
		return fail(role)
	}

	u := User{}
	u.ID, _ = id.Value()
	u.Email, _ = email.Value()
	u.Role, _ = role.Value()
	return userconf.Ok(u)
}

type failed interface {
	Issue() (userconf.Issue, bool)
}

func fail(r failed) userconf.Result[User] {
	iss, _ := r.Issue()
	return userconf.Fail[User](iss)
}

// ParseUserConfig validates JSON text describing one user.
func ParseUserConfig(input string, opts ...userconf.ParseOpt) userconf.Result[User] {
	return userconf.ParseJSON(Schema, input, opts...)
}

// ParseUsersConfig validates JSON text describing an array of users.
func ParseUsersConfig(input string, opts ...userconf.ParseOpt) userconf.Result[[]User] {
	return userconf.ParseJSON(ListSchema, input, opts...)
}

// JSONSchema projects Schema into a JSON Schema document.
func JSONSchema() *jsonschema.Schema {
	s := objectSchema()
	s.Schema = jsonschema.Draft
	s.Title = Entity
	return s
}

// ListJSONSchema projects ListSchema into a JSON Schema document.
func ListJSONSchema() *jsonschema.Schema {
	s := jsonschema.ArrayOf(objectSchema())
	s.Schema = jsonschema.Draft
	s.Title = Entity + " list"
	return s
}

func objectSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":    jsonschema.String(),
			"email": jsonschema.String(),
			"role":  jsonschema.StringEnum(Roles),
		},
		Required: []string{"id", "email", "role"},
	}
}
