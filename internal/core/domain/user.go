package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBroker Role = "broker"
)

// User is the persisted account row. PasswordHash is a bcrypt hash; plaintext
// never reaches the domain.
type User struct {
	Username      string
	PasswordHash  string
	Role          Role
	BrokerSurname string // set when Role is broker
}

// UserSession is ephemeral login state, owned by the invoking process for the
// session's duration and never persisted.
type UserSession struct {
	Username      string
	Role          Role
	BrokerSurname string
}
