package customer

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Status values stored in customers.status.
const (
	StatusInactive = 0
	StatusActive   = 1
)

type Customer struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	Phone        string `db:"phone" json:"phone"`
	DialCode     string `db:"dial_code" json:"dialcode"`
	PasswordHash string `db:"password_hash" json:"-"`
	Status       int    `db:"status" json:"status"`
	IsVerified   bool   `db:"is_verified" json:"is_verified"`
}

// Active reports whether the customer may log in and receive order mail.
func (c *Customer) Active() bool {
	return c != nil && c.Status == StatusActive && c.IsVerified
}
