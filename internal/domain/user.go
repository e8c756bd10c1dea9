package domain

// UserType distinguishes guest accounts from completed ones
type UserType string

const (
	UserTypeGuest UserType = "GUEST"
	UserTypeUser  UserType = "USER"
)

// User is the signed-in account
type User struct {
	ID       string
	Type     UserType
	Name     string
	Username string
	Tokens   int
}

// TokenAllowance is the monthly token budget every account starts with
const TokenAllowance = 1500

// DisplayName is the name the user chose, or their username until they have one
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// TokenFraction is the share of the allowance still remaining, clamped to [0, 1]
func (u *User) TokenFraction() float64 {
	return min(max(float64(u.Tokens)/TokenAllowance, 0), 1)
}

// IsGuest reports whether the account still needs completing
func (u *User) IsGuest() bool {
	return u != nil && u.Type == UserTypeGuest
}

// CompleteParams are sent when a guest completes their account
type CompleteParams struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Purpose  string `json:"purpose,omitempty"`
	Source   string `json:"source,omitempty"`
}
