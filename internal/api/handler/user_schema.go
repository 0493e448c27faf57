package handler

// Wire formats inherited from the mobile clients: dates are yyyy-MM-dd,
// timestamps are yyyy-MM-dd HH:mm:ss.
const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// --- Request types ---

type registerRequest struct {
	Role            string `json:"role"            validate:"required"`
	Username        string `json:"username"        validate:"required"`
	FirstName       string `json:"firstName"       validate:"required"`
	LastName        string `json:"lastName"        validate:"required"`
	MailID          string `json:"mailId"          validate:"required,email"`
	Phone           string `json:"phone"           validate:"required"`
	DOB             string `json:"dob"             validate:"required,datetime=2006-01-02"`
	Password string `json:"password" validate:"required"`
	// No required tag: an absent confirmation is just a mismatch, and
	// the mismatch check owns that failure message.
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password"        validate:"required"`
}

// --- Response types ---
// Flat payloads with a boolean success discriminator, matching what the
// clients already parse.

type registeredUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type registerResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    *registeredUser `json:"user,omitempty"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

type profileResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	MailID    string `json:"mailId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob"`
}

type deactivateResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
