package request

// LoginRequest picks the operator by email. A password may be sent but is not checked.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}
