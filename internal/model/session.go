package model

// Session identifies the authenticated actor on this client.
type Session struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the wire shape returned by login.
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Session converts the login response into session state.
func (r *LoginResponse) Session() *Session {
	u := User{FirstName: r.FirstName, LastName: r.LastName}
	return &Session{Token: r.Token, UserID: r.UserID, UserName: u.DisplayName()}
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
