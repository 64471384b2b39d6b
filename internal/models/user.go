package models

// User is the session object returned by the auth API and persisted
// locally. The password never round-trips through this layer beyond the
// login/register request bodies.
type User struct {
	ID      UserID `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin int    `json:"isAdmin"`
}

// Admin reports whether the user can reach the admin CRUD surface.
func (u *User) Admin() bool {
	return u != nil && u.IsAdmin == 1
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// for registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
