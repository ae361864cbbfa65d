package models

type Usuario struct {
	ID          int64    `json:"id"`
	GoogleID    string   `json:"google_id"`
	Email       string   `json:"email"`
	Nome        string   `json:"nome"`
	FotoURL     *string  `json:"foto_url,omitempty"`
	CreatedAt   *Instant `json:"created_at,omitempty"`
	UpdatedAt   *Instant `json:"updated_at,omitempty"`
	LastLoginAt *Instant `json:"last_login_at,omitempty"`
}

type AuthUser struct {
	ID    FlexID `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
