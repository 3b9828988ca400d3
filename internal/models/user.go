package models

// User is a network account.
type User struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Hospital    string   `json:"hospital"`
	Status      string   `json:"status"` // active, inactive, suspended
	LastLogin   string   `json:"lastLogin"`
	Permissions []string `json:"permissions"`
}

// Role is a named permission set.
type Role struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Count       int      `json:"count"`
}
