package domain

import "context"

// User mirrors a row of the users table. Text columns are nullable so that
// fields omitted from a create or update payload are stored as NULL.
type User struct {
	ID       ID      `json:"id"`
	FName    Text `json:"fname"`
	LName    Text `json:"lname"`
	Username Text `json:"username"`
	Password Text `json:"password"`
}

// Credentials accept the same scalar forms as User text fields.
type Credentials struct {
	Username Text `json:"username"`
	Password Text `json:"password"`
}

type UserRepository interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByCredentials(ctx context.Context, username, password string) (*User, error)
	Create(ctx context.Context, user *User) (int64, error)
	Update(ctx context.Context, user *User) (int64, error)
	Delete(ctx context.Context, id ID) (int64, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, user *User) (int64, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id ID) error
}

type AuthService interface {
	Login(ctx context.Context, creds Credentials) (*User, error)
}
