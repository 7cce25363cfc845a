package user

import "context"

// UserRepository defines data access methods for users.
type UserRepository interface {
	// Create inserts a new user and returns it with generated fields.
	Create(ctx context.Context, u User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByOAuth(ctx context.Context, provider string, providerID string) (User, error)

	// Update persists mutable profile fields (name, role, manager,
	// team lead, avatar).
	Update(ctx context.Context, u User) error

	// ListByManager returns the direct reports of a manager.
	ListByManager(ctx context.Context, managerID string) ([]User, error)

	// List returns all users, newest first.
	List(ctx context.Context) ([]User, error)
}
