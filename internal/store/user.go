package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/cinehall/backend/internal/auth"
)

// User is the account model. The password hash is never serialized
// and is empty for federated accounts.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64         `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Email        string        `bun:"email,notnull,unique" json:"email,omitempty"`
	Name         string        `bun:"name" json:"name,omitempty"`
	Role         auth.Role     `bun:"user_role,notnull" json:"role,omitempty"`
	Provider     auth.Provider `bun:"provider,notnull" json:"provider,omitempty"`
	PasswordHash string        `bun:"password_hash" json:"-"`
	CreatedAt    time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt    time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Identity adapts the record to the auth core's identity surface.
func (u *User) Identity() auth.Identity {
	return userIdentity{u}
}

type userIdentity struct {
	u *User
}

func (i userIdentity) ID() int64       { return i.u.ID }
func (i userIdentity) Email() string   { return i.u.Email }
func (i userIdentity) Name() string    { return i.u.Name }
func (i userIdentity) Role() auth.Role { return i.u.Role }

// Users is the account repository.
type Users struct {
	db *bun.DB
}

// NewUsers creates a Users repository.
func NewUsers(db *bun.DB) *Users {
	return &Users{db: db}
}

// FindByEmail returns the account bound to an email, or sql.ErrNoRows
// wrapped by the driver when none exists.
func (r *Users) FindByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID returns the account with the given identifier.
func (r *Users) FindByID(ctx context.Context, id int64) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new account. A uniqueness rejection on the email
// column surfaces as auth.ErrEmailTaken.
func (r *Users) Create(ctx context.Context, user *User) (*User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if IsUniqueViolation(err) {
			return nil, auth.ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// GetOrCreateByEmail implements the federated find-or-create step. Two
// first-time logins for the same email may race here; the loser of the
// insert re-fetches the row the winner created.
func (r *Users) GetOrCreateByEmail(ctx context.Context, record *User) (*User, bool, error) {
	existing, err := r.FindByEmail(ctx, record.Email)
	if err == nil {
		return existing, false, nil
	}
	if !IsNotFound(err) {
		return nil, false, err
	}

	created, err := r.Create(ctx, record)
	if err == nil {
		return created, true, nil
	}
	if err != auth.ErrEmailTaken {
		return nil, false, err
	}

	existing, err = r.FindByEmail(ctx, record.Email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// All returns every account, newest first.
func (r *Users) All(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.NewSelect().
		Model(&users).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of accounts.
func (r *Users) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*User)(nil)).Count(ctx)
}
