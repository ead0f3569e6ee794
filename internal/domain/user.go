package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Gender enumerates accepted profile gender values.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists every accepted value, in declaration order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// User is the account record. PasswordHash only ever holds the bcrypt hash.
// AccessToken is the single session slot: it carries the most recently issued
// token, or nil when no session is active.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password,notnull" json:"password"`
	Gender       Gender    `bun:"gender,notnull" json:"gender"`
	Country      string    `bun:"country,notnull" json:"country"`
	City         string    `bun:"city,notnull" json:"city"`
	CompanyName  string    `bun:"company_name,nullzero" json:"companyName,omitempty"`
	AccessToken  *string   `bun:"access_token" json:"accessToken,omitempty"`
	IsActive     bool      `bun:"is_active,notnull,default:true" json:"isActive"`
	IsDeleted    bool      `bun:"is_deleted,notnull,default:false" json:"isDeleted"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// HasSession reports whether a session token is currently on record.
func (u *User) HasSession() bool {
	return u.AccessToken != nil
}
