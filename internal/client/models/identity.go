// Package models defines the data exchanged with the storefront API and
// kept in the local session.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Role classifies what an authenticated user may do.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsAdmin reports whether r grants inventory management.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ID is a record identifier. The API sends numeric ids for some records and
// string object ids for others; both decode into their textual form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Identity is the authenticated user's profile. It is always replaced as a
// whole, never patched field by field.
type Identity struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UnmarshalJSON accepts both "id" and the API's "_id" key.
func (i *Identity) UnmarshalJSON(b []byte) error {
	type plain Identity
	var aux struct {
		plain
		ObjectID ID `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*i = Identity(aux.plain)
	if i.ID == "" {
		i.ID = aux.ObjectID
	}
	return nil
}

// Complete reports whether the identity names a real account: it has both
// an id and an email.
func (i Identity) Complete() bool {
	return i.ID != "" && i.Email != ""
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role.IsAdmin()
}

// AuthResponse is the body of POST /auth/register and POST /auth/login.
type AuthResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token,omitempty"`
	User    *Identity `json:"user,omitempty"`
	Message string    `json:"message,omitempty"`
}
