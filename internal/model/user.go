package model

import "time"

type User struct {
	ID             int64
	Username       string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
}

// UserView is the public representation of a user. It never carries the hash.
type UserView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) View() UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
