package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username     string               `json:"username" bson:"username"`
	Email        string               `json:"email" bson:"email"`
	FullName     string               `json:"fullName" bson:"fullName"`
	Avatar       *MediaFile           `json:"avatar,omitempty" bson:"avatar,omitempty"`
	PasswordHash string               `json:"-" bson:"passwordHash"`
	WatchHistory []primitive.ObjectID `json:"-" bson:"watchHistory,omitempty"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks basic user fields
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email")
	}
	if len(u.Username) < 2 || len(u.Username) > 64 {
		return fmt.Errorf("username length invalid")
	}
	return nil
}

// OwnerSummary is the minimal owner projection attached by lookups.
type OwnerSummary struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Username string             `json:"username" bson:"username"`
	FullName string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Avatar   *MediaFile         `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

// ChannelProfile is an owner summary enriched with subscription data,
// used on the video detail page.
type ChannelProfile struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	Username        string             `json:"username" bson:"username"`
	Avatar          *MediaFile         `json:"avatar,omitempty" bson:"avatar,omitempty"`
	SubscriberCount int64              `json:"subscriberCount" bson:"subscriberCount"`
	IsSubscribed    bool               `json:"isSubscribed" bson:"isSubscribed"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// WatchHistoryItem is a watched video joined with its owner summary.
type WatchHistoryItem struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Thumbnail MediaFile          `json:"thumbnail" bson:"thumbnail"`
	Duration  float64            `json:"duration" bson:"duration"`
	Views     int64              `json:"views" bson:"views"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	Owner     OwnerSummary       `json:"owner" bson:"owner"`
}
