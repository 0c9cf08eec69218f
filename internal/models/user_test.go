package models

import (
	"testing"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name: "Valid user",
			user: User{
				Username: "creator42",
				Email:    "test@example.com",
				FullName: "Test User",
			},
			wantErr: false,
		},
		{
			name: "Empty username",
			user: User{
				Username: "",
				Email:    "test@example.com",
				FullName: "Test User",
			},
			wantErr: true,
		},
		{
			name: "Empty email",
			user: User{
				Username: "creator42",
				Email:    "",
				FullName: "Test User",
			},
			wantErr: true,
		},
		{
			name: "Invalid email",
			user: User{
				Username: "creator42",
				Email:    "invalid-email",
				FullName: "Test User",
			},
			wantErr: true,
		},
		{
			name: "Username too short",
			user: User{
				Username: "a",
				Email:    "test@example.com",
				FullName: "Test User",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("User.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
