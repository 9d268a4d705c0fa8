package dto

import (
	"time"

	"github.com/penshort/userapi/internal/model"
)

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserListResponse converts users to a JSON array. An empty store encodes as [] rather than null.
func ToUserListResponse(users []model.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}
	return responses
}
