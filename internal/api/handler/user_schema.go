package handler

import (
	"time"

	"github.com/mercatto/catalog-api/internal/core/ports"
)

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

func toUserResponse(v *ports.UserView) *userResponse {
	if v == nil {
		return nil
	}
	return &userResponse{
		ID:        v.ID,
		Username:  v.Username,
		Email:     v.Email,
		Roles:     v.Roles,
		CreatedAt: v.CreatedAt,
	}
}

func toUserResponses(views []ports.UserView) []userResponse {
	out := make([]userResponse, 0, len(views))
	for i := range views {
		out = append(out, *toUserResponse(&views[i]))
	}
	return out
}
