package service

import (
	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

func toUserView(u *domain.User) ports.UserView {
	roles := make([]string, len(u.Roles))
	copy(roles, u.Roles)
	return ports.UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
	}
}

func toCategoryView(c *domain.Category) ports.CategoryView {
	return ports.CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func toImageView(img *domain.Image) ports.ImageView {
	return ports.ImageView{
		ID:          img.ID,
		URL:         img.URL,
		Description: img.Description,
		ProductID:   img.ProductID,
	}
}
