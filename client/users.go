package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/htz-portal/portal-api/models"
	"github.com/htz-portal/portal-api/querycache"
)

// UserService covers the user endpoints. Role changes are patched into the
// cached user list optimistically so the table re-renders before the
// server confirms; the pre-patch snapshot is restored exactly on failure.
type UserService struct {
	c *Client
}

type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// List returns all users, served from cache while fresh.
func (s *UserService) List(ctx context.Context) ([]models.UserView, error) {
	if v, state, ok := s.c.cache.Get(KeyUserList); ok && state == querycache.StateFresh {
		return v.([]models.UserView), nil
	}
	users, err := s.fetchList(ctx)
	if err != nil {
		return nil, err
	}
	s.c.cache.Set(KeyUserList, users)
	return users, nil
}

// Create persists a new user. The server generates a temporary password
// and mails it to the new account.
func (s *UserService) Create(ctx context.Context, input UserInput) (*models.UserView, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, &ValidationError{Field: "username", Reason: "is required"}
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, &ValidationError{Field: "email", Reason: "is required"}
	}
	if strings.TrimSpace(input.Role) == "" {
		return nil, &ValidationError{Field: "role", Reason: "is required"}
	}

	var user models.UserView
	resp, err := s.c.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&user).
		Post("/rbac/users")
	if err := apiError(resp, err, ""); err != nil {
		return nil, err
	}
	s.c.syncAfterUserMutation()
	return &user, nil
}

// Update persists changed fields. When the role changes, the cached user
// list is patched before the request resolves.
func (s *UserService) Update(ctx context.Context, id uint, update UserUpdate) (*models.UserView, error) {
	var snapshot []models.UserView
	patched := false
	if update.Role != nil {
		if v, _, ok := s.c.cache.Get(KeyUserList); ok {
			users := v.([]models.UserView)
			snapshot = append([]models.UserView(nil), users...)
			s.c.cache.Patch(KeyUserList, func(cur interface{}) interface{} {
				out := append([]models.UserView(nil), cur.([]models.UserView)...)
				for i := range out {
					if out[i].ID == id {
						out[i].Role = *update.Role
					}
				}
				return out
			})
			patched = true
		}
	}

	var user models.UserView
	resp, err := s.c.http.R().
		SetContext(ctx).
		SetBody(update).
		SetResult(&user).
		Put(fmt.Sprintf("/rbac/users/%d", id))
	if err := apiError(resp, err, ""); err != nil {
		if patched {
			// Restore the exact pre-patch list instead of refetching, so a
			// failed save never flickers through wrong intermediate state.
			s.c.cache.Set(KeyUserList, snapshot)
			s.c.cache.Invalidate(KeyUserList)
		}
		return nil, err
	}
	s.c.syncAfterUserMutation()
	return &user, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	resp, err := s.c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/rbac/users/%d", id))
	if err := apiError(resp, err, ""); err != nil {
		return err
	}
	s.c.syncAfterUserMutation()
	return nil
}

// ToggleStatus flips is_active on an account.
func (s *UserService) ToggleStatus(ctx context.Context, id uint) (*models.UserView, error) {
	var user models.UserView
	resp, err := s.c.http.R().
		SetContext(ctx).
		SetResult(&user).
		Patch(fmt.Sprintf("/rbac/users/%d/toggle-status", id))
	if err := apiError(resp, err, ""); err != nil {
		return nil, err
	}
	s.c.syncAfterUserMutation()
	return &user, nil
}

func (s *UserService) fetchList(ctx context.Context) ([]models.UserView, error) {
	var users []models.UserView
	resp, err := s.c.http.R().
		SetContext(ctx).
		SetResult(&users).
		Get("/rbac/users")
	if err := apiError(resp, err, ""); err != nil {
		return nil, err
	}
	return users, nil
}
