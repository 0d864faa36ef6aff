package services

import (
	"context"
	"fmt"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/utils"
)

type UserService struct {
	Users     UserStore
	RequestID string
}

type UserInput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func (s UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Users.List(ctx)
}

func (s UserService) Create(ctx context.Context, in UserInput) (models.User, error) {
	u := models.User{
		Username: strings.TrimSpace(in.Username),
		Name:     strings.TrimSpace(in.Name),
		Phone:    utils.NormalizePhone(in.Phone),
		Role:     strings.ToLower(strings.TrimSpace(in.Role)),
		Status:   strings.ToLower(strings.TrimSpace(in.Status)),
	}
	if u.Username == "" {
		return u, required("username")
	}
	if len(in.Password) < MinPasswordLength {
		return u, domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	if u.Role == "" {
		u.Role = models.RoleStaff
	}
	if u.Status == "" {
		u.Status = models.UserActive
	}
	if err := validateUser(u); err != nil {
		return u, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return u, err
	}
	u.PasswordHash = hash

	id, err := s.Users.Create(ctx, &u)
	if err != nil {
		return u, mapRepoErr(err, "user", domain.CodeDuplicateUser, "")
	}
	utils.LogEvent(s.RequestID, "users", "create", fmt.Sprintf("user_id=%d role=%s", id, u.Role))
	return s.Users.GetByID(ctx, id)
}

// Update changes profile, role and status. A non-empty password is reset as well.
func (s UserService) Update(ctx context.Context, id int64, in UserInput) (models.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return u, notFound(err, "user")
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		u.Name = v
	}
	if in.Phone != "" {
		u.Phone = utils.NormalizePhone(in.Phone)
	}
	if v := strings.ToLower(strings.TrimSpace(in.Role)); v != "" {
		u.Role = v
	}
	if v := strings.ToLower(strings.TrimSpace(in.Status)); v != "" {
		u.Status = v
	}
	if err := validateUser(u); err != nil {
		return u, err
	}
	if err := s.Users.Update(ctx, &u); err != nil {
		return u, mapRepoErr(err, "user", domain.CodeDuplicateUser, "")
	}

	if in.Password != "" {
		if len(in.Password) < MinPasswordLength {
			return u, domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
		}
		hash, err := HashPassword(in.Password)
		if err != nil {
			return u, err
		}
		if err := s.Users.UpdatePassword(ctx, id, hash); err != nil {
			return u, notFound(err, "user")
		}
	}
	utils.LogEvent(s.RequestID, "users", "update", fmt.Sprintf("user_id=%d", id))
	return s.Users.GetByID(ctx, id)
}

func (s UserService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return domain.ValidationError{Field: "id", Msg: "you cannot delete your own account"}
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return notFound(err, "user")
	}
	utils.LogEvent(s.RequestID, "users", "delete", fmt.Sprintf("user_id=%d by=%d", id, actorID))
	return nil
}

func validateUser(u models.User) error {
	if !models.ValidRole(u.Role) {
		return domain.ValidationError{Field: "role", Msg: "must be admin or staff"}
	}
	if u.Status != models.UserActive && u.Status != models.UserDisabled {
		return domain.ValidationError{Field: "status", Msg: "must be active or disabled"}
	}
	return nil
}
