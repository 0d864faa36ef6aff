package services

import (
	"context"
	"fmt"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/utils"
)

type CoachService struct {
	Coaches   CoachStore
	RequestID string
}

type CoachInput struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Specialties string `json:"specialties"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

func (in CoachInput) toModel() (models.Coach, error) {
	c := models.Coach{
		Name:        utils.NormalizeSpace(in.Name),
		Phone:       utils.NormalizePhone(in.Phone),
		Specialties: strings.Join(utils.SplitTags(in.Specialties), ","),
		Status:      strings.ToLower(strings.TrimSpace(in.Status)),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if c.Name == "" {
		return c, required("name")
	}
	if c.Phone != "" && !utils.ValidPhone(c.Phone) {
		return c, domain.ValidationError{Field: "phone", Msg: "must be 6 to 20 digits"}
	}
	if c.Status == "" {
		c.Status = models.StaffActive
	}
	if c.Status != models.StaffActive && c.Status != models.StaffInactive {
		return c, domain.ValidationError{Field: "status", Msg: "must be active or inactive"}
	}
	return c, nil
}

func (s CoachService) List(ctx context.Context, keyword, status string) ([]models.Coach, error) {
	return s.Coaches.List(ctx, keyword, status)
}

func (s CoachService) Get(ctx context.Context, id int64) (models.Coach, error) {
	c, err := s.Coaches.GetByID(ctx, id)
	return c, notFound(err, "coach")
}

func (s CoachService) Create(ctx context.Context, in CoachInput) (models.Coach, error) {
	c, err := in.toModel()
	if err != nil {
		return c, err
	}
	id, err := s.Coaches.Create(ctx, &c)
	if err != nil {
		return c, mapRepoErr(err, "coach", domain.CodeDuplicatePhone, "")
	}
	utils.LogEvent(s.RequestID, "coaches", "create", fmt.Sprintf("coach_id=%d", id))
	return s.Get(ctx, id)
}

func (s CoachService) Update(ctx context.Context, id int64, in CoachInput) (models.Coach, error) {
	if _, err := s.Coaches.GetByID(ctx, id); err != nil {
		return models.Coach{}, notFound(err, "coach")
	}
	c, err := in.toModel()
	if err != nil {
		return c, err
	}
	c.ID = id
	if err := s.Coaches.Update(ctx, &c); err != nil {
		return c, mapRepoErr(err, "coach", domain.CodeDuplicatePhone, "")
	}
	utils.LogEvent(s.RequestID, "coaches", "update", fmt.Sprintf("coach_id=%d", id))
	return s.Get(ctx, id)
}

// Delete refuses while the coach still has schedules from today on.
func (s CoachService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Coaches.GetByID(ctx, id); err != nil {
		return notFound(err, "coach")
	}
	n, err := s.Coaches.CountUpcomingSchedules(ctx, id, utils.Today())
	if err != nil {
		return err
	}
	if n > 0 {
		return inUse("coach", domain.CodeCoachInUse, n)
	}
	if err := s.Coaches.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "coach", "", domain.CodeCoachInUse)
	}
	utils.LogEvent(s.RequestID, "coaches", "delete", fmt.Sprintf("coach_id=%d", id))
	return nil
}
