package services

import (
	"context"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/utils"
)

type DashboardService struct {
	Store     StatsStore
	RequestID string
}

// Stats reports the counters for date, today when empty. Revenue is month-to-date.
func (s DashboardService) Stats(ctx context.Context, date string) (models.DashboardStats, error) {
	if date == "" {
		date = utils.Today()
	}
	monthStart, err := utils.MonthStart(date)
	if err != nil {
		return models.DashboardStats{}, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	st, err := s.Store.Dashboard(ctx, date, monthStart)
	if err != nil {
		return models.DashboardStats{}, err
	}
	st.Date = date
	return st, nil
}
