package repositories

import (
	"context"

	intdb "campbook/internal/db"
	"campbook/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var scheduleColumns = []string{
	"s.id", "s.project_id", "s.coach_id", "s.order_id", dateCol("s.schedule_date", "schedule_date"),
	clockCol("s.start_time", "start_time"), clockCol("s.end_time", "end_time"), "s.participants", "s.status",
	textCol("s.notes", "notes"), "s.created_at", "s.updated_at",
	textCol("p.name", "project_name"), textCol("c.name", "coach_name"),
}

type ScheduleRepository struct {
	DB *sqlx.DB
}

func scheduleSelect() squirrel.SelectBuilder {
	return intdb.Builder.Select(scheduleColumns...).
		From("schedules s").
		LeftJoin("projects p ON p.id = s.project_id").
		LeftJoin("coaches c ON c.id = s.coach_id")
}

func (r ScheduleRepository) List(ctx context.Context, f models.ScheduleFilter) ([]models.Schedule, error) {
	q := scheduleSelect().OrderBy("s.schedule_date ASC", "s.start_time ASC", "s.id ASC")
	if f.Date != "" {
		q = q.Where(squirrel.Eq{"s.schedule_date": f.Date})
	}
	if f.DateFrom != "" {
		q = q.Where(squirrel.GtOrEq{"s.schedule_date": f.DateFrom})
	}
	if f.DateTo != "" {
		q = q.Where(squirrel.LtOrEq{"s.schedule_date": f.DateTo})
	}
	if f.ProjectID > 0 {
		q = q.Where(squirrel.Eq{"s.project_id": f.ProjectID})
	}
	if f.CoachID > 0 {
		q = q.Where(squirrel.Eq{"s.coach_id": f.CoachID})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"s.status": f.Status})
	}
	out := []models.Schedule{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, q, "schedules.List")
	return out, err
}

func (r ScheduleRepository) GetByID(ctx context.Context, id int64) (models.Schedule, error) {
	var s models.Schedule
	err := getOne(ctx, intdb.Executor(ctx, r.DB), &s, scheduleSelect().Where(squirrel.Eq{"s.id": id}), "schedules.GetByID")
	return s, err
}

func (r ScheduleRepository) ListByOrder(ctx context.Context, orderID int64) ([]models.Schedule, error) {
	out := []models.Schedule{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, scheduleSelect().
		Where(squirrel.Eq{"s.order_id": orderID}).
		OrderBy("s.schedule_date ASC", "s.start_time ASC"), "schedules.ListByOrder")
	return out, err
}

// FindCoachOverlaps returns the coach's live schedules on q.Date whose time box
// intersects [q.StartTime, q.EndTime). Touching edges do not count.
func (r ScheduleRepository) FindCoachOverlaps(ctx context.Context, q models.OverlapQuery) ([]models.Schedule, error) {
	b := scheduleSelect().
		Where(squirrel.Eq{"s.coach_id": q.ResourceID, "s.schedule_date": q.Date}).
		Where(squirrel.NotEq{"s.status": models.ScheduleCancelled}).
		Where(squirrel.Lt{"s.start_time": q.EndTime}).
		Where(squirrel.Gt{"s.end_time": q.StartTime}).
		OrderBy("s.start_time ASC")
	if q.ExcludeID > 0 {
		b = b.Where(squirrel.NotEq{"s.id": q.ExcludeID})
	}
	out := []models.Schedule{}
	err := selectAll(ctx, intdb.Executor(ctx, r.DB), &out, b, "schedules.FindCoachOverlaps")
	return out, err
}

func (r ScheduleRepository) Create(ctx context.Context, s *models.Schedule) (int64, error) {
	return insertID(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Insert("schedules").
		Columns("project_id", "coach_id", "order_id", "schedule_date", "start_time", "end_time", "participants", "status", "notes").
		Values(s.ProjectID, s.CoachID, s.OrderID, s.Date, s.StartTime, s.EndTime, s.Participants, s.Status, s.Notes), "schedules.Create")
}

func (r ScheduleRepository) Update(ctx context.Context, s *models.Schedule) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("schedules").
		Set("project_id", s.ProjectID).
		Set("coach_id", s.CoachID).
		Set("order_id", s.OrderID).
		Set("schedule_date", s.Date).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("participants", s.Participants).
		Set("status", s.Status).
		Set("notes", s.Notes).
		Where(squirrel.Eq{"id": s.ID}), "schedules.Update")
}

func (r ScheduleRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("schedules").
		Set("status", status).
		Where(squirrel.Eq{"id": id}), "schedules.UpdateStatus")
}

// CancelByOrder cancels every live schedule that belongs to the order.
func (r ScheduleRepository) CancelByOrder(ctx context.Context, orderID int64) (int64, error) {
	res, err := execStmt(ctx, intdb.Executor(ctx, r.DB), intdb.Builder.Update("schedules").
		Set("status", models.ScheduleCancelled).
		Where(squirrel.Eq{"order_id": orderID, "status": models.ScheduleScheduled}), "schedules.CancelByOrder")
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r ScheduleRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, intdb.Executor(ctx, r.DB),
		intdb.Builder.Delete("schedules").Where(squirrel.Eq{"id": id}), "schedules.Delete")
}
