package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/metrics"
	"campbook/internal/utils"
)

type ScheduleService struct {
	Schedules ScheduleStore
	Projects  ProjectStore
	Coaches   CoachStore
	Orders    OrderStore
	RequestID string
}

type ScheduleInput struct {
	ProjectID    int64  `json:"projectId"`
	CoachID      *int64 `json:"coachId"`
	OrderID      *int64 `json:"orderId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Participants int    `json:"participants"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

// ConflictCheck is the read-only check behind the console's conflict warning.
type ConflictCheck struct {
	CoachID   int64
	Date      string
	StartTime string
	EndTime   string
	ExcludeID int64
}

type ConflictResult struct {
	HasConflict bool              `json:"hasConflict"`
	Conflicts   []models.Schedule `json:"conflicts"`
}

func (s ScheduleService) List(ctx context.Context, f models.ScheduleFilter) ([]models.Schedule, error) {
	for field, v := range map[string]string{"date": f.Date, "dateFrom": f.DateFrom, "dateTo": f.DateTo} {
		if v == "" {
			continue
		}
		if _, err := domain.ParseDate(v); err != nil {
			return nil, domain.ValidationError{Field: field, Msg: err.Error()}
		}
	}
	if f.Status != "" && !models.ValidScheduleStatus(f.Status) {
		return nil, domain.ValidationError{Field: "status", Msg: "unknown status " + f.Status}
	}
	return s.Schedules.List(ctx, f)
}

func (s ScheduleService) Get(ctx context.Context, id int64) (models.Schedule, error) {
	sc, err := s.Schedules.GetByID(ctx, id)
	return sc, notFound(err, "schedule")
}

// build validates input and fills the end time from the project duration when omitted.
func (s ScheduleService) build(ctx context.Context, in ScheduleInput) (models.Schedule, models.Project, error) {
	sc := models.Schedule{
		ProjectID:    in.ProjectID,
		CoachID:      positiveID(in.CoachID),
		OrderID:      positiveID(in.OrderID),
		Date:         strings.TrimSpace(in.Date),
		Participants: in.Participants,
		Status:       strings.TrimSpace(in.Status),
		Notes:        strings.TrimSpace(in.Notes),
	}
	if sc.ProjectID <= 0 {
		return sc, models.Project{}, required("projectId")
	}
	project, err := s.Projects.GetByID(ctx, sc.ProjectID)
	if err != nil {
		return sc, project, notFound(err, "project")
	}
	if sc.Date == "" {
		return sc, project, required("date")
	}
	if _, err := domain.ParseDate(sc.Date); err != nil {
		return sc, project, domain.ValidationError{Field: "date", Msg: err.Error()}
	}

	start, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return sc, project, domain.ValidationError{Field: "startTime", Msg: err.Error()}
	}
	var end domain.Clock
	if strings.TrimSpace(in.EndTime) != "" {
		if end, err = domain.ParseClock(in.EndTime); err != nil {
			return sc, project, domain.ValidationError{Field: "endTime", Msg: err.Error()}
		}
	} else {
		var ok bool
		if end, ok = start.Add(project.DurationMinutes); !ok {
			return sc, project, domain.ValidationError{
				Field: "endTime",
				Msg:   fmt.Sprintf("startTime plus %d minutes runs past midnight", project.DurationMinutes),
			}
		}
	}
	if end <= start {
		return sc, project, domain.ValidationError{Field: "endTime", Msg: "must be after startTime"}
	}
	sc.StartTime, sc.EndTime = start.String(), end.String()

	if sc.Participants < 1 {
		return sc, project, domain.ValidationError{Field: "participants", Msg: "must be at least 1"}
	}
	if sc.Participants > project.Capacity {
		return sc, project, domain.ValidationError{
			Field: "participants",
			Msg:   fmt.Sprintf("exceeds project capacity of %d", project.Capacity),
			Code:  domain.CodeCapacityExceeded,
		}
	}
	if sc.Status == "" {
		sc.Status = models.ScheduleScheduled
	}
	if !models.ValidScheduleStatus(sc.Status) {
		return sc, project, domain.ValidationError{Field: "status", Msg: "unknown status " + sc.Status}
	}

	if sc.CoachID != nil {
		coach, err := s.Coaches.GetByID(ctx, *sc.CoachID)
		if err != nil {
			return sc, project, notFound(err, "coach")
		}
		if coach.Status != models.StaffActive {
			return sc, project, domain.ValidationError{Field: "coachId", Msg: "coach is inactive"}
		}
	}
	if sc.OrderID != nil {
		if _, err := s.Orders.GetByID(ctx, *sc.OrderID); err != nil {
			return sc, project, notFound(err, "order")
		}
	}
	return sc, project, nil
}

// ensureNoCoachConflict rejects the write when the coach already holds an overlapping live schedule.
func (s ScheduleService) ensureNoCoachConflict(ctx context.Context, sc models.Schedule, selfID int64) error {
	if sc.CoachID == nil || sc.Status == models.ScheduleCancelled {
		return nil
	}
	clash, err := s.Schedules.FindCoachOverlaps(ctx, models.OverlapQuery{
		ResourceID: *sc.CoachID,
		Date:       sc.Date,
		StartTime:  sc.StartTime,
		EndTime:    sc.EndTime,
		ExcludeID:  selfID,
	})
	if err != nil {
		return err
	}
	if len(clash) == 0 {
		return nil
	}
	metrics.IncScheduleConflict("coach")
	first := clash[0]
	msg := fmt.Sprintf("coach is already booked for %s %s-%s", first.ProjectName, first.StartTime, first.EndTime)
	return domain.ConflictError{
		Resource: "schedule",
		Msg:      msg,
		Code:     domain.CodeScheduleConflict,
		Details: map[string]any{
			"resource":              "coach",
			"conflictingScheduleId": first.ID,
			"conflicts":             clash,
		},
	}
}

func (s ScheduleService) Create(ctx context.Context, in ScheduleInput) (models.Schedule, error) {
	sc, _, err := s.build(ctx, in)
	if err != nil {
		return sc, err
	}
	if err := s.ensureNoCoachConflict(ctx, sc, 0); err != nil {
		return sc, err
	}
	id, err := s.Schedules.Create(ctx, &sc)
	if err != nil {
		return sc, mapRepoErr(err, "schedule", "", "")
	}
	utils.LogEvent(s.RequestID, "schedules", "create", fmt.Sprintf("schedule_id=%d date=%s %s-%s", id, sc.Date, sc.StartTime, sc.EndTime))
	return s.Get(ctx, id)
}

// Update edits everything but the status, which only moves through UpdateStatus.
// Completed schedules are frozen.
func (s ScheduleService) Update(ctx context.Context, id int64, in ScheduleInput) (models.Schedule, error) {
	cur, err := s.Schedules.GetByID(ctx, id)
	if err != nil {
		return models.Schedule{}, notFound(err, "schedule")
	}
	if cur.Status == models.ScheduleCompleted {
		return cur, domain.ConflictError{
			Resource: "schedule",
			Msg:      "completed schedule cannot be edited",
			Code:     domain.CodeInvalidStatus,
			Details:  map[string]string{"status": cur.Status},
		}
	}
	if in.Status != "" && strings.TrimSpace(in.Status) != cur.Status {
		return cur, invalidStatus("schedule", cur.Status, strings.TrimSpace(in.Status))
	}
	in.Status = cur.Status
	sc, _, err := s.build(ctx, in)
	if err != nil {
		return sc, err
	}
	if err := s.ensureNoCoachConflict(ctx, sc, id); err != nil {
		return sc, err
	}
	sc.ID = id
	if err := s.Schedules.Update(ctx, &sc); err != nil {
		return sc, mapRepoErr(err, "schedule", "", "")
	}
	utils.LogEvent(s.RequestID, "schedules", "update", fmt.Sprintf("schedule_id=%d", id))
	return s.Get(ctx, id)
}

// UpdateStatus only allows leaving "scheduled". Reopening a cancelled slot re-checks the coach.
func (s ScheduleService) UpdateStatus(ctx context.Context, id int64, next string) (models.Schedule, error) {
	next = strings.TrimSpace(next)
	if !models.ValidScheduleStatus(next) {
		return models.Schedule{}, domain.ValidationError{Field: "status", Msg: "unknown status " + next}
	}
	sc, err := s.Schedules.GetByID(ctx, id)
	if err != nil {
		return sc, notFound(err, "schedule")
	}
	if sc.Status == next {
		return sc, nil
	}
	switch {
	case sc.Status == models.ScheduleScheduled:
	case sc.Status == models.ScheduleCancelled && next == models.ScheduleScheduled:
		sc.Status = next
		if err := s.ensureNoCoachConflict(ctx, sc, id); err != nil {
			return sc, err
		}
	default:
		return sc, invalidStatus("schedule", sc.Status, next)
	}
	if err := s.Schedules.UpdateStatus(ctx, id, next); err != nil {
		return sc, notFound(err, "schedule")
	}
	utils.LogEvent(s.RequestID, "schedules", "status", fmt.Sprintf("schedule_id=%d -> %s", id, next))
	return s.Get(ctx, id)
}

func (s ScheduleService) Delete(ctx context.Context, id int64) error {
	if err := s.Schedules.Delete(ctx, id); err != nil {
		return notFound(err, "schedule")
	}
	utils.LogEvent(s.RequestID, "schedules", "delete", fmt.Sprintf("schedule_id=%d", id))
	return nil
}

func (s ScheduleService) CheckConflict(ctx context.Context, q ConflictCheck) (ConflictResult, error) {
	if q.CoachID <= 0 {
		return ConflictResult{}, required("coachId")
	}
	if _, err := domain.ParseDate(q.Date); err != nil {
		return ConflictResult{}, domain.ValidationError{Field: "date", Msg: err.Error()}
	}
	r, err := domain.NewTimeRange(q.StartTime, q.EndTime)
	if err != nil {
		return ConflictResult{}, err
	}
	clash, err := s.Schedules.FindCoachOverlaps(ctx, models.OverlapQuery{
		ResourceID: q.CoachID,
		Date:       q.Date,
		StartTime:  r.Start.String(),
		EndTime:    r.End.String(),
		ExcludeID:  q.ExcludeID,
	})
	if err != nil {
		return ConflictResult{}, err
	}
	if clash == nil {
		clash = []models.Schedule{}
	}
	return ConflictResult{HasConflict: len(clash) > 0, Conflicts: clash}, nil
}

// Timeline groups the day's live schedules by project, ordered by project name then start time.
func (s ScheduleService) Timeline(ctx context.Context, date string) ([]models.TimelineRow, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: err.Error()}
	}
	list, err := s.Schedules.List(ctx, models.ScheduleFilter{Date: date})
	if err != nil {
		return nil, err
	}
	projects, err := s.Projects.List(ctx, models.ProjectFilter{})
	if err != nil {
		return nil, err
	}
	capacity := make(map[int64]int, len(projects))
	for _, p := range projects {
		capacity[p.ID] = p.Capacity
	}
	return BuildTimeline(list, capacity), nil
}

// BuildTimeline is the pure grouping step of Timeline. Cancelled schedules are skipped.
func BuildTimeline(list []models.Schedule, capacity map[int64]int) []models.TimelineRow {
	rows := map[int64]*models.TimelineRow{}
	for _, sc := range list {
		if sc.Status == models.ScheduleCancelled {
			continue
		}
		row, ok := rows[sc.ProjectID]
		if !ok {
			row = &models.TimelineRow{
				ProjectID:   sc.ProjectID,
				ProjectName: sc.ProjectName,
				Capacity:    capacity[sc.ProjectID],
				Slots:       []models.TimelineSlot{},
			}
			rows[sc.ProjectID] = row
		}
		row.Slots = append(row.Slots, models.TimelineSlot{
			ScheduleID:   sc.ID,
			StartTime:    sc.StartTime,
			EndTime:      sc.EndTime,
			CoachID:      sc.CoachID,
			CoachName:    sc.CoachName,
			Participants: sc.Participants,
			Remaining:    max(row.Capacity-sc.Participants, 0),
			Status:       sc.Status,
		})
	}

	out := make([]models.TimelineRow, 0, len(rows))
	for _, r := range rows {
		sort.Slice(r.Slots, func(i, j int) bool { return r.Slots[i].StartTime < r.Slots[j].StartTime })
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjectName == out[j].ProjectName {
			return out[i].ProjectID < out[j].ProjectID
		}
		return out[i].ProjectName < out[j].ProjectName
	})
	return out
}
