package models

import "time"

const (
	ScheduleScheduled = "scheduled"
	ScheduleCompleted = "completed"
	ScheduleCancelled = "cancelled"
)

// Schedule assigns a project to a coach for a time box on one day.
type Schedule struct {
	ID           int64     `db:"id" json:"id"`
	ProjectID    int64     `db:"project_id" json:"projectId"`
	CoachID      *int64    `db:"coach_id" json:"coachId"`
	OrderID      *int64    `db:"order_id" json:"orderId"`
	Date         string    `db:"schedule_date" json:"date"`
	StartTime    string    `db:"start_time" json:"startTime"`
	EndTime      string    `db:"end_time" json:"endTime"`
	Participants int       `db:"participants" json:"participants"`
	Status       string    `db:"status" json:"status"`
	Notes        string    `db:"notes" json:"notes"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`

	ProjectName string `db:"project_name" json:"projectName,omitempty"`
	CoachName   string `db:"coach_name" json:"coachName,omitempty"`
}

type ScheduleFilter struct {
	Date      string
	DateFrom  string
	DateTo    string
	ProjectID int64
	CoachID   int64
	Status    string
}

// OverlapQuery looks for live schedules of one resource overlapping [StartTime, EndTime) on Date.
type OverlapQuery struct {
	ResourceID int64
	Date       string
	StartTime  string
	EndTime    string
	ExcludeID  int64
}

func ValidScheduleStatus(s string) bool {
	return s == ScheduleScheduled || s == ScheduleCompleted || s == ScheduleCancelled
}

// TimelineSlot is one scheduled block of a project on the day timeline.
type TimelineSlot struct {
	ScheduleID   int64  `json:"scheduleId"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	CoachID      *int64 `json:"coachId"`
	CoachName    string `json:"coachName"`
	Participants int    `json:"participants"`
	Remaining    int    `json:"remaining"`
	Status       string `json:"status"`
}

// TimelineRow groups a day's slots for one project.
type TimelineRow struct {
	ProjectID   int64          `json:"projectId"`
	ProjectName string         `json:"projectName"`
	Capacity    int            `json:"capacity"`
	Slots       []TimelineSlot `json:"slots"`
}
