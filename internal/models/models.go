package models

import "time"

// Action is the response a user gave to a reminder
type Action string

const (
	ActionCompleted Action = "completed"
	ActionDismissed Action = "dismissed"
	ActionSnoozed   Action = "snoozed"
)

// Valid reports whether a is one of the known actions
func (a Action) Valid() bool {
	switch a {
	case ActionCompleted, ActionDismissed, ActionSnoozed:
		return true
	default:
		return false
	}
}

// RepeatType describes how a reminder recurs
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatHourly  RepeatType = "hourly"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
	RepeatCustom  RepeatType = "custom"
)

// Valid reports whether r is one of the known repeat types
func (r RepeatType) Valid() bool {
	switch r {
	case RepeatNone, RepeatHourly, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly, RepeatCustom:
		return true
	default:
		return false
	}
}

// Layouts used for the reminder's scheduled date and time strings
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// RepeatConfig holds the optional recurrence details for custom repeats
type RepeatConfig struct {
	Interval     int   `json:"interval,omitempty"`
	SelectedDays []int `json:"selected_days,omitempty"` // 0-6 (Sun-Sat)
}

// Reminder represents a recurring personal reminder
type Reminder struct {
	ID                 int64         `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Category           Category      `json:"category"`
	ScheduledDate      string        `json:"scheduled_date"`
	ScheduledTime      string        `json:"scheduled_time"`
	RepeatType         RepeatType    `json:"repeat_type"`
	RepeatConfig       *RepeatConfig `json:"repeat_config,omitempty"`
	AdvanceReminderMin int           `json:"advance_reminder_min"`
	IsActive           bool          `json:"is_active"`
	CreatedAt          int64         `json:"created_at"` // epoch milliseconds
}

// ActivityLog records a single user response to a reminder. Logs are
// append-only; ReminderID is a lookup key and the reminder may be gone.
type ActivityLog struct {
	ID            int64  `json:"id"`
	ReminderID    int64  `json:"reminder_id"`
	Action        Action `json:"action"`
	Timestamp     int64  `json:"timestamp"`      // epoch milliseconds
	ScheduledTime int64  `json:"scheduled_time"` // epoch milliseconds
}

// Time returns the log timestamp in loc
func (l ActivityLog) Time(loc *time.Location) time.Time {
	return time.UnixMilli(l.Timestamp).In(loc)
}

// HasValidTimestamp reports whether the log carries a usable timestamp.
// Zero and negative values come from records that were never stamped.
func (l ActivityLog) HasValidTimestamp() bool {
	return l.Timestamp > 0
}

// CreateReminderRequest represents the request to create a reminder
type CreateReminderRequest struct {
	Title              string        `json:"title" binding:"required"`
	Description        string        `json:"description"`
	Category           string        `json:"category" binding:"required"`
	ScheduledDate      string        `json:"scheduled_date" binding:"required"`
	ScheduledTime      string        `json:"scheduled_time" binding:"required"`
	RepeatType         string        `json:"repeat_type"`
	RepeatConfig       *RepeatConfig `json:"repeat_config"`
	AdvanceReminderMin int           `json:"advance_reminder_min"`
	IsActive           *bool         `json:"is_active"`
}

// UpdateReminderRequest represents the request to update a reminder.
// Absent fields are left unchanged; repeat_config may be null to clear it.
type UpdateReminderRequest struct {
	Title              *string                `json:"title"`
	Description        *string                `json:"description"`
	Category           *string                `json:"category"`
	ScheduledDate      *string                `json:"scheduled_date"`
	ScheduledTime      *string                `json:"scheduled_time"`
	RepeatType         *string                `json:"repeat_type"`
	RepeatConfig       Nullable[RepeatConfig] `json:"repeat_config"`
	AdvanceReminderMin *int                   `json:"advance_reminder_min"`
	IsActive           *bool                  `json:"is_active"`
}

// LogActivityRequest represents the request to append an activity log
type LogActivityRequest struct {
	ReminderID    int64      `json:"reminder_id" binding:"required"`
	Action        string     `json:"action" binding:"required"`
	Timestamp     *time.Time `json:"timestamp"`
	ScheduledTime *time.Time `json:"scheduled_time"`
}

// IdempotencyKey is a stored response for a replayed mutating request
type IdempotencyKey struct {
	Key          string    `json:"key"`
	Route        string    `json:"route"`
	ResponseBody []byte    `json:"response_body"`
	StatusCode   int       `json:"status_code"`
	CreatedAt    time.Time `json:"created_at"`
}
