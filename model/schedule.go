package model

type ScheduleStatus string

const (
	ScheduleStatusPending     ScheduleStatus = "Pending"
	ScheduleStatusInProgress  ScheduleStatus = "In Progress"
	ScheduleStatusCompleted   ScheduleStatus = "Completed"
	ScheduleStatusUncompleted ScheduleStatus = "Uncompleted"
)

// Follow-up availability values returned by the scheduling service. These are
// matched verbatim, trailing space and all; anything else means no action.
const (
	FollowUpNeedSchedule     = "Need to schedule for next step"
	FollowUpAlreadyScheduled = "Already scheduled for next step"
	FollowUpNotFound         = "Next Customer Schedule Not Found !"
)

type FollowUpAction string

const (
	FollowUpActionSchedule FollowUpAction = "follow_up"
	FollowUpActionViewNext FollowUpAction = "view_next"
	FollowUpActionNone     FollowUpAction = "none"
)

// ClassifyFollowUp maps the availability value to the single action the UI
// may render for a completed schedule.
func ClassifyFollowUp(value string) FollowUpAction {
	switch value {
	case FollowUpNeedSchedule:
		return FollowUpActionSchedule
	case FollowUpAlreadyScheduled:
		return FollowUpActionViewNext
	default:
		return FollowUpActionNone
	}
}

type CustomerSchedule struct {
	Id             string         `json:"id"`
	CustomerName   string         `json:"customer_name"`
	CustomerPhone  string         `json:"customer_phone"`
	ServiceName    string         `json:"service_name"`
	DoctorName     string         `json:"doctor_name"`
	BookingDate    string         `json:"booking_date"`
	StartTime      string         `json:"start_time"`
	EndTime        string         `json:"end_time"`
	Status         ScheduleStatus `json:"status"`
	IsFirstCheckIn bool           `json:"is_first_check_in"`
}

type FollowUpInfo struct {
	Status           string         `json:"status"`
	Action           FollowUpAction `json:"action"`
	HideOverflowMenu bool           `json:"hide_overflow_menu"`
}

type ClinicScheduleRow struct {
	CustomerSchedule
	FollowUp *FollowUpInfo `json:"follow_up,omitempty"`
}

type SchedulePage struct {
	Items      []CustomerSchedule `json:"items"`
	PageIndex  int                `json:"page_index"`
	PageSize   int                `json:"page_size"`
	TotalCount int                `json:"total_count"`
}

type ClinicSchedulePage struct {
	Items      []ClinicScheduleRow `json:"items"`
	PageIndex  int                 `json:"page_index"`
	PageSize   int                 `json:"page_size"`
	TotalCount int                 `json:"total_count"`
}

type ClinicScheduleQuery struct {
	PageIndex  int
	PageSize   int
	StartDate  string
	EndDate    string
	SortColumn string
	SortOrder  string
}

type CustomerScheduleQuery struct {
	CustomerName  string
	CustomerPhone string
	PageIndex     int
	PageSize      int
}

type CheckInRequest struct {
	ConfirmedEarly bool `json:"confirmed_early"`
}

type CheckInEarlyResponse struct {
	MinutesEarly int `json:"minutes_early"`
}

type CompleteScheduleRequest struct {
	PaymentCaptured bool `json:"payment_captured"`
}
