package model

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity" validate:"gte=0"`
}

type WorkingDay struct {
	Date              string     `json:"date" validate:"required,datetime=2006-01-02"`
	Capacity          int        `json:"capacity" validate:"gt=0"`
	StartTime         string     `json:"start_time"`
	EndTime           string     `json:"end_time"`
	NumberOfDoctors   int        `json:"number_of_doctors"`
	NumberOfCustomers int        `json:"number_of_customers"`
	TimeSlots         []TimeSlot `json:"time_slots"`
}

// WorkingDateRow is one flattened (date, slot) pair, the unit the scheduling
// service accepts. Row order is the wire contract: positional validation
// errors reference indexes into this slice.
type WorkingDateRow struct {
	Date              string `json:"date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Capacity          int    `json:"capacity"`
	NumberOfDoctors   int    `json:"number_of_doctors"`
	NumberOfCustomers int    `json:"number_of_customers"`
	ShiftGroupId      string `json:"shift_group_id"`
}

// RowRef remembers which on-screen (date, slot) a flattened row came from.
type RowRef struct {
	Date      string
	SlotIndex int
}

type CodeMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WorkingDateValidationError is the scheduling service's 422 payload.
type WorkingDateValidationError struct {
	Errors []CodeMessage
}

func (e *WorkingDateValidationError) Error() string {
	return fmt.Sprintf("working dates rejected: %d field errors", len(e.Errors))
}

type FieldError struct {
	Date      string `json:"date"`
	SlotIndex int    `json:"slot_index"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

type SlotWarning struct {
	Date      string `json:"date"`
	SlotIndex int    `json:"slot_index"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}

type CreateWorkingHoursRequest struct {
	WorkingDates []WorkingDay `json:"working_dates" validate:"required,min=1,dive"`
	ShiftGroupId string       `json:"shift_group_id"`
}

type CreateWorkingHoursResponse struct {
	Created  int           `json:"created"`
	Warnings []SlotWarning `json:"warnings,omitempty"`
}

type WorkingHoursErrorResponse struct {
	Error       string       `json:"error"`
	FieldErrors []FieldError `json:"field_errors,omitempty"`
}

// FlattenWorkingDates turns the per-day structure into one row per
// (date, slot), in day order then slot order. A day without explicit slots
// yields a single default row carrying the day-level times and capacity.
// The returned refs are index-aligned with the rows so positional error
// codes can be mapped back to the originating day and slot.
func FlattenWorkingDates(days []WorkingDay, shiftGroupId string) ([]WorkingDateRow, []RowRef) {
	rows := make([]WorkingDateRow, 0, len(days))
	refs := make([]RowRef, 0, len(days))

	for _, day := range days {
		if len(day.TimeSlots) == 0 {
			rows = append(rows, WorkingDateRow{
				Date:              day.Date,
				StartTime:         day.StartTime,
				EndTime:           day.EndTime,
				Capacity:          day.Capacity,
				NumberOfDoctors:   day.NumberOfDoctors,
				NumberOfCustomers: day.NumberOfCustomers,
				ShiftGroupId:      shiftGroupId,
			})
			refs = append(refs, RowRef{Date: day.Date, SlotIndex: 0})
			continue
		}

		for i, slot := range day.TimeSlots {
			rows = append(rows, WorkingDateRow{
				Date:              day.Date,
				StartTime:         slot.StartTime,
				EndTime:           slot.EndTime,
				Capacity:          slot.Capacity,
				NumberOfDoctors:   day.NumberOfDoctors,
				NumberOfCustomers: day.NumberOfCustomers,
				ShiftGroupId:      shiftGroupId,
			})
			refs = append(refs, RowRef{Date: day.Date, SlotIndex: i})
		}
	}

	return rows, refs
}

var workingDateCodeRe = regexp.MustCompile(`^WorkingDates\[(\d+)\]\.(\w+)$`)

var workingDateFieldNames = map[string]string{
	"Date":      "date",
	"StartTime": "start_time",
	"EndTime":   "end_time",
	"Capacity":  "capacity",
}

// ParseWorkingDateCode parses a positional error code of the form
// WorkingDates[<index>].<FieldName>.
func ParseWorkingDateCode(code string) (index int, field string, ok bool) {
	m := workingDateCodeRe.FindStringSubmatch(code)
	if m == nil {
		return 0, "", false
	}

	index, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}

	field, ok = workingDateFieldNames[m[2]]
	if !ok {
		return 0, "", false
	}

	return index, field, true
}

// MapWorkingDateErrors maps positional 422 errors back onto the originating
// (date, slot, field). Codes that do not parse, or reference a row outside
// the submitted range, degrade to banner messages.
func MapWorkingDateErrors(refs []RowRef, upstream []CodeMessage) ([]FieldError, []string) {
	var fieldErrs []FieldError
	var banners []string

	for _, cm := range upstream {
		idx, field, ok := ParseWorkingDateCode(cm.Code)
		if !ok || idx < 0 || idx >= len(refs) {
			banners = append(banners, cm.Message)
			continue
		}

		fieldErrs = append(fieldErrs, FieldError{
			Date:      refs[idx].Date,
			SlotIndex: refs[idx].SlotIndex,
			Field:     field,
			Message:   cm.Message,
		})
	}

	return fieldErrs, banners
}

// RedistributeCapacity spreads a new day total across the existing slots
// proportionally to their current share. Integer rounding remainder goes to
// the last slot so the slot sum always equals the new total. With no slots,
// or with all slots at zero, the total is split evenly.
func (d *WorkingDay) RedistributeCapacity(newTotal int) {
	d.Capacity = newTotal
	if len(d.TimeSlots) == 0 {
		return
	}

	currentTotal := 0
	for _, slot := range d.TimeSlots {
		currentTotal += slot.Capacity
	}

	assigned := 0
	last := len(d.TimeSlots) - 1
	for i := range d.TimeSlots[:last] {
		var share int
		if currentTotal > 0 {
			share = newTotal * d.TimeSlots[i].Capacity / currentTotal
		} else {
			share = newTotal / len(d.TimeSlots)
		}

		d.TimeSlots[i].Capacity = share
		assigned += share
	}

	d.TimeSlots[last].Capacity = newTotal - assigned
}

// RecomputeCapacity sets the day total to the exact sum of its slots.
func (d *WorkingDay) RecomputeCapacity() {
	if len(d.TimeSlots) == 0 {
		return
	}

	total := 0
	for _, slot := range d.TimeSlots {
		total += slot.Capacity
	}

	d.Capacity = total
}

const (
	earlyStartBoundary = 6 * 60
	lateEndBoundary    = 22 * 60
	maxSlotSpanMinutes = 12 * 60
)

// SlotAdvisories returns the non-blocking unusual-hours warnings: a slot
// starting before 06:00, ending at or after 22:00, or spanning more than 12
// hours. They never prevent submission.
func SlotAdvisories(days []WorkingDay) []SlotWarning {
	var warnings []SlotWarning

	for _, day := range days {
		slots := day.TimeSlots
		if len(slots) == 0 {
			slots = []TimeSlot{{StartTime: day.StartTime, EndTime: day.EndTime}}
		}

		for i, slot := range slots {
			start, okStart := parseMinutes(slot.StartTime)
			end, okEnd := parseMinutes(slot.EndTime)

			if okStart && start < earlyStartBoundary {
				warnings = append(warnings, SlotWarning{
					Date: day.Date, SlotIndex: i, Field: "start_time",
					Message: fmt.Sprintf("slot starts unusually early at %s", slot.StartTime),
				})
			}

			if okEnd && end >= lateEndBoundary {
				warnings = append(warnings, SlotWarning{
					Date: day.Date, SlotIndex: i, Field: "end_time",
					Message: fmt.Sprintf("slot ends unusually late at %s", slot.EndTime),
				})
			}

			if okStart && okEnd && end-start > maxSlotSpanMinutes {
				warnings = append(warnings, SlotWarning{
					Date: day.Date, SlotIndex: i, Field: "end_time",
					Message: "slot spans more than 12 hours",
				})
			}
		}
	}

	return warnings
}

func parseMinutes(value string) (int, bool) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, false
	}

	return t.Hour()*60 + t.Minute(), true
}
