package dto

import "github.com/google/uuid"

type CreateTimeSlotRequest struct {
	Name      string `json:"time_slot_name" validate:"required,min=1,max=40"`
	StartTime string `json:"time_slot_start_time" validate:"required,len=5"`
	EndTime   string `json:"time_slot_end_time" validate:"required,len=5"`
	Order     int    `json:"time_slot_order" validate:"gte=0"`
}

type UpdateTimeSlotRequest struct {
	Name      *string `json:"time_slot_name" validate:"omitempty,min=1,max=40"`
	StartTime *string `json:"time_slot_start_time" validate:"omitempty,len=5"`
	EndTime   *string `json:"time_slot_end_time" validate:"omitempty,len=5"`
	Order     *int    `json:"time_slot_order" validate:"omitempty,gte=0"`
}

type AddPeriodRequest struct {
	SectionID uuid.UUID `json:"section_id" validate:"required"`
	Day       int       `json:"day" validate:"required,gte=1,lte=7"`
	SlotID    uuid.UUID `json:"slot_id" validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
}

type EditPeriodRequest struct {
	Day       int       `json:"day" validate:"required,gte=1,lte=7"`
	SlotID    uuid.UUID `json:"slot_id" validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
}

type CopyPeriodRequest struct {
	TargetDays []int `json:"target_days" validate:"required,min=1,dive,gte=1,lte=7"`
}
