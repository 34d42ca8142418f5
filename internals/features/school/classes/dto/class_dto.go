package dto

import (
	"github.com/google/uuid"

	classModel "schoolku_backend/internals/features/school/classes/model"
)

type CreateClassRequest struct {
	Name  string `json:"class_name" validate:"required,min=1,max=80"`
	Level int    `json:"class_level" validate:"gte=0,lte=20"`
}

type UpdateClassRequest struct {
	Name  *string `json:"class_name" validate:"omitempty,min=1,max=80"`
	Level *int    `json:"class_level" validate:"omitempty,gte=0,lte=20"`
}

func (r *UpdateClassRequest) Apply(m *classModel.ClassModel) {
	if r.Name != nil {
		m.ClassName = *r.Name
	}
	if r.Level != nil {
		m.ClassLevel = *r.Level
	}
}

type CreateSectionRequest struct {
	ClassID           uuid.UUID  `json:"section_class_id" validate:"required"`
	Name              string     `json:"section_name" validate:"required,min=1,max=40"`
	Capacity          int        `json:"section_capacity" validate:"gte=1,lte=200"`
	HomeroomTeacherID *uuid.UUID `json:"section_homeroom_teacher_id"`
}

type UpdateSectionRequest struct {
	Name              *string    `json:"section_name" validate:"omitempty,min=1,max=40"`
	Capacity          *int       `json:"section_capacity" validate:"omitempty,gte=1,lte=200"`
	HomeroomTeacherID *uuid.UUID `json:"section_homeroom_teacher_id"`
	ClearHomeroom     bool       `json:"clear_homeroom"`
}

// SectionWithCountResponse carries the active enrollment count next to
// the capacity so list screens can show occupancy at a glance.
type SectionWithCountResponse struct {
	classModel.SectionModel
	ActiveStudents int64 `json:"active_students"`
}
