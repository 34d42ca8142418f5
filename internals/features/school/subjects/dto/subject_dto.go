package dto

import (
	"github.com/google/uuid"

	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

type CreateSubjectRequest struct {
	Code        string `json:"subject_code" validate:"required,min=1,max=20"`
	Name        string `json:"subject_name" validate:"required,min=1,max=80"`
	Description string `json:"subject_description" validate:"omitempty,max=2000"`
}

type UpdateSubjectRequest struct {
	Code        *string `json:"subject_code" validate:"omitempty,min=1,max=20"`
	Name        *string `json:"subject_name" validate:"omitempty,min=1,max=80"`
	Description *string `json:"subject_description" validate:"omitempty,max=2000"`
}

func (r *UpdateSubjectRequest) Apply(m *subjectModel.SubjectModel) {
	if r.Code != nil {
		m.SubjectCode = *r.Code
	}
	if r.Name != nil {
		m.SubjectName = *r.Name
	}
	if r.Description != nil {
		m.SubjectDescription = *r.Description
	}
}

type AssignSubjectRequest struct {
	ClassID     uuid.UUID `json:"class_subject_class_id" validate:"required"`
	SubjectID   uuid.UUID `json:"class_subject_subject_id" validate:"required"`
	IsMandatory *bool     `json:"class_subject_is_mandatory"`
}

type UpdateAssignmentRequest struct {
	IsMandatory bool `json:"class_subject_is_mandatory"`
}
