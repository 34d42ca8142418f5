package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "schoolku_backend/internals/features/users/users/model"
)

/* =========================================================
   CREATE (admin)
   ========================================================= */

type CreateUserRequest struct {
	Name     string   `json:"user_name" validate:"required,min=3,max=120"`
	Email    string   `json:"user_email" validate:"required,email"`
	Password string   `json:"user_password" validate:"required,min=8"`
	Phone    *string  `json:"user_phone" validate:"omitempty,max=30"`
	Roles    []string `json:"user_roles" validate:"required,min=1,dive,oneof=admin principal teacher leading_teacher parent student"`

	// Role-specific profile fields, applied when the matching role is set.
	StudentCode    *string    `json:"student_code" validate:"omitempty,min=1,max=40"`
	StudentDOB     *time.Time `json:"student_dob"`
	GuardianUserID *uuid.UUID `json:"guardian_user_id"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Phone != nil {
		p := strings.TrimSpace(*r.Phone)
		if p == "" {
			r.Phone = nil
		} else {
			r.Phone = &p
		}
	}
	if r.StudentCode != nil {
		s := strings.TrimSpace(*r.StudentCode)
		if s == "" {
			r.StudentCode = nil
		} else {
			r.StudentCode = &s
		}
	}
	// dedupe roles, keep order
	seen := map[string]bool{}
	out := r.Roles[:0]
	for _, role := range r.Roles {
		role = strings.TrimSpace(role)
		if role == "" || seen[role] {
			continue
		}
		seen[role] = true
		out = append(out, role)
	}
	r.Roles = out
}

/* =========================================================
   UPDATE (admin)
   ========================================================= */

type UpdateUserRequest struct {
	Name     *string   `json:"user_name" validate:"omitempty,min=3,max=120"`
	Email    *string   `json:"user_email" validate:"omitempty,email"`
	Phone    *string   `json:"user_phone" validate:"omitempty,max=30"`
	Roles    *[]string `json:"user_roles" validate:"omitempty,min=1,dive,oneof=admin principal teacher leading_teacher parent student"`
	IsActive *bool     `json:"user_is_active"`
}

func (r UpdateUserRequest) Apply(mo *m.UserModel) {
	if r.Name != nil {
		mo.UserName = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		mo.UserEmail = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Phone != nil {
		p := strings.TrimSpace(*r.Phone)
		if p == "" {
			mo.UserPhone = nil
		} else {
			mo.UserPhone = &p
		}
	}
	if r.Roles != nil {
		mo.UserRoles = *r.Roles
	}
	if r.IsActive != nil {
		mo.UserIsActive = *r.IsActive
	}
}

/* =========================================================
   RESPONSES
   ========================================================= */

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	UserPhone     *string   `json:"user_phone,omitempty"`
	UserPhotoPath *string   `json:"user_photo_path,omitempty"`
	UserRoles     []string  `json:"user_roles"`
	UserIsActive  bool      `json:"user_is_active"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

func FromUserModel(mo m.UserModel) UserResponse {
	return UserResponse{
		UserID:        mo.UserID,
		UserName:      mo.UserName,
		UserEmail:     mo.UserEmail,
		UserPhone:     mo.UserPhone,
		UserPhotoPath: mo.UserPhotoPath,
		UserRoles:     mo.UserRoles,
		UserIsActive:  mo.UserIsActive,
		UserCreatedAt: mo.UserCreatedAt,
	}
}

func FromUserModels(rows []m.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromUserModel(rows[i]))
	}
	return out
}

type StudentResponse struct {
	UserResponse
	StudentCode    string     `json:"student_code"`
	StudentDOB     *time.Time `json:"student_dob,omitempty"`
	GuardianUserID *uuid.UUID `json:"guardian_user_id,omitempty"`
}
