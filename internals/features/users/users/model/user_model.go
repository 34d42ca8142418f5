package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/* =======================================================
   USERS
   ======================================================= */

// RoleList stores the role set as a postgres text[]. Other dialects
// (the sqlite test driver) fall back to pq's string encoding in a
// plain text column.
type RoleList pq.StringArray

func (r RoleList) Value() (driver.Value, error) { return pq.StringArray(r).Value() }
func (r *RoleList) Scan(src any) error          { return (*pq.StringArray)(r).Scan(src) }

func (RoleList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// UserModel is the identity row. Roles are a label set (text[]), not a
// comma-joined string: requireRole checks are set intersections.
type UserModel struct {
	UserID           uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserName         string         `gorm:"column:user_name;size:120;not null" json:"user_name"`
	UserEmail        string         `gorm:"column:user_email;size:255;not null;uniqueIndex:uq_users_email" json:"user_email"`
	UserPasswordHash string         `gorm:"column:user_password_hash;not null" json:"-"`
	UserPhone        *string        `gorm:"column:user_phone;size:30" json:"user_phone,omitempty"`
	UserPhotoPath    *string        `gorm:"column:user_photo_path;type:text" json:"user_photo_path,omitempty"`
	UserRoles        RoleList       `gorm:"column:user_roles;not null" json:"user_roles"`
	UserIsActive     bool           `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;type:timestamptz;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;type:timestamptz;not null;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}

func (m *UserModel) BeforeSave(tx *gorm.DB) error {
	m.UserName = strings.TrimSpace(m.UserName)
	m.UserEmail = strings.ToLower(strings.TrimSpace(m.UserEmail))
	return nil
}

// HasRole reports membership in the role set.
func (m *UserModel) HasRole(role string) bool {
	for _, r := range m.UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

/* =======================================================
   STUDENT PROFILE (1:1 users)
   ======================================================= */

type StudentProfileModel struct {
	StudentProfileID     uuid.UUID  `gorm:"column:student_profile_id;type:uuid;primaryKey" json:"student_profile_id"`
	StudentProfileUserID uuid.UUID  `gorm:"column:student_profile_user_id;type:uuid;not null;uniqueIndex:uq_student_profiles_user" json:"student_profile_user_id"`
	StudentProfileCode   string     `gorm:"column:student_profile_code;size:40;not null;uniqueIndex:uq_student_profiles_code" json:"student_profile_code"`
	StudentProfileDOB    *time.Time `gorm:"column:student_profile_dob;type:date" json:"student_profile_dob,omitempty"`

	// Guardian of record (a user with the parent role).
	StudentProfileGuardianUserID *uuid.UUID `gorm:"column:student_profile_guardian_user_id;type:uuid;index:idx_student_profiles_guardian" json:"student_profile_guardian_user_id,omitempty"`

	StudentProfileCreatedAt time.Time      `gorm:"column:student_profile_created_at;type:timestamptz;not null;autoCreateTime" json:"student_profile_created_at"`
	StudentProfileUpdatedAt time.Time      `gorm:"column:student_profile_updated_at;type:timestamptz;not null;autoUpdateTime" json:"student_profile_updated_at"`
	StudentProfileDeletedAt gorm.DeletedAt `gorm:"column:student_profile_deleted_at;index" json:"student_profile_deleted_at,omitempty"`
}

func (StudentProfileModel) TableName() string { return "student_profiles" }

func (m *StudentProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentProfileID == uuid.Nil {
		m.StudentProfileID = uuid.New()
	}
	return nil
}

/* =======================================================
   TEACHER PROFILE (1:1 users)
   ======================================================= */

type TeacherProfileModel struct {
	TeacherProfileID       uuid.UUID `gorm:"column:teacher_profile_id;type:uuid;primaryKey" json:"teacher_profile_id"`
	TeacherProfileUserID   uuid.UUID `gorm:"column:teacher_profile_user_id;type:uuid;not null;uniqueIndex:uq_teacher_profiles_user" json:"teacher_profile_user_id"`
	TeacherProfileNIP      *string   `gorm:"column:teacher_profile_nip;size:40" json:"teacher_profile_nip,omitempty"`
	TeacherProfileHireDate *time.Time `gorm:"column:teacher_profile_hire_date;type:date" json:"teacher_profile_hire_date,omitempty"`

	TeacherProfileCreatedAt time.Time      `gorm:"column:teacher_profile_created_at;type:timestamptz;not null;autoCreateTime" json:"teacher_profile_created_at"`
	TeacherProfileUpdatedAt time.Time      `gorm:"column:teacher_profile_updated_at;type:timestamptz;not null;autoUpdateTime" json:"teacher_profile_updated_at"`
	TeacherProfileDeletedAt gorm.DeletedAt `gorm:"column:teacher_profile_deleted_at;index" json:"teacher_profile_deleted_at,omitempty"`
}

func (TeacherProfileModel) TableName() string { return "teacher_profiles" }

func (m *TeacherProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherProfileID == uuid.Nil {
		m.TeacherProfileID = uuid.New()
	}
	return nil
}

/* =======================================================
   PARENT PROFILE (1:1 users)
   ======================================================= */

type ParentProfileModel struct {
	ParentProfileID         uuid.UUID `gorm:"column:parent_profile_id;type:uuid;primaryKey" json:"parent_profile_id"`
	ParentProfileUserID     uuid.UUID `gorm:"column:parent_profile_user_id;type:uuid;not null;uniqueIndex:uq_parent_profiles_user" json:"parent_profile_user_id"`
	ParentProfileOccupation *string   `gorm:"column:parent_profile_occupation;size:120" json:"parent_profile_occupation,omitempty"`
	ParentProfileAddress    *string   `gorm:"column:parent_profile_address;type:text" json:"parent_profile_address,omitempty"`

	ParentProfileCreatedAt time.Time      `gorm:"column:parent_profile_created_at;type:timestamptz;not null;autoCreateTime" json:"parent_profile_created_at"`
	ParentProfileUpdatedAt time.Time      `gorm:"column:parent_profile_updated_at;type:timestamptz;not null;autoUpdateTime" json:"parent_profile_updated_at"`
	ParentProfileDeletedAt gorm.DeletedAt `gorm:"column:parent_profile_deleted_at;index" json:"parent_profile_deleted_at,omitempty"`
}

func (ParentProfileModel) TableName() string { return "parent_profiles" }

func (m *ParentProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.ParentProfileID == uuid.Nil {
		m.ParentProfileID = uuid.New()
	}
	return nil
}
