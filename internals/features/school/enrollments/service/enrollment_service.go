package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "schoolku_backend/internals/features/school/classes/model"
	enrollModel "schoolku_backend/internals/features/school/enrollments/model"
	helper "schoolku_backend/internals/helpers"
)

var (
	ErrSectionNotFound     = errors.New("section not found")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrSectionFull         = errors.New("the section is already at capacity")
	ErrDuplicateEnrollment = errors.New("the student already has an enrollment in this section and year")
	ErrRollTaken           = errors.New("Roll number is already assigned")
	ErrAlreadyActive       = errors.New("the student already has an active enrollment")
)

const rollIndexMarkers = "uq_enrollments_active_section_roll"

func isRollViolation(err error) bool {
	return helper.IsUniqueViolation(err, rollIndexMarkers, "enrollment_roll_number")
}

func isActiveStudentViolation(err error) bool {
	return helper.IsUniqueViolation(err, "uq_enrollments_active_student", "enrollment_student_id")
}

// Enroll places a student into a section for a year. Any prior active
// enrollment is deactivated and the new active row inserted inside one
// transaction; the partial unique indexes close the races the
// pre-checks cannot.
func Enroll(db *gorm.DB, studentID, sectionID, yearID uuid.UUID, rollNumber int, enrolledAt time.Time) (*enrollModel.EnrollmentModel, error) {
	if studentID == uuid.Nil || sectionID == uuid.Nil || yearID == uuid.Nil || rollNumber <= 0 {
		return nil, errors.New("student, section, year and a positive roll number are required")
	}

	var out enrollModel.EnrollmentModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var section classModel.SectionModel
		if err := tx.First(&section, "section_id = ?", sectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		var dup int64
		if err := tx.Model(&enrollModel.EnrollmentModel{}).
			Where("enrollment_student_id = ? AND enrollment_section_id = ? AND enrollment_year_id = ?",
				studentID, sectionID, yearID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicateEnrollment
		}

		var active int64
		if err := tx.Model(&enrollModel.EnrollmentModel{}).
			Where("enrollment_section_id = ? AND enrollment_status = ?", sectionID, enrollModel.EnrollmentStatusActive).
			Count(&active).Error; err != nil {
			return err
		}
		if section.SectionCapacity > 0 && active >= int64(section.SectionCapacity) {
			return ErrSectionFull
		}

		if err := tx.Model(&enrollModel.EnrollmentModel{}).
			Where("enrollment_student_id = ? AND enrollment_status = ?", studentID, enrollModel.EnrollmentStatusActive).
			Update("enrollment_status", enrollModel.EnrollmentStatusInactive).Error; err != nil {
			return err
		}

		out = enrollModel.EnrollmentModel{
			EnrollmentStudentID:  studentID,
			EnrollmentSectionID:  sectionID,
			EnrollmentYearID:     yearID,
			EnrollmentRollNumber: rollNumber,
			EnrollmentStatus:     enrollModel.EnrollmentStatusActive,
			EnrollmentEnrolledAt: enrolledAt,
		}
		return tx.Create(&out).Error
	})
	if err != nil {
		switch {
		case isRollViolation(err):
			return nil, ErrRollTaken
		case isActiveStudentViolation(err):
			return nil, ErrAlreadyActive
		}
		return nil, err
	}
	return &out, nil
}

// Transfer moves an enrollment to a new section and roll number in
// place. On any failure the row is left exactly as it was.
func Transfer(db *gorm.DB, enrollmentID, newSectionID uuid.UUID, newRoll int) (*enrollModel.EnrollmentModel, error) {
	if newSectionID == uuid.Nil || newRoll <= 0 {
		return nil, errors.New("target section and a positive roll number are required")
	}

	var out enrollModel.EnrollmentModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "enrollment_id = ?", enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}
		var section classModel.SectionModel
		if err := tx.First(&section, "section_id = ?", newSectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		out.EnrollmentSectionID = newSectionID
		out.EnrollmentRollNumber = newRoll
		return tx.Save(&out).Error
	})
	if err != nil {
		if isRollViolation(err) {
			return nil, ErrRollTaken
		}
		return nil, err
	}
	return &out, nil
}

// Withdraw marks an enrollment withdrawn. There is no reactivation
// path; the roll number is kept for the record.
func Withdraw(db *gorm.DB, enrollmentID uuid.UUID) (*enrollModel.EnrollmentModel, error) {
	var out enrollModel.EnrollmentModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "enrollment_id = ?", enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}
		out.EnrollmentStatus = enrollModel.EnrollmentStatusWithdrawn
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkPromote moves every active enrollment from one section to
// another for a new year, reassigning roll numbers 1..N in roll order.
// The whole batch commits or none of it does.
func BulkPromote(db *gorm.DB, fromSectionID, toSectionID, toYearID uuid.UUID) ([]enrollModel.EnrollmentModel, error) {
	if fromSectionID == toSectionID {
		return nil, errors.New("source and target sections must differ")
	}

	var promoted []enrollModel.EnrollmentModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var target classModel.SectionModel
		if err := tx.First(&target, "section_id = ?", toSectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		var source []enrollModel.EnrollmentModel
		if err := tx.
			Where("enrollment_section_id = ? AND enrollment_status = ?", fromSectionID, enrollModel.EnrollmentStatusActive).
			Order("enrollment_roll_number ASC").
			Find(&source).Error; err != nil {
			return err
		}
		if target.SectionCapacity > 0 && len(source) > target.SectionCapacity {
			return ErrSectionFull
		}

		for i, old := range source {
			if err := tx.Model(&enrollModel.EnrollmentModel{}).
				Where("enrollment_id = ?", old.EnrollmentID).
				Update("enrollment_status", enrollModel.EnrollmentStatusInactive).Error; err != nil {
				return err
			}
			next := enrollModel.EnrollmentModel{
				EnrollmentStudentID:  old.EnrollmentStudentID,
				EnrollmentSectionID:  toSectionID,
				EnrollmentYearID:     toYearID,
				EnrollmentRollNumber: i + 1,
				EnrollmentStatus:     enrollModel.EnrollmentStatusActive,
				EnrollmentEnrolledAt: time.Now(),
			}
			if err := tx.Create(&next).Error; err != nil {
				return err
			}
			promoted = append(promoted, next)
		}
		return nil
	})
	if err != nil {
		if isRollViolation(err) {
			return nil, ErrRollTaken
		}
		return nil, err
	}
	return promoted, nil
}
