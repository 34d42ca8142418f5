package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	acModel "schoolku_backend/internals/features/school/academics/model"
)

var (
	ErrYearNotFound       = errors.New("academic year not found")
	ErrSemesterNotFound   = errors.New("semester not found")
	ErrSemesterOutsideYear = errors.New("semester does not belong to the current academic year")
)

// GetSchool returns the settings row, creating the default one on first
// use.
func GetSchool(db *gorm.DB) (*acModel.SchoolModel, error) {
	var school acModel.SchoolModel
	err := db.First(&school).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		school = acModel.SchoolModel{SchoolName: "My School"}
		if err := db.Create(&school).Error; err != nil {
			return nil, err
		}
		return &school, nil
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}

// SetCurrentYear points the school at a year and clears the current
// semester, all in one transaction. There is no per-row is_current flag
// to race on.
func SetCurrentYear(db *gorm.DB, yearID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var year acModel.AcademicYearModel
		if err := tx.First(&year, "academic_year_id = ?", yearID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrYearNotFound
			}
			return err
		}
		school, err := GetSchool(tx)
		if err != nil {
			return err
		}
		return tx.Model(school).Updates(map[string]any{
			"school_current_year_id":     yearID,
			"school_current_semester_id": nil,
		}).Error
	})
}

// SetCurrentSemester points the school at a semester of the current
// year.
func SetCurrentSemester(db *gorm.DB, semesterID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sem acModel.SemesterModel
		if err := tx.First(&sem, "semester_id = ?", semesterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSemesterNotFound
			}
			return err
		}
		school, err := GetSchool(tx)
		if err != nil {
			return err
		}
		if school.SchoolCurrentYearID == nil || *school.SchoolCurrentYearID != sem.SemesterYearID {
			return ErrSemesterOutsideYear
		}
		return tx.Model(school).
			Update("school_current_semester_id", semesterID).Error
	})
}

// ClearCurrentIfYear drops the pointers when the referenced year is
// being deleted; called inside the delete transaction.
func ClearCurrentIfYear(tx *gorm.DB, yearID uuid.UUID) error {
	school, err := GetSchool(tx)
	if err != nil {
		return err
	}
	if school.SchoolCurrentYearID != nil && *school.SchoolCurrentYearID == yearID {
		return tx.Model(school).Updates(map[string]any{
			"school_current_year_id":     nil,
			"school_current_semester_id": nil,
		}).Error
	}
	return nil
}

// ClearCurrentIfSemester drops the semester pointer when that semester
// is being deleted.
func ClearCurrentIfSemester(tx *gorm.DB, semesterID uuid.UUID) error {
	school, err := GetSchool(tx)
	if err != nil {
		return err
	}
	if school.SchoolCurrentSemesterID != nil && *school.SchoolCurrentSemesterID == semesterID {
		return tx.Model(school).Update("school_current_semester_id", nil).Error
	}
	return nil
}
