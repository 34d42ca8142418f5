package database

import (
	"gorm.io/gorm"

	assignmentModel "schoolku_backend/internals/features/lms/assignments/model"
	quizModel "schoolku_backend/internals/features/lms/quizzes/model"
	readingModel "schoolku_backend/internals/features/lms/reading/model"
	academicModel "schoolku_backend/internals/features/school/academics/model"
	attendanceModel "schoolku_backend/internals/features/school/attendance/model"
	classModel "schoolku_backend/internals/features/school/classes/model"
	enrollModel "schoolku_backend/internals/features/school/enrollments/model"
	examModel "schoolku_backend/internals/features/school/exams/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	timetableModel "schoolku_backend/internals/features/school/timetable/model"
	authModel "schoolku_backend/internals/features/users/auth/model"
	userModel "schoolku_backend/internals/features/users/users/model"
)

// Migrate creates the schema. Called on boot against postgres and by
// the service tests against in-memory sqlite, so everything here has to
// work on both: AutoMigrate for the tables, then the partial unique
// indexes AutoMigrate cannot express (both dialects accept the same
// CREATE UNIQUE INDEX ... WHERE syntax).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// identities
		&userModel.UserModel{},
		&userModel.StudentProfileModel{},
		&userModel.TeacherProfileModel{},
		&userModel.ParentProfileModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklistModel{},

		// academic calendar
		&academicModel.SchoolModel{},
		&academicModel.AcademicYearModel{},
		&academicModel.SemesterModel{},

		// class structure
		&classModel.ClassModel{},
		&classModel.SectionModel{},
		&subjectModel.SubjectModel{},
		&subjectModel.ClassSubjectModel{},
		&enrollModel.EnrollmentModel{},

		// daily operations
		&attendanceModel.StudentAttendanceModel{},
		&examModel.ExamModel{},
		&examModel.GradeModel{},
		&timetableModel.TimeSlotModel{},
		&timetableModel.TimetableEntryModel{},

		// lms
		&assignmentModel.AssignmentModel{},
		&assignmentModel.AssignmentSubmissionModel{},
		&quizModel.QuizModel{},
		&readingModel.BookModel{},
		&readingModel.ReadingLogModel{},
		&readingModel.BadgeModel{},
		&readingModel.ReadingBadgeModel{},
	); err != nil {
		return err
	}
	return createPartialIndexes(db)
}

// Enrollment uniqueness is conditional (only active rows compete), so
// it lives in partial indexes rather than gorm tags. Insert races land
// here, not in application-level checks.
func createPartialIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_enrollments_active_student
		   ON enrollments (enrollment_student_id)
		   WHERE enrollment_status = 'active' AND enrollment_deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_enrollments_active_section_roll
		   ON enrollments (enrollment_section_id, enrollment_roll_number)
		   WHERE enrollment_status = 'active' AND enrollment_deleted_at IS NULL`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}
