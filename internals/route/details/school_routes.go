package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AcademicsRoutes "schoolku_backend/internals/features/school/academics/route"
	AttendanceRoutes "schoolku_backend/internals/features/school/attendance/route"
	ClassRoutes "schoolku_backend/internals/features/school/classes/route"
	DashboardRoutes "schoolku_backend/internals/features/school/dashboard/route"
	EnrollmentRoutes "schoolku_backend/internals/features/school/enrollments/route"
	ExamRoutes "schoolku_backend/internals/features/school/exams/route"
	SubjectRoutes "schoolku_backend/internals/features/school/subjects/route"
	TimetableRoutes "schoolku_backend/internals/features/school/timetable/route"
)

/* ===================== ADMIN / STAFF ===================== */

func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	AcademicsRoutes.AcademicsAdminRoutes(r, db)
	ClassRoutes.ClassAdminRoutes(r, db)
	SubjectRoutes.SubjectAdminRoutes(r, db)
	EnrollmentRoutes.EnrollmentAdminRoutes(r, db)
	AttendanceRoutes.AttendanceAdminRoutes(r, db)
	ExamRoutes.ExamAdminRoutes(r, db)
	TimetableRoutes.TimetableAdminRoutes(r, db)
}

/* ===================== USER (PRIVATE) ===================== */

func SchoolSelfRoutes(r fiber.Router, db *gorm.DB) {
	DashboardRoutes.DashboardRoutes(r, db)
	AttendanceRoutes.AttendanceSelfRoutes(r, db)
	ExamRoutes.ExamSelfRoutes(r, db)
	TimetableRoutes.TimetableSelfRoutes(r, db)
}
