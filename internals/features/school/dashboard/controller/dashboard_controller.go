package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	attendanceService "schoolku_backend/internals/features/school/attendance/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// DashboardController serves one GET endpoint whose shape depends on
// the caller's roles. Management beats teaching beats guardian beats
// student when a user carries several.
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

func (h *DashboardController) Show(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	switch {
	case helperAuth.HasAnyRole(c, constants.ManagementRoles...):
		return h.management(c)
	case helperAuth.HasAnyRole(c, constants.TeachingRoles...):
		return h.teaching(c, userID)
	case helperAuth.HasAnyRole(c, constants.RoleParent):
		return h.guardian(c, userID)
	case helperAuth.HasAnyRole(c, constants.RoleStudent):
		return h.student(c, userID)
	}
	return helper.JsonError(c, fiber.StatusForbidden, "No dashboard for your role")
}

/* ===== MANAGEMENT ===== */

func (h *DashboardController) management(c *fiber.Ctx) error {
	var (
		activeStudents int64
		teachers       int64
		sections       int64
		classes        int64
	)
	if err := h.DB.Table("enrollments").
		Where("enrollment_status = ? AND enrollment_deleted_at IS NULL", "active").
		Count(&activeStudents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}
	if err := h.DB.Table("teacher_profiles").
		Where("teacher_profile_deleted_at IS NULL").
		Count(&teachers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}
	if err := h.DB.Table("sections").Where("section_deleted_at IS NULL").Count(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}
	if err := h.DB.Table("classes").Where("class_deleted_at IS NULL").Count(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var todayTotal, todayPresent int64
	if err := h.DB.Table("student_attendance").
		Where("student_attendance_date = ?", today).
		Count(&todayTotal).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}
	if err := h.DB.Table("student_attendance").
		Where("student_attendance_date = ? AND student_attendance_status IN ?", today, []string{"present", "late"}).
		Count(&todayPresent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"role":                "management",
		"active_students":     activeStudents,
		"teachers":            teachers,
		"classes":             classes,
		"sections":            sections,
		"today_marked":        todayTotal,
		"today_present":       todayPresent,
		"today_attendance_pc": attendanceService.Percent(int(todayPresent), int(todayTotal)),
	})
}

/* ===== TEACHING ===== */

type sectionBrief struct {
	SectionID   uuid.UUID `json:"section_id"`
	SectionName string    `json:"section_name"`
	ClassName   string    `json:"class_name"`
}

func (h *DashboardController) teaching(c *fiber.Ctx, teacherID uuid.UUID) error {
	var homerooms []sectionBrief
	if err := h.DB.Table("sections").
		Select("sections.section_id, sections.section_name, classes.class_name").
		Joins("JOIN classes ON classes.class_id = sections.section_class_id").
		Where("sections.section_homeroom_teacher_id = ? AND sections.section_deleted_at IS NULL", teacherID).
		Scan(&homerooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	var pendingGrading int64
	if err := h.DB.Table("assignment_submissions").
		Joins("JOIN assignments ON assignments.assignment_id = assignment_submissions.submission_assignment_id").
		Where("assignments.assignment_teacher_id = ? AND assignments.assignment_deleted_at IS NULL", teacherID).
		Where("assignment_submissions.submission_points IS NULL").
		Count(&pendingGrading).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	var periodsToday int64
	weekday := int(time.Now().Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	if err := h.DB.Table("timetable_entries").
		Where("timetable_entry_day = ? AND timetable_entry_teacher_id = ?", weekday, teacherID).
		Count(&periodsToday).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"role":            "teaching",
		"homerooms":       homerooms,
		"pending_grading": pendingGrading,
		"periods_today":   periodsToday,
	})
}

/* ===== GUARDIAN ===== */

type childBrief struct {
	StudentID    uuid.UUID `json:"student_id"`
	StudentName  string    `json:"student_name"`
	AttendancePc float64   `json:"attendance_pc"`
	RecentGrades int64     `json:"recent_published_grades"`
}

func (h *DashboardController) guardian(c *fiber.Ctx, parentID uuid.UUID) error {
	type childRow struct {
		StudentID   uuid.UUID
		StudentName string
	}
	var children []childRow
	if err := h.DB.Table("student_profiles").
		Select("student_profiles.student_profile_user_id AS student_id, users.user_name AS student_name").
		Joins("JOIN users ON users.user_id = student_profiles.student_profile_user_id").
		Where("student_profiles.student_profile_guardian_user_id = ? AND student_profiles.student_profile_deleted_at IS NULL", parentID).
		Scan(&children).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	from := monthStart(time.Now().UTC())
	out := make([]childBrief, 0, len(children))
	for _, ch := range children {
		pc, err := h.attendancePercentSince(ch.StudentID, from)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
		}
		var grades int64
		if err := h.DB.Table("grades").
			Where("grade_student_id = ? AND grade_is_published = ?", ch.StudentID, true).
			Count(&grades).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
		}
		out = append(out, childBrief{
			StudentID:    ch.StudentID,
			StudentName:  ch.StudentName,
			AttendancePc: pc,
			RecentGrades: grades,
		})
	}

	return helper.JsonOK(c, "", fiber.Map{
		"role":     "guardian",
		"children": out,
	})
}

/* ===== STUDENT ===== */

func (h *DashboardController) student(c *fiber.Ctx, studentID uuid.UUID) error {
	from := monthStart(time.Now().UTC())
	pc, err := h.attendancePercentSince(studentID, from)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	var upcomingAssignments int64
	if err := h.DB.Table("assignments").
		Where("assignment_due_date >= ? AND assignment_deleted_at IS NULL", time.Now()).
		Count(&upcomingAssignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	var badges int64
	if err := h.DB.Table("reading_badges").
		Where("reading_badge_student_id = ?", studentID).
		Count(&badges).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"role":                 "student",
		"attendance_pc":        pc,
		"upcoming_assignments": upcomingAssignments,
		"reading_badges":       badges,
	})
}

/* ===== SHARED ===== */

func (h *DashboardController) attendancePercentSince(studentID uuid.UUID, from time.Time) (float64, error) {
	var total, present int64
	if err := h.DB.Table("student_attendance").
		Where("student_attendance_student_id = ? AND student_attendance_date >= ?", studentID, from).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if err := h.DB.Table("student_attendance").
		Where("student_attendance_student_id = ? AND student_attendance_date >= ?", studentID, from).
		Where("student_attendance_status IN ?", []string{"present", "late"}).
		Count(&present).Error; err != nil {
		return 0, err
	}
	return attendanceService.Percent(int(present), int(total)), nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
