package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attendanceDTO "schoolku_backend/internals/features/school/attendance/dto"
	attendanceModel "schoolku_backend/internals/features/school/attendance/model"
	attendanceService "schoolku_backend/internals/features/school/attendance/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewAttendanceController(db *gorm.DB, v interface{ Struct(any) error }) *AttendanceController {
	return &AttendanceController{DB: db, Validator: v}
}

/* ===== MARKING ===== */

// BulkMark records one day's attendance for many students at once.
// A second mark for the same (student, day) overwrites the first.
func (h *AttendanceController) BulkMark(c *fiber.Ctx) error {
	var p attendanceDTO.BulkMarkRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	markedBy, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	day := truncateToDay(p.Date)

	rows := make([]attendanceModel.StudentAttendanceModel, 0, len(p.Entries))
	for _, e := range p.Entries {
		rows = append(rows, attendanceModel.StudentAttendanceModel{
			StudentAttendanceID:        uuid.New(),
			StudentAttendanceStudentID: e.StudentID,
			StudentAttendanceDate:      day,
			StudentAttendanceStatus:    e.Status,
			StudentAttendanceNote:      e.Note,
			StudentAttendanceMarkedBy:  &markedBy,
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_attendance_student_id"},
				{Name: "student_attendance_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"student_attendance_status",
				"student_attendance_note",
				"student_attendance_marked_by",
				"student_attendance_updated_at",
			}),
		}).Create(&rows).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save attendance")
	}
	return helper.JsonOK(c, "Attendance saved", fiber.Map{
		"date":  day.Format("2006-01-02"),
		"count": len(rows),
	})
}

/* ===== READS ===== */

// ListForStudent returns the raw day rows for one student in a range.
// Staff may query anyone; students only themselves; parents only
// their children.
func (h *AttendanceController) ListForStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student_id")
	}
	if done, err := helperAuth.RequireCanViewStudent(c, h.DB, studentID); done {
		return err
	}

	from, to, err := resolveRange(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var rows []attendanceModel.StudentAttendanceModel
	if err := h.DB.
		Where("student_attendance_student_id = ? AND student_attendance_date BETWEEN ? AND ?",
			studentID, from, to).
		Order("student_attendance_date ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list attendance")
	}

	present := 0
	for _, r := range rows {
		if r.StudentAttendanceStatus == attendanceModel.AttendanceStatusPresent {
			present++
		}
	}
	return helper.JsonOK(c, "", fiber.Map{
		"rows":    rows,
		"percent": attendanceService.Percent(present, len(rows)),
	})
}

// SectionReport returns the per-student rollup for a section, or a
// CSV download when ?export=csv.
func (h *AttendanceController) SectionReport(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(strings.TrimSpace(c.Query("section_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section_id")
	}
	from, to, err := resolveRange(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rows, err := attendanceService.SectionReport(h.DB, sectionID, from, to)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build report")
	}

	if strings.EqualFold(c.Query("export"), "csv") {
		body, err := attendanceService.ReportCSV(rows)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to render CSV")
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="attendance-report.csv"`)
		return c.Send(body)
	}
	return helper.JsonOK(c, "", rows)
}

/* ===== HELPERS ===== */

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func resolveRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	const layout = "2006-01-02"
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := truncateToDay(now)

	if raw := strings.TrimSpace(c.Query("start_date")); raw != "" {
		t, err := time.Parse(layout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid start_date")
		}
		from = t
	}
	if raw := strings.TrimSpace(c.Query("end_date")); raw != "" {
		t, err := time.Parse(layout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid end_date")
		}
		to = t
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "end_date must be >= start_date")
	}
	return from, to, nil
}
