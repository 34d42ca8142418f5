package service

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "schoolku_backend/internals/features/school/attendance/model"
	enrollModel "schoolku_backend/internals/features/school/enrollments/model"
)

// Percent computes an attendance percentage rounded to 1 decimal.
// A zero denominator yields 0, never a division error.
func Percent(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*1000) / 10
}

// ReportRow is one student's attendance rollup for a date range.
type ReportRow struct {
	StudentID   uuid.UUID `json:"student_id"`
	RollNumber  int       `json:"roll_number"`
	StudentName string    `json:"student_name"`
	TotalDays   int       `json:"total_days"`
	Present     int       `json:"present"`
	Absent      int       `json:"absent"`
	Late        int       `json:"late"`
	Excused     int       `json:"excused"`
	Percent     float64   `json:"percent"`
}

// SectionReport rolls up attendance for every active student of a
// section between from and to (inclusive), ordered by roll number.
func SectionReport(db *gorm.DB, sectionID uuid.UUID, from, to time.Time) ([]ReportRow, error) {
	var enrollments []enrollModel.EnrollmentModel
	if err := db.
		Where("enrollment_section_id = ? AND enrollment_status = ?", sectionID, enrollModel.EnrollmentStatusActive).
		Order("enrollment_roll_number ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return []ReportRow{}, nil
	}

	studentIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		studentIDs = append(studentIDs, e.EnrollmentStudentID)
	}

	names := map[uuid.UUID]string{}
	type nameRow struct {
		UserID   uuid.UUID
		UserName string
	}
	var nr []nameRow
	if err := db.Table("users").
		Select("user_id, user_name").
		Where("user_id IN ?", studentIDs).
		Scan(&nr).Error; err != nil {
		return nil, err
	}
	for _, r := range nr {
		names[r.UserID] = r.UserName
	}

	type aggRow struct {
		StudentID uuid.UUID
		Total     int
		Present   int
		Absent    int
		Late      int
		Excused   int
	}
	var aggs []aggRow
	if err := db.Model(&attendanceModel.StudentAttendanceModel{}).
		Select(`student_attendance_student_id AS student_id,
			COUNT(*) AS total,
			SUM(CASE WHEN student_attendance_status = 'present' THEN 1 ELSE 0 END) AS present,
			SUM(CASE WHEN student_attendance_status = 'absent' THEN 1 ELSE 0 END) AS absent,
			SUM(CASE WHEN student_attendance_status = 'late' THEN 1 ELSE 0 END) AS late,
			SUM(CASE WHEN student_attendance_status = 'excused' THEN 1 ELSE 0 END) AS excused`).
		Where("student_attendance_student_id IN ? AND student_attendance_date BETWEEN ? AND ?",
			studentIDs, from, to).
		Group("student_attendance_student_id").
		Scan(&aggs).Error; err != nil {
		return nil, err
	}
	byStudent := map[uuid.UUID]aggRow{}
	for _, a := range aggs {
		byStudent[a.StudentID] = a
	}

	out := make([]ReportRow, 0, len(enrollments))
	for _, e := range enrollments {
		a := byStudent[e.EnrollmentStudentID]
		out = append(out, ReportRow{
			StudentID:   e.EnrollmentStudentID,
			RollNumber:  e.EnrollmentRollNumber,
			StudentName: names[e.EnrollmentStudentID],
			TotalDays:   a.Total,
			Present:     a.Present,
			Absent:      a.Absent,
			Late:        a.Late,
			Excused:     a.Excused,
			Percent:     Percent(a.Present, a.Total),
		})
	}
	return out, nil
}
