package service

// GradeLetter maps a grade point to its letter. Boundary values belong
// to the higher letter (3.7 is already an A+).
func GradeLetter(gpa float64) string {
	switch {
	case gpa >= 3.7:
		return "A+"
	case gpa >= 3.3:
		return "A"
	case gpa >= 3.0:
		return "B+"
	case gpa >= 2.7:
		return "B"
	case gpa >= 2.3:
		return "C+"
	case gpa >= 2.0:
		return "C"
	case gpa >= 1.0:
		return "D"
	default:
		return "F"
	}
}
