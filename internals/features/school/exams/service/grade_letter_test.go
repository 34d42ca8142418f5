package service

import "testing"

func TestGradeLetterLadder(t *testing.T) {
	tests := []struct {
		gpa  float64
		want string
	}{
		{4.0, "A+"},
		{3.7, "A+"},
		{3.69, "A"},
		{3.3, "A"},
		{3.29, "B+"},
		{3.0, "B+"},
		{2.99, "B"},
		{2.7, "B"},
		{2.69, "C+"},
		{2.3, "C+"},
		{2.29, "C"},
		{2.0, "C"},
		{1.99, "D"},
		{1.0, "D"},
		{0.99, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		if got := GradeLetter(tt.gpa); got != tt.want {
			t.Errorf("GradeLetter(%v) = %q, want %q", tt.gpa, got, tt.want)
		}
	}
}
