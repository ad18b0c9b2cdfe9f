// internal/models/report.go
package models

// AttendanceReport is the aggregate the backend computes for a principal
// over a date range. All numbers are server-derived; the client only
// renders and filters them.
type AttendanceReport struct {
	SchoolID         string             `json:"schoolId"`
	Range            ReportRange        `json:"range"`
	Totals           ReportTotals       `json:"totals"`
	Classrooms       []ClassroomReport  `json:"classrooms"`
	TopClassrooms    []ClassroomRanking `json:"topClassrooms"`
	BottomClassrooms []ClassroomRanking `json:"bottomClassrooms"`
}

type ReportRange struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`
}

type ReportTotals struct {
	Sessions       int     `json:"sessions"`
	TotalRecords   int     `json:"totalRecords"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	Excused        int     `json:"excused"`
	AttendanceRate float64 `json:"attendanceRate"` // 0..1
}

type ClassroomReport struct {
	ClassroomID    string  `json:"classroomId"`
	GradeName      string  `json:"gradeName"`
	SectionLabel   string  `json:"sectionLabel"`
	TotalSessions  int     `json:"totalSessions"`
	TotalRecords   int     `json:"totalRecords"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	AttendanceRate float64 `json:"attendanceRate"`
}

type ClassroomRanking struct {
	ClassroomID    string  `json:"classroomId"`
	AttendanceRate float64 `json:"attendanceRate"`
	TotalRecords   int     `json:"totalRecords"`
}
