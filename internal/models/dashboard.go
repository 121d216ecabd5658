package models

// DashboardStats are the headline numbers shown on the dashboard.
type DashboardStats struct {
	ChildrenCount   int             `json:"childrenCount"`
	ActivePrograms  int             `json:"activePrograms"`
	MonthlyIncome   string          `json:"monthlyIncome"`
	TodayAttendance AttendanceStats `json:"todayAttendance"`
}

// Dashboard is the payload returned by GET /api/dashboard.
type Dashboard struct {
	Stats            DashboardStats `json:"stats"`
	ActivePrograms   []Program      `json:"activePrograms"`
	UpcomingPrograms []Program      `json:"upcomingPrograms"`
}
