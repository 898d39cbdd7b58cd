package response

type DayResponse struct {
	Date      string `json:"date"`
	DayName   string `json:"day_name"`
	DayNumber int    `json:"day_number"`
	IsToday   bool   `json:"is_today"`
}

type TimeSlotResponse struct {
	Time      string `json:"time"`
	Timestamp int64  `json:"timestamp"`
	Disabled  bool   `json:"disabled"`
}

type ScheduleHallResponse struct {
	HallID   string             `json:"hall_id"`
	HallName string             `json:"hall_name"`
	Times    []TimeSlotResponse `json:"times"`
}

type ScheduleMovieResponse struct {
	MovieResponse
	Halls []ScheduleHallResponse `json:"halls"`
}

type ScheduleResponse struct {
	Date   string                  `json:"date"`
	Days   []DayResponse           `json:"days"`
	Movies []ScheduleMovieResponse `json:"movies"`
}
