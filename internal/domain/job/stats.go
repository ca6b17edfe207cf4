package job

import "time"

type LevelStat struct {
	Level          string    `json:"level"`
	TotalJobs      int64     `json:"totalJobs"`
	LastPostedDate time.Time `json:"lastPostedDate"`
}

// Overview summarises the primary store.
type Overview struct {
	TotalJobs  int64       `json:"totalJobs"`
	ActiveJobs int64       `json:"activeJobs"`
	JobsToday  int64       `json:"jobsToday"`
	Levels     []LevelStat `json:"levels"`
	ServerTime time.Time   `json:"serverTime"`
}
