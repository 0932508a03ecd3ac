package domain

// RobotLocation is a robot position report. One record per robot; a new
// report for the same id replaces the previous one.
type RobotLocation struct {
	ID        string  `json:"@id"`
	Type      string  `json:"@type"`
	Episode   string  `json:"episode"`
	Team      string  `json:"team"`
	Timestamp string  `json:"timestamp"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
}

// RobotStatus is a free-text status message with the position it was
// reported from. Statuses accumulate; they are never replaced.
type RobotStatus struct {
	ID        string  `json:"@id"`
	Type      string  `json:"@type"`
	Message   string  `json:"message"`
	Episode   string  `json:"episode"`
	Team      string  `json:"team"`
	Timestamp string  `json:"timestamp"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
}
