package model

// Status is the three-way classification of a warning candidate by its
// remaining stability days.
type Status string

const (
	StatusOK      Status = "ok"
	StatusNear    Status = "near"
	StatusOverdue Status = "overdue"
)

// Display returns a human-readable status name.
func (s Status) Display() string {
	switch s {
	case StatusOverdue:
		return "Overdue"
	case StatusNear:
		return "Near expiry"
	case StatusOK:
		return "OK"
	default:
		return string(s)
	}
}

// Icon returns the emoji marker used in tables and spreadsheets.
func (s Status) Icon() string {
	switch s {
	case StatusOverdue:
		return "❌"
	case StatusNear:
		return "⚠️"
	case StatusOK:
		return "✅"
	default:
		return ""
	}
}
