package constants

const (
	User  = "user"
	Admin = "admin"
)

// Camera statuses reported by health-check agents.
const (
	StatusOpen         = "OPEN"
	StatusUnauthorized = "UNAUTHORIZED"
	StatusNotFound     = "NOT_FOUND"
	StatusUnconnected  = "UNCONNECTED"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusUnauthorized, StatusNotFound, StatusUnconnected:
		return true
	}

	return false
}
