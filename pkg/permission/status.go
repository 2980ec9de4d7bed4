// Package permission models runtime permission state for the camera
// diagnostic and reduces per-permission grants into a single status.
package permission

// Status is the normalized authorization state of a permission or a group of
// permissions. Values cross the native boundary as their exact names.
type Status string

// Status constants, listed from lowest to highest combining precedence.
const (
	// NotRequested indicates the user has not been asked yet.
	NotRequested Status = "NOT_REQUESTED"

	// Granted indicates full access.
	Granted Status = "GRANTED"

	// Denied indicates the user denied the permission; the app may ask again.
	Denied Status = "DENIED"

	// Limited indicates partial access, such as user-selected media only.
	Limited Status = "LIMITED"

	// DeniedAlways indicates the user denied with "don't ask again". The app
	// cannot request again; direct the user to Settings.
	DeniedAlways Status = "DENIED_ALWAYS"
)

// precedence lists statuses from highest to lowest priority when combining.
var precedence = [...]Status{DeniedAlways, Limited, Denied, Granted}

// String returns the wire name of the status.
func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case NotRequested, Granted, Denied, Limited, DeniedAlways:
		return true
	default:
		return false
	}
}

// ParseStatus converts a wire name to a Status. Matching is case-sensitive.
// Unknown names are returned unchanged with ok set to false.
func ParseStatus(name string) (Status, bool) {
	s := Status(name)
	return s, s.Valid()
}

// Combine reduces statuses to one value using a fixed precedence scan:
// DENIED_ALWAYS, then LIMITED, then DENIED, then GRANTED. If none of those is
// present, including when statuses is empty, the result is NOT_REQUESTED.
// Unrecognized values are ignored. The result does not depend on order.
func Combine(statuses ...Status) Status {
	for _, candidate := range precedence {
		if anyStatusIs(candidate, statuses) {
			return candidate
		}
	}
	return NotRequested
}

func anyStatusIs(status Status, statuses []Status) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
