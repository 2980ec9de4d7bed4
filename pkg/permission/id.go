package permission

// ID identifies one OS runtime permission.
type ID string

// Runtime permission identifiers. The storage identifiers that apply depend on
// the OS version band.
const (
	Camera ID = "CAMERA"

	// Legacy storage, up to SDK 32.
	ReadExternalStorage  ID = "READ_EXTERNAL_STORAGE"
	WriteExternalStorage ID = "WRITE_EXTERNAL_STORAGE"

	// Granular media access, SDK 33 and above.
	ReadMediaImages ID = "READ_MEDIA_IMAGES"
	ReadMediaVideo  ID = "READ_MEDIA_VIDEO"

	// Partial (user-selected) visual media access, SDK 34 and above.
	ReadMediaVisualUserSelected ID = "READ_MEDIA_VISUAL_USER_SELECTED"
)

// String returns the wire name of the permission.
func (id ID) String() string {
	return string(id)
}

// StatusMap maps permission identifiers to their individual statuses as
// reported by the host. Keys need not cover every identifier.
type StatusMap map[ID]Status

// Get returns the status recorded for id, or Denied if the map has no entry.
func (m StatusMap) Get(id ID) Status {
	if s, ok := m[id]; ok {
		return s
	}
	return Denied
}

// Statuses returns the statuses for ids in order, with absent entries as Denied.
func (m StatusMap) Statuses(ids []ID) []Status {
	out := make([]Status, len(ids))
	for i, id := range ids {
		out[i] = m.Get(id)
	}
	return out
}

// IsGranted reports whether id is recorded as Granted.
func (m StatusMap) IsGranted(id ID) bool {
	return m.Get(id) == Granted
}
