package permission

// StoragePermissions returns the storage permission identifiers relevant to
// band. The returned slice is a fresh copy.
func StoragePermissions(band Band) []ID {
	switch band {
	case BandPartialMedia:
		return []ID{ReadMediaImages, ReadMediaVideo, ReadMediaVisualUserSelected}
	case BandTieredMedia:
		return []ID{ReadMediaImages, ReadMediaVideo}
	default:
		return []ID{ReadExternalStorage, WriteExternalStorage}
	}
}

// Resolve returns the permissions that must be queried or requested for the
// camera feature. Camera is always first; when includeStorage is set the
// band's storage permissions follow.
func Resolve(includeStorage bool, band Band) []ID {
	ids := []ID{Camera}
	if includeStorage {
		ids = append(ids, StoragePermissions(band)...)
	}
	return ids
}

// StorageStatus computes the storage sub-status for band. Full media access
// short-circuits to Granted without consulting the remaining permissions, and
// partial media access maps to Limited. Otherwise the band's storage
// permissions are combined with Combine.
func StorageStatus(m StatusMap, band Band) Status {
	switch band {
	case BandPartialMedia:
		if m.IsGranted(ReadMediaImages) || m.IsGranted(ReadMediaVideo) {
			return Granted
		}
		if m.IsGranted(ReadMediaVisualUserSelected) {
			return Limited
		}
	case BandTieredMedia:
		if m.IsGranted(ReadMediaImages) || m.IsGranted(ReadMediaVideo) {
			return Granted
		}
	default:
		if m.IsGranted(ReadExternalStorage) {
			return Granted
		}
	}
	return Combine(m.Statuses(StoragePermissions(band))...)
}

// CombinedCameraStorageStatus returns the single status reported to callers.
// Without storage it is the camera permission's own status. With storage the
// camera status and the storage sub-status are reduced with Combine; the
// storage short-circuit does not apply at this level.
func CombinedCameraStorageStatus(m StatusMap, includeStorage bool, band Band) Status {
	cameraStatus := m.Get(Camera)
	if !includeStorage {
		return cameraStatus
	}
	return Combine(cameraStatus, StorageStatus(m, band))
}
