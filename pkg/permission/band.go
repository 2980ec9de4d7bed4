package permission

import (
	"fmt"
	"strings"
)

// Band classifies the host OS version by how it splits storage access into
// runtime permissions.
type Band int

const (
	// BandLegacy covers SDK 32 and below: generic external storage permissions.
	BandLegacy Band = iota
	// BandTieredMedia covers SDK 33: separate image and video read permissions.
	BandTieredMedia
	// BandPartialMedia covers SDK 34 and above: image and video read plus
	// partial, user-selected visual media access.
	BandPartialMedia
)

// SDK levels at which the storage permission model changes.
const (
	SDKTieredMedia  = 33
	SDKPartialMedia = 34
)

// ClassifySDK maps an SDK level to its Band.
func ClassifySDK(sdkInt int) Band {
	switch {
	case sdkInt >= SDKPartialMedia:
		return BandPartialMedia
	case sdkInt >= SDKTieredMedia:
		return BandTieredMedia
	default:
		return BandLegacy
	}
}

func (b Band) String() string {
	switch b {
	case BandLegacy:
		return "legacy"
	case BandTieredMedia:
		return "tiered-media"
	case BandPartialMedia:
		return "partial-media"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// ParseBand converts a band name as printed by String back to a Band.
func ParseBand(name string) (Band, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legacy":
		return BandLegacy, nil
	case "tiered-media", "tiered":
		return BandTieredMedia, nil
	case "partial-media", "partial":
		return BandPartialMedia, nil
	default:
		return BandLegacy, fmt.Errorf("unknown OS version band %q", name)
	}
}
