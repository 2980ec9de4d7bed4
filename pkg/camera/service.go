// Package camera implements the camera diagnostic: whether a camera is
// present, and whether the camera (and optionally storage) is authorized.
package camera

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-drift/diagnostic/pkg/errors"
	"github.com/go-drift/diagnostic/pkg/permission"
	"github.com/go-drift/diagnostic/pkg/platform"
)

// System feature flags consulted by IsCameraPresent.
const (
	FeatureCamera    = "android.hardware.camera"
	FeatureCameraAny = "android.hardware.camera.any"
)

// sdkCameraAny is the first SDK level where FeatureCameraAny is authoritative.
const sdkCameraAny = 32

// StatusQuerier reports the host's current status for a set of permissions.
type StatusQuerier interface {
	PermissionStatuses(ctx context.Context, ids []permission.ID) (permission.StatusMap, error)
}

// PermissionRequester asks the host to request permissions from the user and
// returns the resulting statuses.
type PermissionRequester interface {
	RequestPermissions(ctx context.Context, ids []permission.ID) (permission.StatusMap, error)
}

// Device reports host properties.
type Device interface {
	SDKInt(ctx context.Context) (int, error)
	CameraInfo(ctx context.Context) (platform.CameraInfo, error)
}

// Config holds the collaborators of a Service.
type Config struct {
	Statuses  StatusQuerier
	Requester PermissionRequester
	Device    Device
	Logger    zerolog.Logger
}

// Service answers camera presence and authorization queries. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	statuses  StatusQuerier
	requester PermissionRequester
	device    Device
	logger    zerolog.Logger
}

// NewService returns a Service using the collaborators in cfg.
func NewService(cfg Config) *Service {
	return &Service{
		statuses:  cfg.Statuses,
		requester: cfg.Requester,
		device:    cfg.Device,
		logger:    cfg.Logger,
	}
}

// NewNativeService returns a Service backed by the host platform bridge.
func NewNativeService(logger zerolog.Logger) *Service {
	perms := platform.NewNativePermissions()
	return NewService(Config{
		Statuses:  perms,
		Requester: perms,
		Device:    platform.NewNativeDevice(),
		Logger:    logger,
	})
}

// IsCameraPresent reports whether the device has a usable camera: the
// relevant feature flag must be present and at least one camera reported.
func (s *Service) IsCameraPresent(ctx context.Context) (bool, error) {
	const op = "camera.isCameraPresent"
	sdk, err := s.device.SDKInt(ctx)
	if err != nil {
		return false, errors.Unexpected(op, err)
	}
	info, err := s.device.CameraInfo(ctx)
	if err != nil {
		return false, errors.Unexpected(op, err)
	}

	feature := FeatureCamera
	if sdk >= sdkCameraAny {
		feature = FeatureCameraAny
	}
	present := info.HasFeature(feature) && info.NumberOfCameras > 0
	s.logger.Debug().
		Int("sdk", sdk).
		Int("cameras", info.NumberOfCameras).
		Str("feature", feature).
		Bool("present", present).
		Msg("camera presence")
	return present, nil
}

// AuthorizationStatus returns the combined authorization status for the
// camera and, if includeStorage is set, storage access.
func (s *Service) AuthorizationStatus(ctx context.Context, includeStorage bool) (permission.Status, error) {
	const op = "camera.getCameraAuthorizationStatus"
	band, err := s.band(ctx, op)
	if err != nil {
		return "", err
	}
	statuses, err := s.query(ctx, op, includeStorage, band)
	if err != nil {
		return "", err
	}

	status := permission.CombinedCameraStorageStatus(statuses, includeStorage, band)
	event := s.logger.Debug().
		Stringer("band", band).
		Bool("storage", includeStorage).
		Str("camera", statuses.Get(permission.Camera).String())
	if includeStorage {
		event = event.Str("storageStatus", permission.StorageStatus(statuses, band).String())
	}
	event.Str("status", status.String()).Msg("camera authorization status")
	return status, nil
}

// AuthorizationStatuses returns the raw per-permission statuses without
// combining them.
func (s *Service) AuthorizationStatuses(ctx context.Context, includeStorage bool) (permission.StatusMap, error) {
	const op = "camera.getCameraAuthorizationStatuses"
	band, err := s.band(ctx, op)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, op, includeStorage, band)
}

// RequestAuthorization forwards the camera (and optionally storage)
// permissions to the host for a runtime request and returns the statuses the
// host reports afterwards.
func (s *Service) RequestAuthorization(ctx context.Context, includeStorage bool) (permission.StatusMap, error) {
	const op = "camera.requestCameraAuthorization"
	band, err := s.band(ctx, op)
	if err != nil {
		return nil, err
	}
	ids := permission.Resolve(includeStorage, band)
	statuses, err := s.requester.RequestPermissions(ctx, ids)
	if err != nil {
		return nil, errors.Unexpected(op, err)
	}
	return statuses, nil
}

// band reads the OS version once for the current call.
func (s *Service) band(ctx context.Context, op string) (permission.Band, error) {
	sdk, err := s.device.SDKInt(ctx)
	if err != nil {
		return permission.BandLegacy, errors.Unexpected(op, err)
	}
	return permission.ClassifySDK(sdk), nil
}

func (s *Service) query(ctx context.Context, op string, includeStorage bool, band permission.Band) (permission.StatusMap, error) {
	ids := permission.Resolve(includeStorage, band)
	statuses, err := s.statuses.PermissionStatuses(ctx, ids)
	if err != nil {
		return nil, errors.Unexpected(op, err)
	}
	if statuses == nil {
		statuses = permission.StatusMap{}
	}
	return statuses, nil
}
