package platform

import (
	"context"
	"sync"

	"github.com/go-drift/diagnostic/pkg/errors"
)

// DeviceChannel is the method channel for device information.
const DeviceChannel = "diagnostic/device"

var (
	deviceChannelOnce sync.Once
	deviceChannel     *MethodChannel
)

// CameraInfo describes the camera hardware reported by the host.
type CameraInfo struct {
	NumberOfCameras int
	// Features lists the system feature flags the host reports as present,
	// e.g. "android.hardware.camera.any".
	Features []string
}

// HasFeature reports whether the host listed feature.
func (i CameraInfo) HasFeature(feature string) bool {
	for _, f := range i.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// NativeDevice reads device properties from the host.
type NativeDevice struct {
	channel *MethodChannel
}

// NewNativeDevice returns a client for the host device channel.
func NewNativeDevice() *NativeDevice {
	deviceChannelOnce.Do(func() {
		deviceChannel = NewMethodChannel(DeviceChannel)
	})
	return &NativeDevice{channel: deviceChannel}
}

// SDKInt returns the host OS API level.
func (d *NativeDevice) SDKInt(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, contextError(err)
	}
	result, err := d.channel.Invoke("getSdkInt", nil)
	if err != nil {
		return 0, err
	}
	if m := parseMap(result); m != nil {
		if n, ok := toInt(m["sdkInt"]); ok {
			return n, nil
		}
	}
	return 0, &errors.ParseError{Channel: DeviceChannel, DataType: "SdkInt", Got: result}
}

// CameraInfo returns the camera count and feature flags from the host.
func (d *NativeDevice) CameraInfo(ctx context.Context) (CameraInfo, error) {
	if err := ctx.Err(); err != nil {
		return CameraInfo{}, contextError(err)
	}
	result, err := d.channel.Invoke("getCameraInfo", nil)
	if err != nil {
		return CameraInfo{}, err
	}
	m := parseMap(result)
	if m == nil {
		return CameraInfo{}, &errors.ParseError{Channel: DeviceChannel, DataType: "CameraInfo", Got: result}
	}
	count, _ := toInt(m["numberOfCameras"])
	return CameraInfo{
		NumberOfCameras: count,
		Features:        parseStringSlice(m["features"]),
	}, nil
}
