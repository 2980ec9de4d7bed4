package platform

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/diagnostic/pkg/permission"
)

// permissionBridge answers status queries from a canned map and, when
// respond is set, answers requests by emitting a result event.
type permissionBridge struct {
	mu       sync.Mutex
	statuses map[string]any
	err      error
	respond  bool
	wrongID  bool
	calls    []bridgeCall
}

type bridgeCall struct {
	channel string
	method  string
	args    map[string]any
}

func (b *permissionBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	var decoded map[string]any
	_ = json.Unmarshal(args, &decoded)

	b.mu.Lock()
	b.calls = append(b.calls, bridgeCall{channel: channel, method: method, args: decoded})
	b.mu.Unlock()

	if b.err != nil {
		return nil, b.err
	}

	switch method {
	case "getPermissionsAuthorizationStatus":
		return DefaultCodec.Encode(b.statuses)
	case "requestRuntimePermissions":
		if b.respond {
			requestID, _ := decoded["requestId"].(string)
			if b.wrongID {
				requestID = "someone-else"
			}
			event, _ := DefaultCodec.Encode(map[string]any{
				"requestId": requestID,
				"statuses":  b.statuses,
			})
			go HandleEvent(PermissionResultsChannel, event)
		}
		return DefaultCodec.Encode(nil)
	}
	return nil, ErrMethodNotFound
}
func (b *permissionBridge) StartEventStream(string) error { return nil }
func (b *permissionBridge) StopEventStream(string) error  { return nil }

func (b *permissionBridge) lastCall() bridgeCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[len(b.calls)-1]
}

func TestPermissionStatuses(t *testing.T) {
	bridge := &permissionBridge{statuses: map[string]any{
		"CAMERA":            "GRANTED",
		"READ_MEDIA_IMAGES": "DENIED_ALWAYS",
		"READ_MEDIA_VIDEO":  "weird",
	}}
	SetNativeBridge(bridge)
	t.Cleanup(ResetForTest)

	perms := NewNativePermissions()
	ids := permission.Resolve(true, permission.BandTieredMedia)
	got, err := perms.PermissionStatuses(context.Background(), ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[permission.Camera] != permission.Granted {
		t.Errorf("CAMERA = %q, want GRANTED", got[permission.Camera])
	}
	if got[permission.ReadMediaImages] != permission.DeniedAlways {
		t.Errorf("READ_MEDIA_IMAGES = %q, want DENIED_ALWAYS", got[permission.ReadMediaImages])
	}
	if got[permission.ReadMediaVideo] != "weird" {
		t.Errorf("unrecognized status should be kept verbatim, got %q", got[permission.ReadMediaVideo])
	}

	call := bridge.lastCall()
	if call.channel != PermissionsChannel {
		t.Errorf("channel = %q, want %q", call.channel, PermissionsChannel)
	}
	sent, _ := call.args["permissions"].([]any)
	if len(sent) != len(ids) || sent[0] != "CAMERA" {
		t.Errorf("permissions sent = %v, want %v", sent, ids)
	}
}

func TestPermissionStatusesErrors(t *testing.T) {
	t.Run("no bridge", func(t *testing.T) {
		ResetForTest()
		_, err := NewNativePermissions().PermissionStatuses(context.Background(), []permission.ID{permission.Camera})
		if !errors.Is(err, ErrPlatformUnavailable) {
			t.Errorf("expected ErrPlatformUnavailable, got %v", err)
		}
	})

	t.Run("bridge error", func(t *testing.T) {
		SetNativeBridge(&permissionBridge{err: errors.New("boom")})
		t.Cleanup(ResetForTest)
		_, err := NewNativePermissions().PermissionStatuses(context.Background(), []permission.ID{permission.Camera})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("malformed response", func(t *testing.T) {
		SetNativeBridge(&permissionBridge{statuses: nil})
		t.Cleanup(ResetForTest)
		_, err := NewNativePermissions().PermissionStatuses(context.Background(), []permission.ID{permission.Camera})
		if err == nil {
			t.Fatal("expected parse error for null response")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		SetupTestBridge(t.Cleanup)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewNativePermissions().PermissionStatuses(ctx, []permission.ID{permission.Camera})
		if !errors.Is(err, ErrCanceled) {
			t.Errorf("expected ErrCanceled, got %v", err)
		}
	})
}

func TestRequestPermissions(t *testing.T) {
	bridge := &permissionBridge{
		respond:  true,
		statuses: map[string]any{"CAMERA": "GRANTED", "READ_EXTERNAL_STORAGE": "DENIED"},
	}
	SetNativeBridge(bridge)
	t.Cleanup(ResetForTest)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := NewNativePermissions().RequestPermissions(ctx, permission.Resolve(true, permission.BandLegacy))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[permission.Camera] != permission.Granted {
		t.Errorf("CAMERA = %q, want GRANTED", got[permission.Camera])
	}

	call := bridge.lastCall()
	if call.method != "requestRuntimePermissions" {
		t.Errorf("method = %q, want requestRuntimePermissions", call.method)
	}
	if id, _ := call.args["requestId"].(string); id == "" {
		t.Error("expected a request id to be sent")
	}
}

func TestRequestPermissionsIgnoresOtherRequests(t *testing.T) {
	SetNativeBridge(&permissionBridge{
		respond:  true,
		wrongID:  true,
		statuses: map[string]any{"CAMERA": "GRANTED"},
	})
	t.Cleanup(ResetForTest)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewNativePermissions().RequestPermissions(ctx, []permission.ID{permission.Camera})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestRequestPermissionsCanceled(t *testing.T) {
	SetupTestBridge(t.Cleanup)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := NewNativePermissions().RequestPermissions(ctx, []permission.ID{permission.Camera})
	if !errors.Is(err, ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", err)
	}
}

func TestParsePermissionResult(t *testing.T) {
	tests := []struct {
		name   string
		data   any
		wantOK bool
	}{
		{"valid", map[string]any{"requestId": "r1", "statuses": map[string]any{"CAMERA": "DENIED"}}, true},
		{"missing id", map[string]any{"statuses": map[string]any{}}, false},
		{"missing statuses", map[string]any{"requestId": "r1"}, false},
		{"not a map", "nope", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := parsePermissionResult(tt.data)
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}
