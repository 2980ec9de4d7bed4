package platform

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/go-drift/diagnostic/pkg/errors"
	"github.com/go-drift/diagnostic/pkg/permission"
)

// Channel names used by the permission bridge.
const (
	PermissionsChannel       = "diagnostic/permissions"
	PermissionResultsChannel = "diagnostic/permissions/results"
)

// DefaultRequestTimeout bounds RequestPermissions when ctx carries no deadline.
const DefaultRequestTimeout = 30 * time.Second

var (
	permissionChannelsOnce sync.Once
	permissionMethods      *MethodChannel
	permissionResults      *EventChannel
)

func permissionChannels() (*MethodChannel, *EventChannel) {
	permissionChannelsOnce.Do(func() {
		permissionMethods = NewMethodChannel(PermissionsChannel)
		permissionResults = NewEventChannel(PermissionResultsChannel)
	})
	return permissionMethods, permissionResults
}

// NativePermissions queries and requests runtime permissions from the host OS.
// It is safe for concurrent use; requests are serialized because only one
// system dialog can be shown at a time.
type NativePermissions struct {
	channel *MethodChannel
	results *EventChannel

	requestMu sync.Mutex
}

// NewNativePermissions returns a client for the host permission services.
func NewNativePermissions() *NativePermissions {
	methods, results := permissionChannels()
	return &NativePermissions{
		channel: methods,
		results: results,
	}
}

// PermissionStatuses returns the host's current status for each of ids.
// The host may omit ids it does not know; callers treat those as denied.
func (p *NativePermissions) PermissionStatuses(ctx context.Context, ids []permission.ID) (permission.StatusMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, contextError(err)
	}
	result, err := p.channel.Invoke("getPermissionsAuthorizationStatus", map[string]any{
		"permissions": idStrings(ids),
	})
	if err != nil {
		return nil, err
	}
	statuses, ok := parseStatusMap(result)
	if !ok {
		return nil, &errors.ParseError{
			Channel:  PermissionsChannel,
			DataType: "PermissionStatusMap",
			Got:      result,
		}
	}
	return statuses, nil
}

// RequestPermissions asks the host to request ids from the user and blocks
// until the host reports the resulting statuses, the context is canceled, or
// the deadline passes. Without a deadline on ctx, DefaultRequestTimeout applies.
func (p *NativePermissions) RequestPermissions(ctx context.Context, ids []permission.ID) (permission.StatusMap, error) {
	p.requestMu.Lock()
	defer p.requestMu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultRequestTimeout)
		defer cancel()
	}

	requestID := uuid.NewString()

	// Subscribe before triggering the native request so the result cannot be missed.
	resultChan := make(chan permission.StatusMap, 1)
	sub := p.results.Listen(EventHandler{
		OnEvent: func(data any) {
			id, statuses, ok := parsePermissionResult(data)
			if !ok {
				errors.Report(&errors.DiagnosticError{
					Op:      "permissions.request",
					Kind:    errors.KindParsing,
					Channel: PermissionResultsChannel,
					Err: &errors.ParseError{
						Channel:  PermissionResultsChannel,
						DataType: "PermissionResult",
						Got:      data,
					},
				})
				return
			}
			if id != requestID {
				return
			}
			select {
			case resultChan <- statuses:
			default:
			}
		},
		OnError: func(err error) {
			errors.Report(&errors.DiagnosticError{
				Op:      "permissions.request",
				Kind:    errors.KindPlatform,
				Channel: PermissionResultsChannel,
				Err:     err,
			})
		},
	})
	defer sub.Cancel()

	_, err := p.channel.Invoke("requestRuntimePermissions", map[string]any{
		"permissions": idStrings(ids),
		"requestId":   requestID,
	})
	if err != nil {
		return nil, err
	}

	select {
	case statuses := <-resultChan:
		return statuses, nil
	case <-ctx.Done():
		return nil, contextError(ctx.Err())
	}
}

func contextError(err error) error {
	if err == context.DeadlineExceeded {
		return ErrTimeout
	}
	return ErrCanceled
}

func idStrings(ids []permission.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// parseStatusMap decodes {"CAMERA": "GRANTED", ...}. Status names are kept
// verbatim so that unrecognized values reach the combiner unchanged.
func parseStatusMap(value any) (permission.StatusMap, bool) {
	m := parseMap(value)
	if m == nil {
		return nil, false
	}
	statuses := make(permission.StatusMap, len(m))
	for key, raw := range m {
		statuses[permission.ID(key)] = permission.Status(parseString(raw))
	}
	return statuses, true
}

func parsePermissionResult(data any) (string, permission.StatusMap, bool) {
	m := parseMap(data)
	if m == nil {
		return "", nil, false
	}
	requestID := parseString(m["requestId"])
	statuses, ok := parseStatusMap(m["statuses"])
	if requestID == "" || !ok {
		return "", nil, false
	}
	return requestID, statuses, true
}
