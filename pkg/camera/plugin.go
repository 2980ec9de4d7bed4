package camera

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-drift/diagnostic/pkg/errors"
	"github.com/go-drift/diagnostic/pkg/permission"
	"github.com/go-drift/diagnostic/pkg/platform"
)

// Channel is the method channel native code uses to call the diagnostic.
const Channel = "diagnostic/camera"

// Entry-point names accepted by Plugin.Execute.
const (
	ActionIsCameraPresent                = "isCameraPresent"
	ActionGetCameraAuthorizationStatus   = "getCameraAuthorizationStatus"
	ActionGetCameraAuthorizationStatuses = "getCameraAuthorizationStatuses"
	ActionRequestCameraAuthorization     = "requestCameraAuthorization"
)

// Plugin dispatches named actions from the host to a Service. Every failure is
// reported and returned as an error result; panics are recovered.
type Plugin struct {
	service *Service
	logger  zerolog.Logger
}

// NewPlugin returns a Plugin serving actions from service.
func NewPlugin(service *Service, logger zerolog.Logger) *Plugin {
	return &Plugin{service: service, logger: logger}
}

// Register binds the plugin to the Channel method channel so native calls
// arriving through platform.HandleMethodCall reach Execute.
func (p *Plugin) Register() *platform.MethodChannel {
	ch := platform.NewMethodChannel(Channel)
	ch.SetHandler(func(method string, args any) (any, error) {
		return p.Execute(context.Background(), method, args)
	})
	return ch
}

// Install wires a Plugin to the native bridge collaborators and registers it
// on Channel. Hosts call this once during plugin initialization.
func Install(logger zerolog.Logger) *Plugin {
	p := NewPlugin(NewNativeService(logger), logger)
	p.Register()
	return p
}

// Execute runs action with the decoded argument list args. The storage flag is
// args[0] for the authorization actions. Results are transport-ready: 1 or 0
// for isCameraPresent, a status name, or a map of permission name to status
// name.
func (p *Plugin) Execute(ctx context.Context, action string, args any) (result any, err error) {
	op := "camera." + action
	defer errors.Guard(op, func(pe *errors.PanicError) {
		de := errors.Unexpected(op, pe)
		de.StackTrace = pe.StackTrace
		result = nil
		err = p.fail(de, action)
	})

	p.logger.Debug().Str("action", action).Msg("executing action")

	result, err = p.dispatch(ctx, action, args)
	if err != nil {
		return nil, p.fail(err, action)
	}
	return result, nil
}

func (p *Plugin) dispatch(ctx context.Context, action string, args any) (any, error) {
	op := "camera." + action
	switch action {
	case ActionIsCameraPresent:
		present, err := p.service.IsCameraPresent(ctx)
		if err != nil {
			return nil, err
		}
		if present {
			return 1, nil
		}
		return 0, nil

	case ActionGetCameraAuthorizationStatus:
		storage, err := storageArg(op, args)
		if err != nil {
			return nil, err
		}
		status, err := p.service.AuthorizationStatus(ctx, storage)
		if err != nil {
			return nil, err
		}
		return status.String(), nil

	case ActionGetCameraAuthorizationStatuses:
		storage, err := storageArg(op, args)
		if err != nil {
			return nil, err
		}
		statuses, err := p.service.AuthorizationStatuses(ctx, storage)
		if err != nil {
			return nil, err
		}
		return encodeStatuses(statuses), nil

	case ActionRequestCameraAuthorization:
		storage, err := storageArg(op, args)
		if err != nil {
			return nil, err
		}
		statuses, err := p.service.RequestAuthorization(ctx, storage)
		if err != nil {
			return nil, err
		}
		return encodeStatuses(statuses), nil

	default:
		return nil, errors.InvalidAction("camera.Execute", action)
	}
}

// fail normalizes err to a DiagnosticError, reports it once through the
// installed error handler, and returns it.
func (p *Plugin) fail(err error, action string) error {
	var de *errors.DiagnosticError
	if !errors.As(err, &de) {
		de = errors.Unexpected("camera."+action, err)
	}
	if de.Action == "" {
		de.Action = action
	}
	errors.Report(de)
	return de
}

// storageArg reads the storage flag from args[0]. Booleans and the strings
// "true"/"false" in any letter case are accepted.
func storageArg(op string, args any) (bool, error) {
	list, ok := args.([]any)
	if !ok || len(list) == 0 {
		return false, errors.Unexpected(op, fmt.Errorf("%w: expected storage flag at index 0", platform.ErrInvalidArguments))
	}
	switch v := list[0].(type) {
	case bool:
		return v, nil
	case string:
		if strings.EqualFold(v, "true") {
			return true, nil
		}
		if strings.EqualFold(v, "false") {
			return false, nil
		}
	}
	return false, errors.Unexpected(op, fmt.Errorf("%w: storage flag %v is not a boolean", platform.ErrInvalidArguments, list[0]))
}

func encodeStatuses(statuses permission.StatusMap) map[string]string {
	out := make(map[string]string, len(statuses))
	for id, status := range statuses {
		out[id.String()] = status.String()
	}
	return out
}
