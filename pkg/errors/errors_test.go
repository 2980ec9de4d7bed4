package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDiagnosticErrorString(t *testing.T) {
	err := &DiagnosticError{
		Op:   "test.operation",
		Kind: KindPlatform,
		Err:  &ParseError{Channel: "test", DataType: "TestData", Got: "invalid"},
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
}

func TestDiagnosticErrorWithChannel(t *testing.T) {
	err := &DiagnosticError{
		Op:      "test.operation",
		Kind:    KindParsing,
		Channel: "diagnostic/test/channel",
		Err:     &ParseError{Channel: "diagnostic/test/channel", DataType: "TestData", Got: nil},
	}
	got := err.Error()
	want := "channel=diagnostic/test/channel"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInvalidAction, "invalid_action"},
		{KindUnexpected, "unexpected"},
		{KindPlatform, "platform"},
		{KindParsing, "parsing"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestInvalidAction(t *testing.T) {
	err := InvalidAction("camera.Execute", "takePicture")
	if !Is(err, ErrInvalidAction) {
		t.Errorf("expected error to wrap ErrInvalidAction, got %v", err)
	}
	if err.Action != "takePicture" {
		t.Errorf("Action = %q, want %q", err.Action, "takePicture")
	}
	if KindOf(err) != KindInvalidAction {
		t.Errorf("KindOf = %v, want %v", KindOf(err), KindInvalidAction)
	}
}

func TestUnexpectedWrapsCause(t *testing.T) {
	cause := stderrors.New("bridge exploded")
	err := Unexpected("camera.getCameraAuthorizationStatus", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected Unexpected to wrap its cause")
	}
	if !strings.Contains(err.Error(), "exception occurred: bridge exploded") {
		t.Errorf("unexpected message %q", err.Error())
	}

	var de *DiagnosticError
	if !As(err, &de) || de.Kind != KindUnexpected {
		t.Errorf("expected KindUnexpected DiagnosticError, got %#v", de)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if got := KindOf(stderrors.New("plain")); got != KindUnknown {
		t.Errorf("KindOf = %v, want %v", got, KindUnknown)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorStringWithOp(t *testing.T) {
	err := &PanicError{
		Op:        "camera.Execute",
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in camera.Execute: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func installTestHandler(t *testing.T) *[]*DiagnosticError {
	t.Helper()
	var captured []*DiagnosticError
	old := Handler()
	SetHandler(&testHandler{onError: func(err *DiagnosticError) {
		captured = append(captured, err)
	}})
	t.Cleanup(func() { SetHandler(old) })
	return &captured
}

func TestReport(t *testing.T) {
	captured := installTestHandler(t)

	Report(&DiagnosticError{
		Op:   "test.op",
		Kind: KindPlatform,
		Err:  &ParseError{Channel: "test", DataType: "Test", Got: nil},
	})

	if len(*captured) != 1 {
		t.Fatalf("captured %d errors, want 1", len(*captured))
	}
	got := (*captured)[0]
	if got.Op != "test.op" {
		t.Errorf("Op = %q, want %q", got.Op, "test.op")
	}
	if got.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
	if got.StackTrace != "" {
		t.Errorf("platform errors should not carry a stack, got %q", got.StackTrace)
	}
}

func TestReportAttachesStackToUnexpected(t *testing.T) {
	captured := installTestHandler(t)

	Report(Unexpected("camera.getCameraAuthorizationStatus", stderrors.New("bridge exploded")))

	if len(*captured) != 1 {
		t.Fatalf("captured %d errors, want 1", len(*captured))
	}
	stack := (*captured)[0].StackTrace
	if !strings.Contains(stack, "TestReportAttachesStackToUnexpected") {
		t.Errorf("stack should start at the reporter, got:\n%s", stack)
	}
	if strings.Contains(stack, "errors.Report") {
		t.Errorf("stack should not include Report itself, got:\n%s", stack)
	}
}

func TestReportKeepsExistingStack(t *testing.T) {
	captured := installTestHandler(t)

	err := Unexpected("camera.Execute", stderrors.New("boom"))
	err.StackTrace = "recorded elsewhere"
	Report(err)

	if got := (*captured)[0].StackTrace; got != "recorded elsewhere" {
		t.Errorf("StackTrace = %q, want the pre-set stack", got)
	}
}

func TestReportNil(t *testing.T) {
	captured := installTestHandler(t)
	Report(nil)
	if len(*captured) != 0 {
		t.Errorf("Report(nil) captured %d errors", len(*captured))
	}
}

func panicking() {
	panic("intentional test panic")
}

func TestGuard(t *testing.T) {
	captured := installTestHandler(t)

	var got *PanicError
	func() {
		defer Guard("test.guard", func(pe *PanicError) { got = pe })
		panicking()
	}()

	if got == nil {
		t.Fatal("expected panic to be recovered")
	}
	if got.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", got.Value, "intentional test panic")
	}
	if got.Op != "test.guard" {
		t.Errorf("Op = %q, want %q", got.Op, "test.guard")
	}
	if !strings.Contains(got.StackTrace, "panicking") {
		t.Errorf("stack should include the panicking function, got:\n%s", got.StackTrace)
	}
	if len(*captured) != 0 {
		t.Errorf("Guard should leave reporting to its callback, captured %d", len(*captured))
	}
}

func TestGuardWithoutPanic(t *testing.T) {
	called := false
	func() {
		defer Guard("test.guard", func(*PanicError) { called = true })
	}()
	if called {
		t.Error("callback ran without a panic")
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := Handler()
	t.Cleanup(func() { SetHandler(old) })

	SetHandler(nil)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should install LogHandler, got %T", Handler())
	}
}

func TestLogHandlerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	h := &LogHandler{Logger: &logger}

	h.HandleError(InvalidAction("camera.Execute", "bogus"))
	out := buf.String()
	for _, want := range []string{`"op":"camera.Execute"`, `"kind":"invalid_action"`, `"action":"bogus"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
	if strings.Contains(out, `"stack"`) {
		t.Errorf("log output %q should omit an empty stack", out)
	}

	buf.Reset()
	err := Unexpected("camera.Execute", stderrors.New("boom"))
	err.StackTrace = "camera.dispatch\n\tplugin.go:1\n"
	h.HandleError(err)
	if !strings.Contains(buf.String(), `"stack":"camera.dispatch`) {
		t.Errorf("log output %q should contain the stack", buf.String())
	}
}

type testHandler struct {
	onError func(*DiagnosticError)
}

func (h *testHandler) HandleError(err *DiagnosticError) {
	if h.onError != nil {
		h.onError(err)
	}
}
