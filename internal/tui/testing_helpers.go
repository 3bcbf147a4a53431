package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/redditmood/internal/api"
)

// CreateTestModel creates a Model for testing, pointed at the given endpoint
// (usually an httptest server) and with history disabled.
func CreateTestModel(t *testing.T, endpoint string) *Model {
	t.Helper()

	m := New(api.New(endpoint), nil, "test-version")
	m.width = 100
	m.height = 30
	m.updateViewport()
	return &m
}

// StubClipboard replaces the clipboard write capability for the duration of
// the test and records what was written.
func StubClipboard(t *testing.T, failWrites bool) *ClipboardStub {
	t.Helper()

	stub := &ClipboardStub{fail: failWrites}
	original := clipboardWriteAll
	clipboardWriteAll = stub.Write
	t.Cleanup(func() {
		clipboardWriteAll = original
	})
	return stub
}

// ClipboardStub captures clipboard writes in tests.
type ClipboardStub struct {
	fail    bool
	Written []string
}

func (s *ClipboardStub) Write(text string) error {
	if s.fail {
		return errClipboardUnavailable
	}
	s.Written = append(s.Written, text)
	return nil
}

var errClipboardUnavailable = clipboardError("clipboard unavailable")

type clipboardError string

func (e clipboardError) Error() string { return string(e) }

// RunCmd executes a tea.Cmd synchronously and returns the produced message.
// Batches are unwrapped; spinner ticks are dropped so tests see the
// meaningful message.
func RunCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if inner := RunCmd(c); inner != nil {
				if _, isTick := inner.(spinner.TickMsg); !isTick {
					return inner
				}
			}
		}
		return nil
	}
	return msg
}

// keyMsg builds a key press message for tests.
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
