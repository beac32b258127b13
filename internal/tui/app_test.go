package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/matcalc/internal/matrix"
)

type memRecorder struct {
	ops []string
}

func (r *memRecorder) Save(op string, _ []*matrix.Matrix, _ *int, _ *matrix.Matrix) (string, error) {
	r.ops = append(r.ops, op)
	return op, nil
}

func (r *memRecorder) SaveValue(op string, _ []*matrix.Matrix, _ float64) (string, error) {
	r.ops = append(r.ops, op)
	return op, nil
}

func press(t *testing.T, m tea.Model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m.(model)
}

func TestAddFlow(t *testing.T) {
	rec := &memRecorder{}
	m := press(t, New(rec),
		"enter",
		"2 2", "enter", "1 1", "enter", "1 1", "enter",
		"2 2", "enter", "2 2", "enter", "2 2", "enter",
	)

	if m.state != stateResult {
		t.Fatalf("expected result state, got %v (err %q)", m.state, m.err)
	}
	if !strings.Contains(m.result, "3.0") {
		t.Errorf("unexpected result:\n%s", m.result)
	}
	if len(rec.ops) != 1 || rec.ops[0] != "add" {
		t.Errorf("expected one add recorded, got %v", rec.ops)
	}
	if !strings.Contains(m.View(), "The result is:") {
		t.Error("view should show the result")
	}

	m = press(t, m, "x")
	if m.state != stateMenu || m.inputs != nil {
		t.Error("any key should return to a clean menu")
	}
}

func TestShortcutScale(t *testing.T) {
	m := press(t, New(nil), "2", "1 2", "enter", "1 2", "enter")
	if m.state != stateConstant {
		t.Fatalf("expected constant prompt, got %v", m.state)
	}
	if !strings.Contains(m.View(), "Enter constant:") {
		t.Error("constant prompt missing")
	}

	m = press(t, m, "3", "enter")
	if !strings.Contains(m.result, "6.0") {
		t.Errorf("unexpected result:\n%s", m.result)
	}
}

func TestTransposeFlow(t *testing.T) {
	m := press(t, New(nil), "4")
	if m.state != stateTranspose {
		t.Fatalf("expected transpose menu, got %v", m.state)
	}
	m = press(t, m, "down", "enter", "2 2", "enter", "1 2", "enter", "3 4", "enter")
	if m.kind != matrix.SideDiagonal {
		t.Errorf("expected side diagonal, got %v", m.kind)
	}
	if m.state != stateResult || m.err != "" {
		t.Fatalf("expected result, got state %v err %q", m.state, m.err)
	}
}

func TestDeterminantFlow(t *testing.T) {
	rec := &memRecorder{}
	m := press(t, New(rec), "5", "2 2", "enter", "1 2", "enter", "3 4", "enter")
	if m.result != "-2.0" {
		t.Errorf("expected -2.0, got %q", m.result)
	}
	if len(rec.ops) != 1 || rec.ops[0] != "determinant" {
		t.Errorf("expected determinant recorded, got %v", rec.ops)
	}
}

func TestErrors(t *testing.T) {
	m := press(t, New(nil), "6", "2 2", "enter", "1 2", "enter", "2 4", "enter")
	if m.err != "This matrix doesn't have an inverse." {
		t.Errorf("unexpected error %q", m.err)
	}

	m = press(t, New(nil), "1", "1 2", "enter", "1 2", "enter", "2 1", "enter", "1", "enter", "1", "enter")
	if m.err != "The operation cannot be performed." {
		t.Errorf("unexpected error %q", m.err)
	}

	m = press(t, New(nil), "5", "2 2", "enter", "1 2 3", "enter")
	if m.state != stateRow || m.err == "" {
		t.Errorf("a bad row should be rejected in place, got state %v err %q", m.state, m.err)
	}
	if len(m.pending) != 0 {
		t.Errorf("bad row kept: %v", m.pending)
	}
}

func TestInputEditing(t *testing.T) {
	m := press(t, New(nil), "5", "2x", "backspace")
	if m.buf != "" {
		t.Errorf("letters must be filtered, buffer %q", m.buf)
	}

	m = press(t, m, "esc")
	if m.state != stateMenu {
		t.Errorf("esc should return to the menu, got %v", m.state)
	}
}

func TestQuit(t *testing.T) {
	_, cmd := New(nil).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
