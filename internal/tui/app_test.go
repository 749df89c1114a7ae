package tui

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hegde-atri/wg-burrow/internal/nm"
	"github.com/hegde-atri/wg-burrow/internal/selection"
	"github.com/hegde-atri/wg-burrow/internal/types"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded builds a model and feeds it the result of its Init command
func loaded(t *testing.T, src nm.Source, store *selection.FileStore) model {
	t.Helper()
	m := newModel("test", src, store)
	next, _ := m.Update(m.Init()())
	return next.(model)
}

func TestLoadTunnels(t *testing.T) {
	src := nm.NewMemory([]string{"work", "home", "cafe"}, "work")
	store := selection.NewFileStore(filepath.Join(t.TempDir(), "wg-current"))
	if err := store.Save("home"); err != nil {
		t.Fatal(err)
	}

	tunnels, current, err := loadTunnels(context.Background(), src, store)
	if err != nil {
		t.Fatalf("loadTunnels: %v", err)
	}
	if current != "home" {
		t.Errorf("current = %q, want home", current)
	}
	want := []types.Tunnel{
		{Name: "cafe", State: types.Inactive},
		{Name: "home", State: types.Inactive, Selected: true},
		{Name: "work", State: types.Active},
	}
	if !reflect.DeepEqual(tunnels, want) {
		t.Errorf("tunnels = %+v, want %+v", tunnels, want)
	}
}

func TestLoadTunnelsFailures(t *testing.T) {
	store := selection.NewFileStore(filepath.Join(t.TempDir(), "wg-current"))

	listFails := nm.NewMemory([]string{"home"})
	listFails.ListErr = errors.New("nmcli missing")
	tunnels, _, err := loadTunnels(context.Background(), listFails, store)
	if err != nil || len(tunnels) != 0 {
		t.Errorf("list failure: tunnels=%v err=%v, want empty and nil", tunnels, err)
	}

	activeFails := nm.NewMemory([]string{"home"})
	activeFails.ActiveErr = errors.New("dbus down")
	if _, _, err := loadTunnels(context.Background(), activeFails, store); !errors.Is(err, nm.ErrQueryActive) {
		t.Errorf("active failure: err = %v, want ErrQueryActive", err)
	}
}

func TestRotateKeysPersistSelection(t *testing.T) {
	src := nm.NewMemory([]string{"alpha", "beta", "gamma"})
	store := selection.NewFileStore(filepath.Join(t.TempDir(), "wg-current"))
	m := loaded(t, src, store)

	if m.current != "alpha" {
		t.Fatalf("current = %q, want default alpha", m.current)
	}

	next, _ := m.Update(keyRunes("p"))
	m = next.(model)
	if m.current != "gamma" {
		t.Errorf("after p current = %q, want gamma", m.current)
	}
	if m.table.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.table.Cursor())
	}

	next, _ = m.Update(keyRunes("n"))
	m = next.(model)
	if m.current != "alpha" {
		t.Errorf("after n current = %q, want alpha", m.current)
	}
	if got := store.Load(""); got != "alpha" {
		t.Errorf("saved selection = %q, want alpha", got)
	}
	if len(src.Requests()) != 0 {
		t.Error("rotating must not toggle")
	}
}

func TestEnterTogglesTunnelUnderCursor(t *testing.T) {
	src := nm.NewMemory([]string{"alpha", "beta"})
	store := selection.NewFileStore(filepath.Join(t.TempDir(), "wg-current"))
	m := loaded(t, src, store)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(model)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if cmd == nil {
		t.Fatal("enter should return a toggle command")
	}
	if !m.busy {
		t.Error("model should be busy while toggling")
	}

	next, _ = m.Update(cmd())
	m = next.(model)

	if m.current != "beta" || store.Load("") != "beta" {
		t.Errorf("current = %q saved = %q, want beta", m.current, store.Load(""))
	}
	if m.tunnels[1].State != types.Active {
		t.Errorf("beta state = %s, want active", m.tunnels[1].State)
	}
	want := []nm.Request{{Name: "beta", Up: true}}
	if got := src.Requests(); !reflect.DeepEqual(got, want) {
		t.Errorf("requests = %+v, want %+v", got, want)
	}
	if !strings.Contains(m.View(), "beta is now active") {
		t.Error("view should report the toggle")
	}
}

func TestViewStates(t *testing.T) {
	store := selection.NewFileStore(filepath.Join(t.TempDir(), "wg-current"))

	empty := loaded(t, nm.NewMemory(nil), store)
	if !strings.Contains(empty.View(), "No VPNs") {
		t.Error("empty list should show No VPNs")
	}

	broken := nm.NewMemory([]string{"home"})
	broken.ActiveErr = errors.New("dbus down")
	m := loaded(t, broken, store)
	if !strings.Contains(m.View(), "Error:") {
		t.Error("active query failure should be shown")
	}
}
