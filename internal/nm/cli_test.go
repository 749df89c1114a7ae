package nm

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// fakeRunner answers commands from a table keyed by the joined argument list
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, name+" "+key)
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return []byte(f.outputs[key]), nil
}

func TestSplitTerse(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"home:wireguard", []string{"home", "wireguard"}},
		{"office\\:vpn:wireguard", []string{"office:vpn", "wireguard"}},
		{"back\\\\slash:vpn", []string{"back\\slash", "vpn"}},
		{"lo", []string{"lo"}},
		{"trailing:", []string{"trailing", ""}},
	}

	for _, tt := range tests {
		if got := splitTerse(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTerse(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestCLIListTunnels(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"-g NAME,TYPE connection show": "Wired connection 1:802-3-ethernet\n" +
			"work:wireguard\n" +
			"lo:loopback\n" +
			"home:wireguard\n" +
			"cafe\\:guest:wireguard\n" +
			"corp:vpn\n",
	}}
	cli := NewCLI("nmcli", "wireguard", runner.run)

	got, err := cli.ListTunnels(context.Background())
	if err != nil {
		t.Fatalf("ListTunnels: %v", err)
	}
	want := []string{"cafe:guest", "home", "work"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListTunnels = %q, want %q", got, want)
	}
	if runner.calls[0] != "nmcli -g NAME,TYPE connection show" {
		t.Errorf("unexpected command %q", runner.calls[0])
	}
}

func TestCLIListTunnelsError(t *testing.T) {
	boom := errors.New("nmcli missing")
	runner := &fakeRunner{errs: map[string]error{"-g NAME,TYPE connection show": boom}}
	cli := NewCLI("nmcli", "wireguard", runner.run)

	if _, err := cli.ListTunnels(context.Background()); !errors.Is(err, boom) {
		t.Errorf("ListTunnels error = %v, want wrapped %v", err, boom)
	}
}

func TestCLIListActive(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"-g NAME connection show --active": "Wired connection 1\nhome2\n\n",
	}}
	cli := NewCLI("/usr/bin/nmcli", "wireguard", runner.run)

	got, err := cli.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	want := []string{"Wired connection 1", "home2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListActive = %q, want %q", got, want)
	}

	active, err := IsActive(context.Background(), cli, "home")
	if err != nil {
		t.Fatalf("IsActive: %v", err)
	}
	if active {
		t.Error("home reported active because home2 is")
	}
}

func TestCLISetActive(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{"connection down work": errors.New("not active")}}
	cli := NewCLI("nmcli", "wireguard", runner.run)
	ctx := context.Background()

	if err := cli.SetActive(ctx, "home", true); err != nil {
		t.Errorf("SetActive up: %v", err)
	}
	if err := cli.SetActive(ctx, "work", false); err == nil {
		t.Error("SetActive down: expected error")
	}

	want := []string{"nmcli connection up home", "nmcli connection down work"}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Errorf("calls = %q, want %q", runner.calls, want)
	}
}

func TestIsActiveQueryFailure(t *testing.T) {
	src := NewMemory([]string{"home"})
	src.ActiveErr = errors.New("dbus down")

	if _, err := IsActive(context.Background(), src, "home"); !errors.Is(err, ErrQueryActive) {
		t.Errorf("IsActive error = %v, want ErrQueryActive", err)
	}
}
