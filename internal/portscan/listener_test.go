package portscan

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	gnet "github.com/shirou/gopsutil/v4/net"

	"quotaprobe/internal/logging"
)

func newTestListener(stats []gnet.ConnectionStat, err error) *Listener {
	l := NewListener(time.Second, logging.NewNop())
	l.conns = func(context.Context, int32) ([]gnet.ConnectionStat, error) {
		return stats, err
	}
	return l
}

func listenStat(port uint32) gnet.ConnectionStat {
	return gnet.ConnectionStat{Status: "LISTEN", Laddr: gnet.Addr{IP: "127.0.0.1", Port: port}}
}

func TestListeningPortsDedupesAndSorts(t *testing.T) {
	stats := []gnet.ConnectionStat{
		listenStat(9001),
		listenStat(9000),
		listenStat(9001),
		{Status: "ESTABLISHED", Laddr: gnet.Addr{IP: "127.0.0.1", Port: 5555}},
		listenStat(443),
	}
	got := newTestListener(stats, nil).ListeningPorts(context.Background(), 4421)
	want := []int{443, 9000, 9001}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListeningPorts = %v, want %v", got, want)
	}
}

func TestListeningPortsIgnoresZeroPort(t *testing.T) {
	stats := []gnet.ConnectionStat{listenStat(0), listenStat(8000)}
	got := newTestListener(stats, nil).ListeningPorts(context.Background(), 1)
	if !reflect.DeepEqual(got, []int{8000}) {
		t.Fatalf("ListeningPorts = %v", got)
	}
}

func TestListeningPortsQueryFailureIsEmpty(t *testing.T) {
	got := newTestListener(nil, errors.New("process exited")).ListeningPorts(context.Background(), 4421)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestListeningPortsNoListeners(t *testing.T) {
	got := newTestListener(nil, nil).ListeningPorts(context.Background(), 4421)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
