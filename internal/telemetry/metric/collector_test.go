package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

type fakeStats struct {
	requests          uint64
	connsAccepted     uint64
	handshakeFailures uint64
	activeConns       int64
}

func (f *fakeStats) Requests() uint64          { return f.requests }
func (f *fakeStats) ConnsAccepted() uint64     { return f.connsAccepted }
func (f *fakeStats) HandshakeFailures() uint64 { return f.handshakeFailures }
func (f *fakeStats) ActiveConns() int64        { return f.activeConns }

func TestCollector_Gather(t *testing.T) {
	stats := &fakeStats{
		requests:          42,
		connsAccepted:     7,
		handshakeFailures: 1,
		activeConns:       3,
	}

	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(stats)); err != nil {
		t.Fatalf("register: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	got := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				got[mf.GetName()] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				got[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}

	want := map[string]float64{
		"echotls_requests_total":             42,
		"echotls_connections_accepted_total": 7,
		"echotls_handshake_failures_total":   1,
		"echotls_active_connections":         3,
	}
	for name, val := range want {
		if got[name] != val {
			t.Errorf("%s = %v, want %v", name, got[name], val)
		}
	}
}

func TestCollector_ReadsLiveValues(t *testing.T) {
	stats := &fakeStats{}
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(stats))

	stats.requests = 5
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == "echotls_requests_total" {
			if v := mf.GetMetric()[0].GetCounter().GetValue(); v != 5 {
				t.Errorf("requests = %v, want 5", v)
			}
			return
		}
	}
	t.Fatal("echotls_requests_total not found")
}

func TestHandler(t *testing.T) {
	stats := &fakeStats{requests: 9}
	srv := httptest.NewServer(Handler(stats))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "echotls_requests_total 9") {
		t.Errorf("exposition missing requests counter:\n%s", body)
	}
}
