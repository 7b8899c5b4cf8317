package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/cricket-fantasy/internal/config"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
)

func TestInitUptrace_DisabledIsNoop(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "flag off", cfg: config.Config{UptraceEnabled: false, ServiceName: "cricket-fantasy-api", AppEnv: config.EnvDev}},
		{name: "empty dsn", cfg: config.Config{UptraceEnabled: true, ServiceName: "cricket-fantasy-api", AppEnv: config.EnvDev}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := InitUptrace(tt.cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("init uptrace: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown uptrace: %v", err)
			}
		})
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestProfilerConfig_TagsDeployment(t *testing.T) {
	pc := profilerConfig(config.Config{
		PyroscopeAppName: "cricket-fantasy-api",
		AppEnv:           config.EnvDev,
		StorageDriver:    config.StorageMemory,
		AuthMode:         config.AuthModeJWT,
	})
	if pc.ApplicationName != "cricket-fantasy-api" {
		t.Fatalf("unexpected application %q", pc.ApplicationName)
	}
	if pc.Tags["storage"] != config.StorageMemory || pc.Tags["auth"] != config.AuthModeJWT {
		t.Fatalf("unexpected tags: %v", pc.Tags)
	}
}

func TestStartPprofServer(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv == nil {
		t.Fatalf("expected a running server")
	}
	if err := StopPprofServer(context.Background(), srv); err != nil {
		t.Fatalf("stop pprof: %v", err)
	}

	disabled, err := StartPprofServer(config.Config{}, logging.NewNop())
	if err != nil || disabled != nil {
		t.Fatalf("disabled pprof: srv=%v err=%v", disabled, err)
	}
}

func TestPprofHandler_Index(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	pprofHandler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if len(body) == 0 {
		t.Fatalf("expected profile index body")
	}
}

func TestStopPprofServer_Nil(t *testing.T) {
	if err := StopPprofServer(context.Background(), nil); err != nil {
		t.Fatalf("nil server: %v", err)
	}
}
