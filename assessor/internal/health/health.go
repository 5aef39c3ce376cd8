package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Status is the outcome of one dependency check.
type Status string

const (
	StatusOK       Status = "ok"
	StatusError    Status = "error"
	StatusDisabled Status = "disabled"
)

// Probe checks one dependency.
type Probe func(ctx context.Context) error

// Check is the result of one probe.
type Check struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Details string `json:"details,omitempty"`
}

// Report aggregates all checks.
type Report struct {
	Status    Status    `json:"status"`
	Checks    []Check   `json:"checks"`
	CheckedAt time.Time `json:"checked_at"`
}

// Server answers both the gRPC health protocol and GET /healthz from the same
// set of dependency probes. The empty service name reflects the whole process.
type Server struct {
	grpc_health_v1.UnimplementedHealthServer

	mu      sync.RWMutex
	order   []string
	probes  map[string]Probe
	serving bool
	timeout time.Duration

	stopped  chan struct{}
	stopOnce sync.Once
}

func NewServer() *Server {
	return &Server{
		probes:  make(map[string]Probe),
		serving: true,
		timeout: 2 * time.Second,
		stopped: make(chan struct{}),
	}
}

// Register adds a named probe. A nil probe is reported as disabled.
func (s *Server) Register(name string, probe Probe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.probes[name]; !exists {
		s.order = append(s.order, name)
	}
	s.probes[name] = probe
}

// SetServing flips the overall status, e.g. to NOT_SERVING during shutdown.
func (s *Server) SetServing(serving bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serving = serving
}

// Shutdown marks the process NOT_SERVING and ends every open Watch stream,
// so a graceful gRPC stop does not wait on health watchers.
func (s *Server) Shutdown() {
	s.SetServing(false)
	s.stopOnce.Do(func() { close(s.stopped) })
}

// Report runs every probe and returns their results in registration order.
func (s *Server) Report(ctx context.Context) Report {
	s.mu.RLock()
	order := append([]string(nil), s.order...)
	probes := make(map[string]Probe, len(s.probes))
	for k, v := range s.probes {
		probes[k] = v
	}
	serving := s.serving
	s.mu.RUnlock()

	report := Report{Status: StatusOK, CheckedAt: time.Now().UTC()}
	if !serving {
		report.Status = StatusError
	}
	for _, name := range order {
		check := s.run(ctx, name, probes[name])
		if check.Status == StatusError {
			report.Status = StatusError
		}
		report.Checks = append(report.Checks, check)
	}
	return report
}

func (s *Server) run(ctx context.Context, name string, probe Probe) Check {
	if probe == nil {
		return Check{Name: name, Status: StatusDisabled}
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := probe(ctx); err != nil {
		return Check{Name: name, Status: StatusError, Details: err.Error()}
	}
	return Check{Name: name, Status: StatusOK}
}

// Check implements grpc_health_v1.HealthServer.
func (s *Server) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	service := req.GetService()

	if service == "" {
		return servingResponse(s.Report(ctx).Status != StatusError), nil
	}

	s.mu.RLock()
	probe, exists := s.probes[service]
	serving := s.serving
	s.mu.RUnlock()
	if !exists {
		return nil, status.Error(codes.NotFound, "service not found")
	}

	check := s.run(ctx, service, probe)
	return servingResponse(serving && check.Status != StatusError), nil
}

// Watch sends the current status once and holds the stream open until the
// client leaves or Shutdown is called.
func (s *Server) Watch(req *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	response, err := s.Check(stream.Context(), req)
	if err != nil {
		return err
	}

	if err := stream.Send(response); err != nil {
		return err
	}

	select {
	case <-stream.Context().Done():
		return stream.Context().Err()
	case <-s.stopped:
		return stream.Send(servingResponse(false))
	}
}

// ServeHTTP writes the report as JSON; 503 when anything is failing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report := s.Report(r.Context())

	code := http.StatusOK
	if report.Status == StatusError {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(report)
}

func servingResponse(ok bool) *grpc_health_v1.HealthCheckResponse {
	if ok {
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}
	}
	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}
}
