// Package health поднимает gRPC-сервер со стандартным протоколом grpc.health.v1.
//
// Статус сервиса определяется доступностью базы данных и периодически
// обновляется в Watch.
package health

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/Edu92337/quizmaster-backend/internal/lib/sl"
)

// ServiceName имя сервиса в протоколе health.
const ServiceName = "quizmaster"

// Pinger проверка доступности зависимости, например *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server gRPC-сервер проверки здоровья.
type Server struct {
	grpcServer *grpc.Server
	health     *grpchealth.Server
	pinger     Pinger
	log        *slog.Logger
}

// NewServer создает Server. До первой проверки сервис имеет статус NOT_SERVING.
func NewServer(pinger Pinger, log *slog.Logger) *Server {
	hs := grpchealth.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	return &Server{
		grpcServer: gs,
		health:     hs,
		pinger:     pinger,
		log:        log,
	}
}

// Check проверяет зависимость и выставляет статус сервиса и общий статус сервера.
func (s *Server) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.PingContext(ctx); err != nil {
		s.log.Warn("health check failed", sl.Err(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
	s.health.SetServingStatus("", status)
	return status
}

// Watch повторяет Check с интервалом до отмены ctx.
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Serve обслуживает соединения на lis до Stop.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("gRPC health server listening", slog.String("address", lis.Addr().String()))
	return s.grpcServer.Serve(lis)
}

// Stop переводит сервис в NOT_SERVING и мягко останавливает сервер.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
