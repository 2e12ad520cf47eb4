package api

import (
	"context"

	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	Sessions services.SessionService
	Results  services.ResultsService
	Solver   services.SolverService
	DB       Pinger
	Logger   *logger.Logger
}

func (s *Server) baseLogger() *logger.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logger.Default()
}
