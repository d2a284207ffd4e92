package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
)

// Recalculator recalcula los saldos de stock desde el libro de movimientos.
type Recalculator interface {
	RecalculateBalances(ctx context.Context) (*dto.RecalculateResponse, error)
}

// Scheduler ejecuta el recálculo periódico de saldos.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	recalc  Recalculator
	timeout time.Duration
	log     zerolog.Logger
}

// New crea el scheduler. spec es una expresión cron estándar (5 campos) o "@every 1h"; vacío = deshabilitado.
func New(spec string, recalc Recalculator, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		spec:    spec,
		recalc:  recalc,
		timeout: 2 * time.Minute,
		log:     log,
	}
}

// Enabled indica si hay una expresión configurada.
func (s *Scheduler) Enabled() bool { return s.spec != "" }

// Start agenda el recálculo y arranca el cron. No hace nada si está deshabilitado.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.log.Info().Msg("recálculo periódico de saldos deshabilitado")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		return fmt.Errorf("scheduler: expresión cron %q: %w", s.spec, err)
	}
	s.log.Info().Str("spec", s.spec).Msg("recálculo periódico de saldos agendado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera al job en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce ejecuta un recálculo con timeout propio.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.recalc.RecalculateBalances(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("recálculo periódico de saldos falló")
		return
	}
	s.log.Info().Int("checked", res.Checked).Int("corrected", len(res.Corrected)).Msg("recálculo periódico de saldos")
}
