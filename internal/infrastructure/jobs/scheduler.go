// Package jobs ejecuta tareas periódicas de fondo: alertas de stock bajo y
// conciliación del libro contra el stock almacenado.
package jobs

import (
	"github.com/robfig/cron/v3"

	"github.com/frescosur/mayorista-api/pkg/logger"
)

// Job es una tarea periódica con nombre y expresión cron (con segundos).
type Job interface {
	Name() string
	Schedule() string
	Run()
}

// Scheduler envuelve cron/v3 con logging de alta/baja de tareas.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// NewScheduler crea el planificador con soporte de campo de segundos.
func NewScheduler(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		log:  log,
	}
}

// Register agrega una tarea. Una expresión inválida devuelve error sin
// afectar las tareas ya registradas.
func (s *Scheduler) Register(job Job) error {
	_, err := s.cron.AddFunc(job.Schedule(), func() {
		s.log.Debug().Str("job", job.Name()).Msg("ejecutando tarea programada")
		job.Run()
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("job", job.Name()).Str("schedule", job.Schedule()).Msg("tarea registrada")
	return nil
}

// Start arranca el planificador en su propia goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("planificador iniciado")
}

// Stop detiene el planificador y espera a que terminen las tareas en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("planificador detenido")
}
