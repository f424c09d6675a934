package services

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"isorail.dev/internal/config"
	"isorail.dev/internal/generation"
	"isorail.dev/internal/models"
	"isorail.dev/internal/sim"
)

// FrameSink receives everything the simulation publishes
type FrameSink interface {
	Broadcast(msg models.Message)
}

// SimulationService runs the train along the published world's route
type SimulationService struct {
	worlds *WorldService
	cfg    config.SimConfig
	sink   FrameSink
	logger logrus.FieldLogger

	world *generation.World
	train *sim.Train
	smoke *sim.Smoke
	tick  uint64
}

// NewSimulationService creates a simulation on the current world.
// Smoke draws from rng; pass nil for a time-seeded source.
func NewSimulationService(worlds *WorldService, cfg config.SimConfig, sink FrameSink, logger logrus.FieldLogger, rng *rand.Rand) *SimulationService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	s := &SimulationService{
		worlds: worlds,
		cfg:    cfg,
		sink:   sink,
		logger: logger.WithField("component", "sim"),
		train:  sim.NewTrain(cfg.TrainSpeed),
		smoke:  sim.NewSmoke(rng),
	}
	s.load(worlds.Current())
	return s
}

// load switches to a new world and puts the train back at the start
func (s *SimulationService) load(w *generation.World) {
	s.world = w
	s.train.Reset()
	s.logger.WithFields(logrus.Fields{"id": w.ID, "route": w.Route.Len()}).Debug("train reset on new world")
}

// Step advances the simulation one tick. It returns a frame every
// FrameEvery ticks and nil otherwise.
func (s *SimulationService) Step() *models.Frame {
	route := s.world.Route.Points
	s.train.Step(route)
	poses := s.train.Poses(route)
	if len(poses) > 0 {
		s.smoke.MaybePuff(s.train, poses[0])
	}
	s.smoke.Update()
	s.tick++

	if s.tick%uint64(s.cfg.FrameEvery) != 0 {
		return nil
	}
	return s.frame(poses)
}

func (s *SimulationService) frame(poses []sim.CarPose) *models.Frame {
	f := &models.Frame{
		Tick:    s.tick,
		WorldID: s.world.ID.String(),
		Cars:    make([]models.CarPose, len(poses)),
		Smoke:   make([]models.Puff, 0, s.smoke.Len()),
		Wheel:   s.train.WheelCycle(),
	}
	for i, p := range poses {
		f.Cars[i] = models.CarPose{Type: p.Type, X: p.Pos.X, Y: p.Pos.Y, Angle: p.Angle}
	}
	for _, p := range s.smoke.Particles() {
		f.Smoke = append(f.Smoke, models.Puff{X: p.X, Y: p.Y, Size: p.Size(), Alpha: p.Alpha(), Shade: p.Shade})
	}
	return f
}

// Run ticks the simulation until ctx is cancelled, switching worlds as
// new ones are published.
func (s *SimulationService) Run(ctx context.Context) error {
	updates, unsubscribe := s.worlds.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(s.cfg.TickRate)
	defer ticker.Stop()

	s.logger.WithField("tick_rate", s.cfg.TickRate).Info("simulation started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("simulation stopped")
			return ctx.Err()
		case w, ok := <-updates:
			if !ok {
				return nil
			}
			s.load(w)
			s.sink.Broadcast(models.Message{Type: models.MessageTypeWorld, Payload: WorldNotice(w)})
		case <-ticker.C:
			if f := s.Step(); f != nil {
				s.sink.Broadcast(models.Message{Type: models.MessageTypeFrame, Payload: f})
			}
		}
	}
}
