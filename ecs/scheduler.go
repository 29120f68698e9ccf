package ecs

type System interface {
	Update(w *World)
}

// Phase orders systems within one fixed tick.
type Phase uint8

const (
	PhaseInput Phase = iota
	PhaseSimulate
	PhaseCollisionClear
	PhaseCollisionProduce
	PhaseCollisionConsume
	PhaseIntegrate
	PhaseLate
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseSimulate:
		return "simulate"
	case PhaseCollisionClear:
		return "collision-clear"
	case PhaseCollisionProduce:
		return "collision-produce"
	case PhaseCollisionConsume:
		return "collision-consume"
	case PhaseIntegrate:
		return "integrate"
	case PhaseLate:
		return "late"
	default:
		return "unknown"
	}
}

// Scheduler runs systems phase by phase, in insertion order within a phase.
type Scheduler struct {
	phases [phaseCount][]System
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Add(phase Phase, system System) {
	if s == nil || system == nil || phase >= phaseCount {
		return
	}
	s.phases[phase] = append(s.phases[phase], system)
}

func (s *Scheduler) Update(w *World) {
	if s == nil {
		return
	}
	for _, systems := range s.phases {
		for _, system := range systems {
			system.Update(w)
		}
	}
}

// Systems returns all systems in run order.
func (s *Scheduler) Systems() []System {
	if s == nil {
		return nil
	}
	var out []System
	for _, systems := range s.phases {
		out = append(out, systems...)
	}
	return out
}
