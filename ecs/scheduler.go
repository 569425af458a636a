package ecs

type System interface {
	Update(w *World)
}

// Scheduler runs systems in two phases. Late systems run after every update
// system of the same frame, so they observe this frame's final positions.
type Scheduler struct {
	systems []System
	late    []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) AddLate(system System) {
	if system == nil {
		return
	}
	s.late = append(s.late, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	for _, system := range s.late {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems)+len(s.late))
	systems = append(systems, s.systems...)
	return append(systems, s.late...)
}
