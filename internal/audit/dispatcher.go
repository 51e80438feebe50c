package audit

import "log"

type Event struct {
	PracticeID uint
	DoctorID   *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

// NewDispatcher accepte un logger nil : l'audit est alors désactivé et les
// événements sont ignorés.
func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	if logger != nil {
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.PracticeID,
			ev.DoctorID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d.logger == nil {
		return
	}

	select {
	case d.queue <- ev:
		// envoyé
	default:
		// file pleine → on abandonne l'audit, jamais l'API
		log.Println("audit queue full, dropping event")
	}
}
