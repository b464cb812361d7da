package petdraft

import "sync"

// Aggregator guarda el draft durante todo el wizard de alta de mascota.
// No valida nada: cada paso valida lo suyo antes de llamar a Merge.
// No conoce el paso actual; eso es de la navegación.
type Aggregator struct {
	mu    sync.RWMutex
	draft Draft
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Draft devuelve una copia del draft actual.
func (a *Aggregator) Draft() Draft {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.draft.clone()
}

// Merge pisa solo las keys presentes en p. Nunca falla.
func (a *Aggregator) Merge(p Partial) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p.Breed.apply(&a.draft.Breed)
	p.Zone.apply(&a.draft.Zone)
	p.Name.apply(&a.draft.Name)
	p.Age.apply(&a.draft.Age)
	p.Description.apply(&a.draft.Description)
	p.Comments.apply(&a.draft.Comments)
	p.MedicalCondition.apply(&a.draft.MedicalCondition)
	p.Photo.apply(&a.draft.Photo)
}

// Reset vuelve al draft con todo en null.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.draft = Draft{}
}
