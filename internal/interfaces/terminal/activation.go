package terminal

import "time"

// Ventana de doble activación sobre una fila de la lista.
const doubleActivationWindow = 300 * time.Millisecond

// ActivationDetector detecta la doble activación de una fila: dos
// activaciones del mismo elemento en menos de 300 ms abren el detalle.
// Estado propio del componente de presentación (última activación), nada
// compartido a nivel de módulo.
type ActivationDetector struct {
	lastID string
	lastAt time.Time
	now    func() time.Time
}

// NewActivationDetector construye el detector. now inyectable para tests.
func NewActivationDetector() *ActivationDetector {
	return &ActivationDetector{now: time.Now}
}

// Activate registra una activación y devuelve true si completa una doble
// activación del mismo elemento dentro de la ventana. Una activación única
// sin segunda a tiempo es un no-op en este flujo.
func (d *ActivationDetector) Activate(id string) bool {
	now := d.now()
	if d.lastID == id && now.Sub(d.lastAt) < doubleActivationWindow {
		d.lastID = ""
		d.lastAt = time.Time{}
		return true
	}
	d.lastID = id
	d.lastAt = now
	return false
}
