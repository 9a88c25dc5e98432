package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// relojFijo avanza a mano para controlar la ventana de 300 ms.
type relojFijo struct {
	t time.Time
}

func (r *relojFijo) avanzar(d time.Duration) { r.t = r.t.Add(d) }
func (r *relojFijo) ahora() time.Time        { return r.t }

func detectorConReloj() (*ActivationDetector, *relojFijo) {
	reloj := &relojFijo{t: time.Unix(1700000000, 0)}
	d := NewActivationDetector()
	d.now = reloj.ahora
	return d, reloj
}

func TestActivate_DobleDentroDeVentana(t *testing.T) {
	d, reloj := detectorConReloj()

	assert.False(t, d.Activate("P1"), "la primera activación no abre nada")
	reloj.avanzar(200 * time.Millisecond)
	assert.True(t, d.Activate("P1"), "segunda activación a 200 ms abre el detalle")
}

func TestActivate_DobleFueraDeVentana(t *testing.T) {
	d, reloj := detectorConReloj()

	assert.False(t, d.Activate("P1"))
	reloj.avanzar(doubleActivationWindow) // exactamente 300 ms: fuera
	assert.False(t, d.Activate("P1"))

	// La segunda tardía cuenta como nueva primera activación.
	reloj.avanzar(100 * time.Millisecond)
	assert.True(t, d.Activate("P1"))
}

func TestActivate_ElementosDistintosNoCuentan(t *testing.T) {
	d, reloj := detectorConReloj()

	assert.False(t, d.Activate("P1"))
	reloj.avanzar(50 * time.Millisecond)
	assert.False(t, d.Activate("P2"), "cambiar de fila reinicia la detección")
	reloj.avanzar(50 * time.Millisecond)
	assert.True(t, d.Activate("P2"))
}

func TestActivate_TrasDobleSeReinicia(t *testing.T) {
	d, reloj := detectorConReloj()

	d.Activate("P1")
	reloj.avanzar(100 * time.Millisecond)
	assert.True(t, d.Activate("P1"))

	// La doble consumió el estado: la siguiente vuelve a ser primera.
	reloj.avanzar(100 * time.Millisecond)
	assert.False(t, d.Activate("P1"))
}
