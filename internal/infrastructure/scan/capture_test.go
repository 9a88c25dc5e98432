package scan_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/palette-scan/internal/domain"
	"github.com/tu-usuario/palette-scan/internal/infrastructure/scan"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

// stubOpener simula el lector: una secuencia de aperturas, cada una con su
// contenido o su error de permiso.
type stubOpener struct {
	opens []stubOpen
	calls int
}

type stubOpen struct {
	content string
	err     error
}

func (s *stubOpener) Open() (io.ReadCloser, error) {
	open := s.opens[s.calls]
	s.calls++
	if open.err != nil {
		return nil, open.err
	}
	return io.NopCloser(strings.NewReader(open.content)), nil
}

func newCapture(opener scan.DeviceOpener) *scan.Capture {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return scan.NewCapture(opener, []string{"qr", "pdf417"}, log)
}

func TestRequestScan_PrimeraLecturaConPrefijoAIM(t *testing.T) {
	opener := &stubOpener{opens: []stubOpen{{content: "]Q2PAL-0042\n"}}}
	c := newCapture(opener)

	code, ok, err := c.RequestScan(context.Background())

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PAL-0042", code)
}

func TestRequestScan_SinPrefijo_SeAceptaTalCual(t *testing.T) {
	opener := &stubOpener{opens: []stubOpen{{content: "PAL-0042\n"}}}
	c := newCapture(opener)

	code, ok, err := c.RequestScan(context.Background())

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PAL-0042", code)
}

func TestRequestScan_SimbologiaNoAceptada_SeIgnoraHastaUnaValida(t *testing.T) {
	// ]d1 = DataMatrix (no aceptada); la siguiente lectura es un QR válido.
	opener := &stubOpener{opens: []stubOpen{{content: "]d1OTRO\n]Q2PAL-0042\n"}}}
	c := newCapture(opener)

	code, ok, err := c.RequestScan(context.Background())

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PAL-0042", code)
}

func TestRequestScan_CancelacionSilenciosa(t *testing.T) {
	// Línea vacía: el operario cierra la captura sin escanear.
	opener := &stubOpener{opens: []stubOpen{{content: "\n"}}}
	c := newCapture(opener)

	code, ok, err := c.RequestScan(context.Background())

	require.NoError(t, err, "la cancelación no es un error")
	assert.False(t, ok)
	assert.Empty(t, code)
}

func TestRequestScan_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Lector que nunca entrega nada.
	r, w := io.Pipe()
	defer w.Close()
	c := newCapture(pipeOpener{r})

	code, ok, err := c.RequestScan(ctx)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, code)
}

type pipeOpener struct{ r io.ReadCloser }

func (p pipeOpener) Open() (io.ReadCloser, error) { return p.r, nil }

func TestRequestScan_PermisoDenegadoLuegoConcedido(t *testing.T) {
	opener := &stubOpener{opens: []stubOpen{
		{err: domain.ErrPermissionDenied},
		{content: "]Q2PAL-0042\n"},
	}}
	c := newCapture(opener)

	// Primera sesión: denegado, sin valor.
	_, ok, err := c.RequestScan(context.Background())
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.False(t, ok)

	// El operario concede el acceso; la siguiente sesión decodifica
	// exactamente un código.
	code, ok, err := c.RequestScan(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PAL-0042", code)
	assert.Equal(t, 2, opener.calls)
}
