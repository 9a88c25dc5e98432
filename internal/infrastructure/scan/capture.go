// Package scan captura códigos de palette desde un lector físico. Los
// lectores industriales en modo wedge entregan el código ya decodificado
// como una línea de texto, con el identificador AIM de la simbología como
// prefijo (]Q2 para QR, ]L0 para PDF417).
package scan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tu-usuario/palette-scan/internal/domain"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

// DeviceOpener abre la superficie de captura. Separado para poder simular
// en tests tanto el lector como la denegación de permiso.
type DeviceOpener interface {
	Open() (io.ReadCloser, error)
}

// FileOpener abre el dispositivo del lector (p. ej. /dev/ttyACM0). Path
// vacío usa la entrada estándar: lectores HID en modo teclado.
type FileOpener struct {
	Path string
}

// Open abre el dispositivo. Un EACCES se traduce a ErrPermissionDenied:
// es recuperable, el operario puede conceder el acceso y reintentar.
func (o FileOpener) Open() (io.ReadCloser, error) {
	if o.Path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(o.Path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPermissionDenied, o.Path)
		}
		return nil, fmt.Errorf("abrir lector %s: %v", o.Path, err)
	}
	return f, nil
}

// Capture sesión de escaneo: abre el lector, emite el primer código
// decodificado de una simbología aceptada y cierra la superficie. Sin
// reintentos de decodificación; el operario puede reabrir la captura.
type Capture struct {
	opener      DeviceOpener
	symbologies map[string]bool
	log         *logger.Logger
}

// NewCapture construye la captura. symbologies: "qr", "pdf417".
func NewCapture(opener DeviceOpener, symbologies []string, log *logger.Logger) *Capture {
	accepted := make(map[string]bool, len(symbologies))
	for _, s := range symbologies {
		accepted[strings.ToLower(strings.TrimSpace(s))] = true
	}
	return &Capture{opener: opener, symbologies: accepted, log: log.Component("scan")}
}

// Identificadores AIM -> simbología. Solo los que interesan al flujo.
var aimSymbologies = map[byte]string{
	'Q': "qr",
	'L': "pdf417",
}

// RequestScan suspende hasta decodificar un código o hasta que el operario
// cancele. Cancelación (línea vacía, EOF o ctx cancelado) no produce valor
// ni error: ok=false, err=nil.
func (c *Capture) RequestScan(ctx context.Context) (string, bool, error) {
	surface, err := c.opener.Open()
	if err != nil {
		return "", false, err
	}
	defer surface.Close()

	type decoded struct {
		code string
		ok   bool
	}
	results := make(chan decoded, 1)

	go func() {
		lines := bufio.NewScanner(surface)
		for lines.Scan() {
			raw := strings.TrimSpace(lines.Text())
			if raw == "" {
				results <- decoded{} // línea vacía: cancelación del operario
				return
			}
			code, sym, _ := stripAIM(raw)
			if sym != "" && !c.symbologies[sym] {
				c.log.Debug().Str("symbology", sym).Msg("simbología no aceptada, se ignora")
				continue
			}
			results <- decoded{code: code, ok: true}
			return
		}
		results <- decoded{} // EOF del dispositivo
	}()

	select {
	case <-ctx.Done():
		return "", false, nil
	case d := <-results:
		if !d.ok {
			return "", false, nil
		}
		c.log.Info().Str("code", d.code).Msg("código decodificado")
		return d.code, true, nil
	}
}

// stripAIM separa el identificador AIM (]Xn) del contenido. Si el lector no
// envía prefijo, el contenido se acepta tal cual con simbología desconocida.
func stripAIM(raw string) (code, symbology string, hadPrefix bool) {
	if len(raw) >= 3 && raw[0] == ']' {
		if sym, known := aimSymbologies[raw[1]]; known {
			return raw[3:], sym, true
		}
		// Prefijo AIM de una simbología que no manejamos.
		return raw[3:], strings.ToLower(string(raw[1])), true
	}
	return raw, "", false
}
