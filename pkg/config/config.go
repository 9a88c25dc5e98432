package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo .env).
type Config struct {
	App     AppConfig
	API     APIConfig
	Scanner ScannerConfig
	JWT     JWTConfig
	Mock    MockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig acceso al backend REST (palette, production, mouvement_stock, client, auth).
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int // 0 = sin timeout de cliente; gobierna el transporte
}

// Timeout devuelve el timeout del cliente HTTP.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ScannerConfig captura de códigos. Device vacío = lectura por la entrada
// estándar (lectores HID en modo teclado).
type ScannerConfig struct {
	Device      string
	Symbologies []string // qr, pdf417
}

// JWTConfig parámetros del token de sesión. Secret solo lo necesita el
// mockserver para emitir; la aplicación únicamente parsea el token recibido.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// MockConfig configuración del backend de desarrollo (cmd/mockserver).
type MockConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c MockConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, API_BASE_URL, SCANNER_DEVICE, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "palette-scan"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:        getString(v, "API_BASE_URL", "http://localhost:8080"),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 30),
		},
		Scanner: ScannerConfig{
			Device:      getString(v, "SCANNER_DEVICE", ""),
			Symbologies: splitList(getString(v, "SCANNER_SYMBOLOGIES", "qr,pdf417")),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "palette-scan"),
		},
		Mock: MockConfig{
			Host: getString(v, "MOCK_HOST", "0.0.0.0"),
			Port: getInt(v, "MOCK_PORT", 8080),
		},
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
