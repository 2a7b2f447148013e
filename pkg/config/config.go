package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del panel (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	Backend    BackendConfig
	Extraction ExtractionConfig
	JWT        JWTConfig
	DB         DBConfig
	UI         UIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	SwaggerFile string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig API REST de inventario y manufactura (colaborador externo).
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ExtractionConfig servicio de extracción de campos de facturas (multipart).
type ExtractionConfig struct {
	BaseURL string // vacío = extracción deshabilitada
	Timeout time.Duration
}

// JWTConfig configuración del token de sesión del panel.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// DBConfig PostgreSQL para la bitácora de auditoría (opcional).
// Si DatabaseURL y Host están vacíos la bitácora queda deshabilitada.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Enabled indica si hay una base configurada.
func (c DBConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.Host != ""
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// UIConfig valores por defecto de las vistas de listado.
type UIConfig struct {
	DefaultRowsPerPage int
	RowsPerPageOptions []int
	ViewTTL            time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "manufactura-admin"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "BACKEND_URL", "http://localhost:8000"), "/"),
			Timeout: time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Extraction: ExtractionConfig{
			BaseURL: strings.TrimRight(getString(v, "EXTRACTION_URL", ""), "/"),
			Timeout: time.Duration(getInt(v, "EXTRACTION_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "manufactura-admin"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "manufactura_admin"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		UI: UIConfig{
			DefaultRowsPerPage: getInt(v, "UI_DEFAULT_ROWS_PER_PAGE", 10),
			RowsPerPageOptions: getIntList(v, "UI_ROWS_PER_PAGE_OPTIONS", []int{10, 25, 50, 100}),
			ViewTTL:            time.Duration(getInt(v, "UI_VIEW_TTL_MINUTES", 30)) * time.Minute,
		},
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: BACKEND_URL es requerido")
	}
	if cfg.UI.DefaultRowsPerPage <= 0 {
		cfg.UI.DefaultRowsPerPage = cfg.UI.RowsPerPageOptions[0]
	}
	return cfg, nil
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
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getIntList lee listas "10,25,50"; entradas no numéricas se ignoran.
func getIntList(v *viper.Viper, key string, def []int) []int {
	if !v.IsSet(key) {
		return def
	}
	var out []int
	for _, part := range strings.Split(v.GetString(key), ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return def
	}
	return out
}
