package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
	PDF          PDFConfig
	Company      CompanyConfig
	Order        OrderConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PROCURE_APP_ENV" required:"true"`
	Port         string `envconfig:"PROCURE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PROCURE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PROCURE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PROCURE_DB_DSN"`
	Driver string `envconfig:"PROCURE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PROCURE_DB_HOST"`
	LegacyPort     int    `envconfig:"PROCURE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PROCURE_DB_USER"`
	LegacyPassword string `envconfig:"PROCURE_DB_PASSWORD"`
	LegacyName     string `envconfig:"PROCURE_DB_NAME"`
	LegacySSLMode  string `envconfig:"PROCURE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PROCURE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROCURE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROCURE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROCURE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PROCURE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PROCURE_AUTO_MIGRATE" default:"false"`
}

// PDFConfig points at the external document-generation service.
type PDFConfig struct {
	RendererURL string        `envconfig:"PROCURE_PDF_RENDERER_URL" required:"true"`
	Timeout     time.Duration `envconfig:"PROCURE_PDF_TIMEOUT" default:"30s"`
}

// CompanyConfig carries the letterhead block stamped on every export.
type CompanyConfig struct {
	Name    string `envconfig:"PROCURE_COMPANY_NAME" default:"ABHYUDYAYA TECHNO SOLUTIONS PRIVATE LIMITED"`
	Address string `envconfig:"PROCURE_COMPANY_ADDRESS" default:"No.6, Kothari Holdings, Shirur Park Main Road, Vidyanagar, Hubli, Karnataka, India -580021"`
	GSTIN   string `envconfig:"PROCURE_COMPANY_GSTIN" default:"29ABBCA6681J1Z9"`
	Phone   string `envconfig:"PROCURE_COMPANY_PHONE" default:"+91 7337820923"`
	Email   string `envconfig:"PROCURE_COMPANY_EMAIL" default:"info@abhyudyayatech.com"`
}

// OrderConfig holds order-level defaults applied when a draft omits them.
type OrderConfig struct {
	DefaultTaxRatePercent   float64 `envconfig:"PROCURE_DEFAULT_TAX_RATE" default:"18"`
	DefaultShippingAddress  string  `envconfig:"PROCURE_DEFAULT_SHIPPING_ADDRESS" default:"ABHYUDYAYA TECHNO SOLUTIONS PRIVATE LIMITED\n#6, Kothari Holdings, Shirur Park Main Road,\nOpp Sukruti Collage, Vidyanagar Hubli,\nHubli, 580021 Karnataka, KA, India\ninfo@abhyudyayatech.com"`
	PriceInclusiveTaxDivide float64 `envconfig:"PROCURE_PRICE_TAX_DIVISOR" default:"1.18"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
