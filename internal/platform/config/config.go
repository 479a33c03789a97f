package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// SourcePostgres は名簿を PostgreSQL から読み込みます。
	SourcePostgres = "postgres"
	// SourceCSV は名簿を CSV ファイルから読み込みます。
	SourceCSV = "csv"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Report   ReportConfig   `yaml:"report"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// HTTPConfig は JSON エンドポイントに関する設定です。ListenAddr が空なら起動しません。
type HTTPConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// LoggingConfig はロガーの設定です。
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	ApplicationName    string        `yaml:"application_name"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// ReportConfig はレポート生成と名簿ソースの設定です。
type ReportConfig struct {
	Source               string   `yaml:"source"`
	CSVPath              string   `yaml:"csv_path"`
	Table                string   `yaml:"table"`
	TrailingYears        int      `yaml:"trailing_years"`
	FiscalYearStartMonth int      `yaml:"fiscal_year_start_month"`
	Grouping             string   `yaml:"grouping"`
	Population           string   `yaml:"population"`
	FemaleLabel          string   `yaml:"female_label"`
	GenderBuckets        []string `yaml:"gender_buckets"`
	EducationBuckets     []string `yaml:"education_buckets"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	c.Logging.normalize()

	if err := c.Report.validateAndNormalize(); err != nil {
		return err
	}

	if c.Report.Source == SourcePostgres {
		if err := c.Database.validateAndNormalize(); err != nil {
			return err
		}
	}

	return nil
}

func (l *LoggingConfig) normalize() {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Encoding == "" {
		l.Encoding = "json"
	}
}

func (r *ReportConfig) validateAndNormalize() error {
	r.Source = strings.ToLower(strings.TrimSpace(r.Source))
	if r.Source == "" {
		r.Source = SourcePostgres
	}
	switch r.Source {
	case SourcePostgres:
		if r.Table == "" {
			r.Table = "employee_master"
		}
	case SourceCSV:
		if r.CSVPath == "" {
			return fmt.Errorf("config: report.csv_path must be set when report.source is csv")
		}
	default:
		return fmt.Errorf("config: report.source %q is not supported", r.Source)
	}

	if r.TrailingYears == 0 {
		r.TrailingYears = 5
	}
	if r.TrailingYears < 0 || r.TrailingYears > 20 {
		return fmt.Errorf("config: report.trailing_years must be between 1 and 20")
	}

	if r.FiscalYearStartMonth == 0 {
		r.FiscalYearStartMonth = int(time.April)
	}
	if r.FiscalYearStartMonth < 1 || r.FiscalYearStartMonth > 12 {
		return fmt.Errorf("config: report.fiscal_year_start_month must be between 1 and 12")
	}

	r.Grouping = strings.ToLower(strings.TrimSpace(r.Grouping))
	if r.Grouping == "" {
		r.Grouping = "indian"
	}
	if r.Grouping != "indian" && r.Grouping != "international" {
		return fmt.Errorf("config: report.grouping %q is not supported", r.Grouping)
	}

	r.Population = strings.ToLower(strings.TrimSpace(r.Population))
	if r.Population == "" {
		r.Population = "active"
	}
	if r.Population != "active" && r.Population != "all" {
		return fmt.Errorf("config: report.population %q is not supported", r.Population)
	}

	if strings.TrimSpace(r.FemaleLabel) == "" {
		r.FemaleLabel = "Female"
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx / golang-migrate 用の接続文字列を返します。認証情報はエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + strconv.Itoa(d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
