package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1|max:65535"`
}

type StorageConfig struct {
	Driver       string        `yaml:"driver" validate:"required|in:memory,file,sqlite"`
	Path         string        `yaml:"path"`
	SaveInterval time.Duration `yaml:"saveInterval"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type GeoConfig struct {
	StorageKey     string        `yaml:"storageKey"`
	Endpoint       string        `yaml:"endpoint"`
	Enabled        bool          `yaml:"enabled"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	MaximumAge     time.Duration `yaml:"maximumAge"`
	FetchTimeout   time.Duration `yaml:"fetchTimeout"`
}

type AnalyticsConfig struct {
	SeedKey      string `yaml:"seedKey"`
	DefaultRange int    `yaml:"defaultRange"`
	MaxRange     int    `yaml:"maxRange"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type EventsConfig struct {
	NatsUrl       string `yaml:"natsUrl"`
	SubjectPrefix string `yaml:"subjectPrefix"`
}

type IntakeConfig struct {
	RatePerSecond float64 `yaml:"ratePerSecond"`
	Burst         int     `yaml:"burst"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Logger    LoggerConfig    `yaml:"logger"`
	Storage   StorageConfig   `yaml:"storage"`
	Geo       GeoConfig       `yaml:"geo"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Events    EventsConfig    `yaml:"events"`
	Intake    IntakeConfig    `yaml:"intake"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}
