package instrumentation

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/teemow/gapikit/internal/validation"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName defaults to "gapikit".
	ServiceName string `toml:"service_name"`

	ServiceVersion string `toml:"-"`

	// ServiceInstanceID defaults to the hostname.
	ServiceInstanceID string `toml:"service_instance_id"`

	Enabled bool `toml:"enabled"`

	MetricsExporter string `toml:"metrics_exporter" validate:"omitempty,oneof=prometheus otlp stdout"`
	TracingExporter string `toml:"tracing_exporter" validate:"omitempty,oneof=otlp stdout none"`

	// OTLPEndpoint is host:port without a scheme, e.g. "localhost:4318".
	OTLPEndpoint string `toml:"otlp_endpoint" validate:"omitempty,hostname_port"`

	// OTLPInsecure disables TLS for OTLP export. Development only.
	OTLPInsecure bool `toml:"otlp_insecure"`

	TraceSamplingRate float64 `toml:"trace_sampling_rate" validate:"gte=0,lte=1"`

	// DetailedLabels adds the account label to tool metrics.
	DetailedLabels bool `toml:"detailed_labels"`

	AuditLogging AuditLoggingConfig `toml:"audit"`
}

// AuditLoggingConfig holds configuration for audit logging of MCP tool calls.
type AuditLoggingConfig struct {
	Enabled bool `toml:"enabled"`

	// IncludePII logs Gmail user IDs and calendar IDs in clear text instead of
	// hashing them.
	IncludePII bool `toml:"include_pii"`
}

// DefaultConfig returns a Config populated from environment variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:       getEnvOrDefault("OTEL_SERVICE_NAME", "gapikit"),
		ServiceVersion:    "unknown",
		ServiceInstanceID: getEnvOrDefault("OTEL_SERVICE_INSTANCE_ID", ""),
		Enabled:           getEnvBoolOrDefault("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   getEnvOrDefault("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   getEnvOrDefault("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      getEnvBoolOrDefault("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: getEnvFloatOrDefault("OTEL_TRACES_SAMPLER_ARG", 0.1),
		DetailedLabels:    getEnvBoolOrDefault("METRICS_DETAILED_LABELS", false),
		AuditLogging: AuditLoggingConfig{
			Enabled:    getEnvBoolOrDefault("AUDIT_LOGGING_ENABLED", true),
			IncludePII: getEnvBoolOrDefault("AUDIT_LOGGING_INCLUDE_PII", false),
		},
	}
}

var validate = validation.New("toml")

// Validate checks exporter names, the sampling rate and OTLP requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}

	if c.OTLPEndpoint == "" && (c.TracingExporter == ExporterOTLP || c.MetricsExporter == ExporterOTLP) {
		return fmt.Errorf("OTLP endpoint is required when using an OTLP exporter")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// Label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	RefreshResultSuccess = "success"
	RefreshResultFailure = "failure"

	ServiceGmail    = "gmail"
	ServiceCalendar = "calendar"
	ServiceAuth     = "auth"

	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"

	DefaultMetricInterval = 10 * time.Second
)

// Operation names used as the operation label and in span names.
const (
	OperationList      = "list"
	OperationGet       = "get"
	OperationInsert    = "insert"
	OperationUpdate    = "update"
	OperationDelete    = "delete"
	OperationClear     = "clear"
	OperationImport    = "import"
	OperationMove      = "move"
	OperationQuickAdd  = "quick_add"
	OperationInstances = "instances"
	OperationSend      = "send"
	OperationModify    = "modify"
)
