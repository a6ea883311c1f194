package config

const (
	DefaultLogLevel   = "info"
	DefaultOutputPath = "resultado.json"
)

type Settings struct {
	LogLevel string `yaml:"LOG_LEVEL"`

	OutputPath      string `yaml:"OUTPUT_PATH"`
	AnswerPath      string `yaml:"ANSWER_PATH"`
	MetricsTextfile string `yaml:"METRICS_TEXTFILE"`
	VerifyOutput    bool   `yaml:"VERIFY_OUTPUT"`
}

// WithDefaults returns a copy with empty log level and output path filled in.
func (s Settings) WithDefaults() Settings {
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.OutputPath == "" {
		s.OutputPath = DefaultOutputPath
	}
	return s
}
