package glog

import (
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	// Path 日志文件路径，为空时只输出到控制台
	Path string `json:"path" yaml:"path" mapstructure:"path"`
	// Level 日志级别: debug, info, warn, error, dpanic, panic, fatal
	Level string `json:"level" yaml:"level" mapstructure:"level"`
	// PrintConsole 是否同时输出到控制台
	PrintConsole bool `json:"printConsole" yaml:"printConsole" mapstructure:"printConsole"`
	// File 文件切割配置（lumberjack）
	File FileConfig `json:"file" yaml:"file" mapstructure:"file"`
}

// FileConfig 文件日志切割配置
type FileConfig struct {
	// MaxSize 单个日志文件最大大小（MB）
	MaxSize int `json:"maxSize" yaml:"maxSize" mapstructure:"maxSize"`
	// MaxBackups 最多保留的旧文件数
	MaxBackups int `json:"maxBackups" yaml:"maxBackups" mapstructure:"maxBackups"`
	// MaxAge 旧文件保留天数
	MaxAge int `json:"maxAge" yaml:"maxAge" mapstructure:"maxAge"`
	// Compress 是否压缩旧文件
	Compress bool `json:"compress" yaml:"compress" mapstructure:"compress"`
	// LocalTime 切割文件名是否使用本地时间
	LocalTime bool `json:"localTime" yaml:"localTime" mapstructure:"localTime"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Path:         "./logs/ptero.log",
		Level:        "info",
		PrintConsole: true,
		File: FileConfig{
			MaxSize:    500,
			MaxBackups: 100,
			MaxAge:     30,
			LocalTime:  true,
		},
	}
}

// consoleConfig 包初始化时使用的配置，不写文件
func consoleConfig() *Config {
	cfg := DefaultConfig()
	cfg.Path = ""
	cfg.Level = "warn"
	return cfg
}

// parseLevel 解析日志级别，无法识别时回退到 info
func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
