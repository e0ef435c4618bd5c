package bridge

import (
	"time"
)

// Config 桥接器配置
type Config struct {
	// PoolSize 阻塞任务协程池大小
	PoolSize int `json:"poolSize" yaml:"poolSize" mapstructure:"poolSize"`
	// Tick 时间轮精度，最小 1ms
	Tick time.Duration `json:"tick" yaml:"tick" mapstructure:"tick"`
	// WheelSize 时间轮槽数
	WheelSize int64 `json:"wheelSize" yaml:"wheelSize" mapstructure:"wheelSize"`
}

func DefaultConfig() *Config {
	return &Config{
		PoolSize:  64,
		Tick:      time.Millisecond,
		WheelSize: 3600,
	}
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.PoolSize <= 0 {
		c.PoolSize = def.PoolSize
	}
	if c.Tick < time.Millisecond {
		c.Tick = def.Tick
	}
	if c.WheelSize <= 0 {
		c.WheelSize = def.WheelSize
	}
}
