package profile

import (
	"github.com/open-mv-sandbox/ptero-sub000/internal/errs"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/bridge"
	"github.com/open-mv-sandbox/ptero-sub000/pkg/glog"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	KeyLog     = "log"
	KeyRuntime = "runtime"
	KeyBridge  = "bridge"
	KeyCodec   = "codec"
)

var (
	vp = viper.New()
)

// Config 进程配置
type Config struct {
	Log     glog.Config   `yaml:"log" mapstructure:"log"`
	Runtime RuntimeConfig `yaml:"runtime" mapstructure:"runtime"`
	Bridge  bridge.Config `yaml:"bridge" mapstructure:"bridge"`
	Codec   CodecConfig   `yaml:"codec" mapstructure:"codec"`
}

// RuntimeConfig World 运行参数
type RuntimeConfig struct {
	// MaxPasses 单次 RunUntilIdle 的最大处理轮数，0 表示不限制
	MaxPasses int `yaml:"maxPasses" mapstructure:"maxPasses"`
	// WarnUnstopped 关闭时报告仍存活的 actor
	WarnUnstopped bool `yaml:"warnUnstopped" mapstructure:"warnUnstopped"`
}

// CodecConfig 编解码中继使用的编解码器
type CodecConfig struct {
	// Name json, msgpack 或 proto
	Name string `yaml:"name" mapstructure:"name"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Log: *glog.DefaultConfig(),
		Runtime: RuntimeConfig{
			WarnUnstopped: true,
		},
		Bridge: *bridge.DefaultConfig(),
		Codec: CodecConfig{
			Name: "json",
		},
	}
}

// Init 读取 yaml 配置文件
func Init(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return errs.ErrReadConfigFileFailed(err)
	}
	vp = v
	glog.Debug("config loaded", zap.String("path", path))
	return nil
}

// Get 把 key 对应的配置解析到 cfg，文件中缺失的字段保留 cfg 原值
func Get(key string, cfg interface{}) error {
	if !vp.IsSet(key) {
		return nil
	}
	if err := vp.UnmarshalKey(key, cfg); err != nil {
		return errs.ErrUnmarshalConfigFailed(key, err)
	}
	return nil
}

// Load 读取配置文件并在默认配置上覆盖，path 为空时返回默认配置
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := Init(path); err != nil {
		return nil, err
	}
	sections := []struct {
		key string
		out interface{}
	}{
		{KeyLog, &cfg.Log},
		{KeyRuntime, &cfg.Runtime},
		{KeyBridge, &cfg.Bridge},
		{KeyCodec, &cfg.Codec},
	}
	for _, s := range sections {
		if err := Get(s.key, s.out); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Dump 以 yaml 输出配置
func Dump(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
