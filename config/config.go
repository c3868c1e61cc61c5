package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Backend      BackendConfig      `mapstructure:"backend"`
	Session      SessionConfig      `mapstructure:"session"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Queue        QueueConfig        `mapstructure:"queue"`
	OSS          OSSConfig          `mapstructure:"oss"`
	CORS         CORSConfig         `mapstructure:"cors"`
	Upload       UploadConfig       `mapstructure:"upload"`
	Notification NotificationConfig `mapstructure:"notification"`
	Activity     ActivityConfig     `mapstructure:"activity"`
	Site         SiteConfig         `mapstructure:"site"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// BackendConfig 远端 REST 接口
type BackendConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout 请求超时，未配置时为 0（使用 http.Client 默认行为）
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig 登录态 cookie（存放后端签发的 bearer token）
type SessionConfig struct {
	CookieName   string `mapstructure:"cookie_name"`
	CookieDomain string `mapstructure:"cookie_domain"`
	Secure       bool   `mapstructure:"secure"`
	MaxAgeHours  int    `mapstructure:"max_age_hours"`
	// 与后端共享的签名密钥，留空时只解析不验签
	JWTSecret string `mapstructure:"jwt_secret"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type QueueConfig struct {
	ImportQueue string `mapstructure:"import_queue"`
	MaxWorkers  int    `mapstructure:"max_workers"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	CDNDomain       string `mapstructure:"cdn_domain"`
}

// Enabled OSS 是否已配置
func (c OSSConfig) Enabled() bool {
	return c.Endpoint != "" && c.AccessKeyID != ""
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type UploadConfig struct {
	MaxSize          int64    `mapstructure:"max_size"`          // 图片最大字节数
	MaxImportSize    int64    `mapstructure:"max_import_size"`   // 表格最大字节数
	TempDir          string   `mapstructure:"temp_dir"`          // 导入文件暂存目录
	ExpireHours      int      `mapstructure:"expire_hours"`      // 暂存文件过期时间（小时）
	ImageExtensions  []string `mapstructure:"image_extensions"`  // 允许的图片扩展名
	ImportExtensions []string `mapstructure:"import_extensions"` // 允许的表格扩展名
}

type NotificationConfig struct {
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds"`
}

// PollInterval 轮询间隔，默认 20 秒
func (c NotificationConfig) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

type ActivityConfig struct {
	RetentionDays int `mapstructure:"retention_days"`
}

type SiteConfig struct {
	Name            string `mapstructure:"name"`
	Description     string `mapstructure:"description"`
	PostsPageSize   int    `mapstructure:"posts_page_size"`
	CommentPageSize int    `mapstructure:"comment_page_size"`
}

func Load(configPath string) (*Config, error) {
	// .env 只用于本地开发，不存在时忽略
	_ = godotenv.Load()

	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// 环境变量覆盖，例如 BACKEND_BASE_URL
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("backend.base_url", "http://localhost:8080/api")
	v.SetDefault("session.cookie_name", "token")
	v.SetDefault("session.max_age_hours", 72)
	v.SetDefault("queue.import_queue", "blog:import_jobs")
	v.SetDefault("queue.max_workers", 2)
	v.SetDefault("upload.max_size", 5<<20)
	v.SetDefault("upload.max_import_size", 20<<20)
	v.SetDefault("upload.temp_dir", filepath.Join(os.TempDir(), "blog_imports"))
	v.SetDefault("upload.expire_hours", 24)
	v.SetDefault("upload.image_extensions", []string{".jpg", ".jpeg", ".png", ".gif", ".webp"})
	v.SetDefault("upload.import_extensions", []string{".xlsx", ".csv"})
	v.SetDefault("notification.poll_interval_seconds", 20)
	v.SetDefault("activity.retention_days", 90)
	v.SetDefault("site.name", "Blog")
	v.SetDefault("site.posts_page_size", 10)
	v.SetDefault("site.comment_page_size", 50)
}
