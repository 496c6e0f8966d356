package config

import (
	"os"
	"path"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
	// TokenTTL is the issued token lifetime in seconds.
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// UploadConfig names the two image directories and the public base url used
// when projecting stored filenames to retrieval urls.
type UploadConfig struct {
	ProductImageDir string `yaml:"product_image_dir" json:"product_image_dir"`
	CommentImageDir string `yaml:"comment_image_dir" json:"comment_image_dir"`
	ProfileImageDir string `yaml:"profile_image_dir" json:"profile_image_dir"`
	PublicBaseURL   string `yaml:"public_base_url" json:"public_base_url"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Uploads  UploadConfig `yaml:"uploads" json:"uploads"`
	Logger   LogConfig    `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "bargain",
		Location: "Asia/Seoul",
		Workdir:  "/var/bargain",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1898,
		JwtSecret: "9b6de5cc-xxxx-xxxx-xxxx-0f378ee2aae7",
		TokenTTL:  86400,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "bargain",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Uploads: UploadConfig{
		ProductImageDir: "/var/bargain/products/images",
		CommentImageDir: "/var/bargain/productcomment/images",
		ProfileImageDir: "/var/bargain/users/images",
		PublicBaseURL:   "https://file.bargainus.kr",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/bargain/bargain.log",
	},
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(path.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(path.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(c.Uploads.ProductImageDir, 0755)
	_ = os.MkdirAll(c.Uploads.CommentImageDir, 0755)
	_ = os.MkdirAll(c.Uploads.ProfileImageDir, 0755)
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := cast.ToInt64E(evalue)
	if err == nil {
		f(p)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := cast.ToBoolE(evalue)
	if err == nil {
		f(p)
	}
}

// LoadConfig loads the yaml file at cfile when it exists, otherwise starts
// from defaults, then applies BARGAIN_* environment overrides.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("BARGAIN_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvBoolValue("BARGAIN_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("BARGAIN_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvInt64Value("BARGAIN_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("BARGAIN_WEB_JWT_SECRET", func(v string) { cfg.Web.JwtSecret = v })
	setEnvInt64Value("BARGAIN_WEB_TOKEN_TTL", func(v int64) { cfg.Web.TokenTTL = int(v) })

	setEnvValue("BARGAIN_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("BARGAIN_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt64Value("BARGAIN_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("BARGAIN_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("BARGAIN_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("BARGAIN_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvBoolValue("BARGAIN_DB_DEBUG", func(v bool) { cfg.Database.Debug = v })

	setEnvValue("BARGAIN_UPLOADS_PRODUCT_DIR", func(v string) { cfg.Uploads.ProductImageDir = v })
	setEnvValue("BARGAIN_UPLOADS_COMMENT_DIR", func(v string) { cfg.Uploads.CommentImageDir = v })
	setEnvValue("BARGAIN_UPLOADS_PROFILE_DIR", func(v string) { cfg.Uploads.ProfileImageDir = v })
	setEnvValue("BARGAIN_UPLOADS_PUBLIC_BASE_URL", func(v string) { cfg.Uploads.PublicBaseURL = v })

	setEnvValue("BARGAIN_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("BARGAIN_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })
	setEnvValue("BARGAIN_LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })

	cfg.initDirs()
	return cfg
}
