package app

import (
	"time"

	"github.com/Arokeji/Nailted-Back/core/server"
	"github.com/Arokeji/Nailted-Back/integration/database/mongo"
	"github.com/Arokeji/Nailted-Back/integration/database/redis"
	"github.com/Arokeji/Nailted-Back/integration/email/postmark"
)

type Config struct {
	Server   server.Config
	Mongo    mongo.Config
	Redis    redis.Config
	Postmark postmark.Config

	AppName  string `env:"APP_NAME" envDefault:"nailted-quizz"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	EmailDevDir   string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
	EmailIndexKey string `env:"EMAIL_INDEX_KEY,required"`
	EmailHashCost int    `env:"EMAIL_HASH_COST" envDefault:"10"`

	SendResultsLimit  int           `env:"SEND_RESULTS_LIMIT" envDefault:"5"`
	SendResultsWindow time.Duration `env:"SEND_RESULTS_WINDOW" envDefault:"1h"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
	CORSMaxAge       int      `env:"CORS_MAX_AGE" envDefault:"600"`
}
