package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/viper"
	"github.com/varoOP/comicwatch/internal/app"
	"github.com/varoOP/comicwatch/internal/config"
	"github.com/varoOP/comicwatch/internal/domain"
	"github.com/varoOP/comicwatch/internal/logger"
)

// handler runs one poll per invocation. The trigger event carries nothing
// the job needs.
func handler(ctx context.Context, _ json.RawMessage) (*domain.RunResult, error) {
	v := viper.New()
	v.SetEnvPrefix("COMICWATCH")
	v.AutomaticEnv()
	config.SetDefaults(v)

	cfg, err := config.Load(v, time.Now())
	if err != nil {
		return nil, err
	}

	log := logger.NewJSONLogger(os.Stdout, cfg.Verbose)

	application, err := app.NewApp(ctx, log, cfg)
	if err != nil {
		log.Error().Stack().Err(err).Msg("failed to initialize application")
		return nil, err
	}
	defer application.Close()

	return application.Run(ctx)
}

func main() {
	lambda.Start(handler)
}
