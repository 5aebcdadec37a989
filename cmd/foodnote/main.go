package main

import (
	"Foodnote/config"
	"Foodnote/pkg/jwt"
	"Foodnote/pkg/log"
	"Foodnote/pkg/server"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func configPath(ctx *cli.Context) string {
	if p := ctx.String("config"); p != "" {
		return p
	}
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	var cfg *config.Config
	cliApp := &cli.App{
		Name:  "foodnote",
		Usage: "meal photo journal server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file, defaults to configs/config.$APP_ENV.yaml",
				EnvVars: []string{"FOODNOTE_CONFIG"},
			},
		},
		Before: func(ctx *cli.Context) error {
			var err error
			if cfg, err = config.New(configPath(ctx)); err != nil {
				return err
			}
			return log.Setup(cfg.Log)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					appProvider, err := InitServer(cfg)
					if err != nil {
						return err
					}
					return server.Run(ctx, appProvider)
				},
			},
			{
				Name:  "token",
				Usage: "issue an access token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Value: "foodnote", Usage: "token subject"},
					&cli.DurationFlag{Name: "expire", Usage: "token lifetime, defaults to jwt.expire"},
				},
				Action: func(ctx *cli.Context) error {
					if !cfg.Jwt.Enabled() {
						return errors.New("jwt.secret is not configured")
					}
					expire := ctx.Duration("expire")
					if expire == 0 {
						expire = cfg.Jwt.Expire
					}
					token, err := jwt.GenerateToken([]byte(cfg.Jwt.Secret), ctx.String("subject"), jwt.TokenTypeAccess, expire)
					if err != nil {
						return err
					}
					fmt.Fprintln(ctx.App.Writer, token)
					return nil
				},
			},
			{
				Name:  "config",
				Usage: "print effective config with secrets masked",
				Action: func(ctx *cli.Context) error {
					masked := cfg.Masked()
					return yaml.NewEncoder(ctx.App.Writer).Encode(&masked)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("foodnote exited", zap.Error(err))
	}
}
