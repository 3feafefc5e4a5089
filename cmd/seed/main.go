// seed administra la base de StockFlow: crea el esquema, carga datos de demostración,
// importa catálogos CSV y emite tokens JWT de desarrollo.
//
// Uso: go run ./cmd/seed <schema|demo|catalog|token> [flags]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/jwt"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

type poolKey struct{}

type cfgKey struct{}

func loadConfig(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	c.Context = context.WithValue(c.Context, cfgKey{}, cfg)
	return nil
}

func initDB(c *cli.Context) error {
	if err := loadConfig(c); err != nil {
		return err
	}
	pool, err := postgres.NewPool(c.Context, configFrom(c).DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	c.Context = context.WithValue(c.Context, poolKey{}, pool)
	return nil
}

func closeDB(c *cli.Context) error {
	if pool, ok := c.Context.Value(poolKey{}).(*pgxpool.Pool); ok && pool != nil {
		pool.Close()
	}
	return nil
}

func configFrom(c *cli.Context) *config.Config {
	cfg, _ := c.Context.Value(cfgKey{}).(*config.Config)
	return cfg
}

func poolFrom(c *cli.Context) *pgxpool.Pool {
	pool, _ := c.Context.Value(poolKey{}).(*pgxpool.Pool)
	return pool
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "aviso: no se pudo cargar .env: %v\n", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Esquema, datos de demostración y utilidades de StockFlow",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Crea las tablas e índices que falten",
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					if err := postgres.ApplySchema(c.Context, poolFrom(c)); err != nil {
						return err
					}
					log.Info().Msg("esquema aplicado")
					return nil
				},
			},
			{
				Name:   "demo",
				Usage:  "Crea una empresa de demostración con stock bajo, ventas y proveedores",
				Before: initDB,
				After:  closeDB,
				Action: runDemo,
			},
			{
				Name:  "catalog",
				Usage: "Importa productos desde un CSV separado por ';' (sku;name;price;threshold;quantity)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "Ruta del CSV", Required: true},
					&cli.StringFlag{Name: "company-id", Usage: "Empresa destino", Required: true, EnvVars: []string{"SEED_COMPANY_ID"}},
					&cli.StringFlag{Name: "warehouse-id", Usage: "Bodega del stock inicial", Required: true, EnvVars: []string{"SEED_WAREHOUSE_ID"}},
					&cli.StringFlag{Name: "charset", Usage: "utf-8 | latin1", Value: "utf-8"},
				},
				Before: initDB,
				After:  closeDB,
				Action: runCatalog,
			},
			{
				Name:  "token",
				Usage: "Emite un JWT de desarrollo para una empresa",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "company-id", Required: true},
					&cli.StringFlag{Name: "user-id", Value: "00000000-0000-0000-0000-000000000001"},
					&cli.StringFlag{Name: "role", Value: "admin"},
				},
				Before: loadConfig,
				Action: func(c *cli.Context) error {
					cfg := configFrom(c)
					tok, err := jwt.Generate(cfg.JWT.Secret, c.String("user-id"), c.String("company-id"), c.String("role"), cfg.JWT.Issuer, cfg.JWT.Expiration)
					if err != nil {
						return err
					}
					fmt.Println(tok)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}
