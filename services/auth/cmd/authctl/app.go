package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	pkgconfig "github.com/Skotchmaster/storefront/pkg/config"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/services/auth/internal/migrations"
	"github.com/Skotchmaster/storefront/services/auth/internal/models"
	"github.com/Skotchmaster/storefront/services/auth/internal/repo"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "authctl",
		Usage: "Administer the auth service database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-driver",
				Value:   pkgconfig.DriverPostgres,
				Usage:   "Database driver (postgres, sqlite)",
				Sources: cli.EnvVars("DATABASE_DRIVER"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database DSN",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "json",
				Usage:   "Log format (json, text)",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger := logging.NewWithWriter(cmd.Root().ErrWriter, cmd.String("log-level"), cmd.String("log-format"))
			return logging.IntoContext(ctx, logger), nil
		},
		Commands: []*cli.Command{
			migrateCommand(),
			createAccountCommand(),
			setActiveCommand(),
			hashPasswordCommand(),
		},
	}
}

func openDB(ctx context.Context, cmd *cli.Command) (*gorm.DB, string, error) {
	driver := cmd.String("database-driver")
	if err := pkgconfig.OneOf(driver, "DATABASE_DRIVER", pkgconfig.DriverPostgres, pkgconfig.DriverSQLite); err != nil {
		return nil, "", err
	}
	db, err := pkgdb.Open(ctx, driver, cmd.String("database-url"))
	if err != nil {
		return nil, "", err
	}
	return db, driver, nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply the accounts schema",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			db, driver, err := openDB(ctx, cmd)
			if err != nil {
				return err
			}
			defer pkgdb.Close(db)

			if err := migrations.Up(db, driver); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logging.FromContext(ctx).Info("migrate_done", "driver", driver)
			return nil
		},
	}
}

func createAccountCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-account",
		Usage: "Create an account with a bcrypt-hashed password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "first-name"},
			&cli.StringFlag{Name: "last-name"},
			&cli.StringFlag{Name: "phone"},
			&cli.BoolFlag{Name: "inactive", Usage: "Create the account deactivated"},
			&cli.BoolFlag{Name: "verified", Usage: "Mark the email as verified"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			email := models.NormalizeEmail(cmd.String("email"))
			password := cmd.String("password")
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			pwHash, err := hash.HashPassword(password)
			if err != nil {
				return err
			}

			db, _, err := openDB(ctx, cmd)
			if err != nil {
				return err
			}
			defer pkgdb.Close(db)

			account := &models.Account{
				Email:        email,
				PasswordHash: pwHash,
				FirstName:    cmd.String("first-name"),
				LastName:     cmd.String("last-name"),
				Phone:        cmd.String("phone"),
				IsActive:     !cmd.Bool("inactive"),
				IsVerified:   cmd.Bool("verified"),
			}
			r := &repo.GormRepo{DB: db}
			if err := r.CreateAccountIfNotExists(ctx, account); err != nil {
				return fmt.Errorf("create account %s: %w", email, err)
			}

			logging.FromContext(ctx).Info("account_created", "account_id", account.ID, "active", account.IsActive)
			_, err = fmt.Fprintln(cmd.Root().Writer, account.ID)
			return err
		},
	}
}

func setActiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "set-active",
		Usage: "Activate or deactivate an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.BoolFlag{Name: "active", Value: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			db, _, err := openDB(ctx, cmd)
			if err != nil {
				return err
			}
			defer pkgdb.Close(db)

			email := cmd.String("email")
			active := cmd.Bool("active")
			r := &repo.GormRepo{DB: db}
			if err := r.SetActive(ctx, email, active); err != nil {
				return fmt.Errorf("set-active %s: %w", email, err)
			}
			logging.FromContext(ctx).Info("account_active_changed", "email", models.NormalizeEmail(email), "active", active)
			return nil
		},
	}
}

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Print the bcrypt digest of a password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			h, err := hash.HashPassword(cmd.String("password"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, h)
			return err
		},
	}
}
