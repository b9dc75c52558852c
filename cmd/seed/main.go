// seed prepara una base recién migrada: cuenta de administrador y catálogo inicial.
//
// Uso:
//
//	go run ./cmd/seed -admin-email admin@ucoffee.ua -admin-password secreto
//	go run ./cmd/seed -products catalogo.csv -charset windows-1251
//
// El CSV usa ';' como separador: title;description;price;image. Los títulos ya presentes
// en el catálogo se omiten, así que repetir la importación no duplica productos.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ucoffee-api/internal/application/auth"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
	"github.com/jhoicas/ucoffee-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ucoffee-api/pkg/config"
	"github.com/jhoicas/ucoffee-api/pkg/logger"
)

func main() {
	adminEmail := flag.String("admin-email", "", "email de la cuenta de administrador a crear/asegurar")
	adminPassword := flag.String("admin-password", "", "password del administrador (solo si la cuenta no existe)")
	adminName := flag.String("admin-name", "Administrador", "nombre del administrador")
	productsPath := flag.String("products", "", "CSV de productos a importar")
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8, windows-1251, iso-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	if *adminEmail != "" {
		id, err := ensureAdmin(ctx, postgres.NewUserRepository(pool), postgres.NewTxRunner(pool), *adminName, *adminEmail, *adminPassword)
		if err != nil {
			log.Fatal().Err(err).Str("email", *adminEmail).Msg("crear administrador")
		}
		log.Info().Int64("user_id", id).Str("email", *adminEmail).Msg("administrador listo")
	}

	if *productsPath != "" {
		f, err := os.Open(*productsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir CSV")
		}
		defer f.Close()
		products, err := readCatalog(f, *charset)
		if err != nil {
			log.Fatal().Err(err).Str("file", *productsPath).Msg("leer CSV")
		}
		inserted, skipped, err := importCatalog(ctx, postgres.NewProductRepository(pool), products, time.Now())
		if err != nil {
			log.Fatal().Err(err).Int("inserted", inserted).Msg("importar catálogo")
		}
		log.Info().Int("inserted", inserted).Int("skipped", skipped).Str("file", *productsPath).Msg("catálogo importado")
	}
}

// ensureAdmin crea la cuenta si no existe y le asigna el rol admin. Es idempotente.
func ensureAdmin(ctx context.Context, users repository.UserRepository, tx auth.AccountTxRunner, name, email, password string) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	var userID int64
	err = tx.RunAccount(ctx, func(txUsers repository.UserRepository, roles repository.RoleRepository) error {
		if existing != nil {
			userID = existing.ID
		} else {
			if password == "" {
				return fmt.Errorf("-admin-password es requerido para crear la cuenta")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u := &entity.User{FullName: name, Email: email, PasswordHash: string(hash), Status: entity.UserStatusActive}
			if err := txUsers.Create(ctx, u); err != nil {
				return err
			}
			userID = u.ID
		}
		role, err := roles.FindByName(ctx, entity.RoleAdmin)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("rol %q no existe; ¿migraciones aplicadas?", entity.RoleAdmin)
		}
		return roles.Assign(ctx, userID, role.ID)
	})
	return userID, err
}
