// Command createadmin creates the first admin account. The password is
// read from the terminal without echo.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"streetbite/internal/config"
	"streetbite/internal/logging"
	"streetbite/internal/model"
	"streetbite/internal/repository"
	"streetbite/internal/service"
	"streetbite/internal/utils"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

var readPassword = func() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return string(b), err
}

func main() {
	email := flag.String("email", "", "admin email address")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	if err := run(*email, *name); err != nil {
		fmt.Fprintln(os.Stderr, "createadmin:", err)
		os.Exit(1)
	}
}

func run(email, name string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("-email is required")
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Env, cfg.SlogLevel(), os.Stderr)

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := readPassword()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := config.ConnectDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := config.AutoMigrate(ctx, pool, logger); err != nil {
		return err
	}

	auth := service.NewAuthService(
		repository.NewUserRepository(pool),
		utils.NewPasswordHasher(cfg.BcryptCost),
		utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiration()),
		service.WithInitialAdminEmail(email),
		service.WithLogger(logger),
	)

	user, err := auth.Register(ctx, model.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("created admin %s (id %d)\n", user.Email, user.ID)
	return nil
}
