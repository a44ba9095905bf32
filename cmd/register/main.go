package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"regexp"

	"memecoin-client-go/internal/api"
	"memecoin-client-go/internal/common"
	"memecoin-client-go/internal/config"
	"memecoin-client-go/internal/models"

	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

func validateUsername(name string) error {
	if name == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(name) < 2 {
		return fmt.Errorf("username must be at least 2 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func main() {
	// Parse command line flags
	usernameFlag := flag.String("username", "", "Account username (required)")
	emailFlag := flag.String("email", "", "Account email address (required)")
	passwordFlag := flag.String("password", "", "Account password (defaults to API_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger, _ := zap.NewProduction()
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger(cfg.LogLevel)
	defer loggerCleanup()

	password := *passwordFlag
	if password == "" {
		password = cfg.Auth.Password
	}

	// Validate required flags
	if *usernameFlag == "" || *emailFlag == "" {
		zap.L().Fatal("Both flags are required: --username and --email")
	}
	if err := validateUsername(*usernameFlag); err != nil {
		zap.L().Fatal("Invalid username", zap.Error(err))
	}
	if err := validateEmail(*emailFlag); err != nil {
		zap.L().Fatal("Invalid email", zap.Error(err))
	}
	if err := validatePassword(password); err != nil {
		zap.L().Fatal("Invalid password", zap.Error(err))
	}

	ctx := context.Background()

	// The journal is not needed to register
	cfg.Database.Path = ""
	services, err := common.InitializeServices(ctx, zap.L(), cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	zap.L().Info("Registering account",
		zap.String("username", *usernameFlag),
		zap.String("email", *emailFlag))

	resp, err := services.API.Register(ctx, models.NewUser{
		Email:    *emailFlag,
		Password: password,
		Username: *usernameFlag,
	})
	if err != nil {
		if api.StatusCode(err) == http.StatusConflict {
			zap.L().Fatal("Account already exists with this email", zap.String("email", *emailFlag))
		}
		zap.L().Fatal("Failed to register account", zap.Error(err))
	}

	fmt.Println()
	common.PrintHeader(os.Stdout, "ACCOUNT REGISTERED", common.DefaultWidth)
	fmt.Printf("ID:       %d\n", resp.Data.User.Id)
	fmt.Printf("Username: %s\n", resp.Data.User.Username)
	fmt.Printf("Email:    %s\n", resp.Data.User.Email)
	fmt.Printf("Token:    %s\n", common.Truncate(resp.Data.Token, 24))
	common.PrintSeparator(os.Stdout, "=", common.DefaultWidth)
	fmt.Println()
	fmt.Println("Set API_EMAIL and API_PASSWORD to use this account: go run cmd/main.go")
}
