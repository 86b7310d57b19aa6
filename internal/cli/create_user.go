package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/careerpath/internal/auth"
	"github.com/mrlokans/careerpath/internal/config"
	"github.com/mrlokans/careerpath/internal/database"
	"github.com/mrlokans/careerpath/internal/database/users"
)

// CreateUserCommand registers an account directly in the database.
type CreateUserCommand struct {
	Database   config.Database
	BcryptCost int
	FullName   string
	Username   string
	Email      string
	Password   string

	// Password is read from here when the flag is empty
	Stdin io.Reader
	Out   io.Writer
}

func NewCreateUserCommand(cfg *config.Config) *CreateUserCommand {
	return &CreateUserCommand{
		Database:   cfg.Database,
		BcryptCost: cfg.Auth.BcryptCost,
		Stdin:      os.Stdin,
		Out:        os.Stdout,
	}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, "Path to the sqlite database file")
	fs.StringVar(&cmd.FullName, "name", "", "Full name")
	fs.StringVar(&cmd.Username, "username", "", "Username (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password; read from stdin when omitted")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -username <name> -email <email> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account without going through the HTTP API.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  echo 'secret123' | %s create-user -username jane -email jane@example.com\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" || cmd.Email == "" {
		fs.Usage()
		return fmt.Errorf("username and email are required")
	}
	if cmd.FullName == "" {
		cmd.FullName = cmd.Username
	}
	return nil
}

func (cmd *CreateUserCommand) Run() error {
	password := cmd.Password
	if password == "" {
		fmt.Fprint(cmd.Out, "Password: ")
		line, err := bufio.NewReader(cmd.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
		fmt.Fprintln(cmd.Out)
	}

	db, err := database.NewDatabase(cmd.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	// Registration never mints a token, so no issuer is needed
	svc := auth.NewService(users.NewRepository(db.DB), nil, nil, config.Auth{BcryptCost: cmd.BcryptCost})
	user, err := svc.Register(context.Background(), auth.Registration{
		FullName: cmd.FullName,
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Created user %s (%s)\n", user.Username, user.ID)
	return nil
}
