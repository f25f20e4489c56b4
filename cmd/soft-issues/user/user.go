// Package user implements the "user" command.
package user

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-issues/cmd"
	"github.com/charmbracelet/soft-issues/pkg/db"
	"github.com/charmbracelet/soft-issues/pkg/db/models"
	"github.com/charmbracelet/soft-issues/pkg/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// ErrUserNotFound is returned when a user does not exist.
var ErrUserNotFound = errors.New("user not found")

// Options describes a user to create.
type Options struct {
	Username      string
	Email         string
	GravatarEmail string
	Password      string
	Biography     string
	Verified      bool
}

// GravatarEmail returns the address Gravatar hashes for email.
func GravatarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// New builds a user record with a fresh ID and a bcrypt password hash.
// An empty biography is stored as absent.
func New(opts Options) (models.User, error) {
	if strings.TrimSpace(opts.Username) == "" {
		return models.User{}, errors.New("username is required")
	}
	if opts.Password == "" {
		return models.User{}, errors.New("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	gravatar := opts.GravatarEmail
	if gravatar == "" {
		gravatar = GravatarEmail(opts.Email)
	}

	return models.User{
		ID:                   uuid.New(),
		Username:             opts.Username,
		EmailAddress:         opts.Email,
		GravatarEmailAddress: gravatar,
		AccountVerified:      opts.Verified,
		PasswordHash:         string(hash),
		Biography: sql.NullString{
			String: opts.Biography,
			Valid:  opts.Biography != "",
		},
	}, nil
}

// Command returns the user command.
func Command() *cobra.Command {
	var asJSON bool

	userCmd := &cobra.Command{
		Use:                "user",
		Aliases:            []string{"users"},
		Short:              "Manage users",
		PersistentPreRunE:  cmd.InitStoreContext,
		PersistentPostRunE: cmd.CloseDBContext,
	}

	userCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "output as JSON")

	var opts Options
	userCreateCommand := &cobra.Command{
		Use:   "create USERNAME",
		Short: "Create a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(co *cobra.Command, args []string) error {
			ctx, cancel := cmd.QueryContext(co.Context())
			defer cancel()

			opts.Username = args[0]
			u, err := New(opts)
			if err != nil {
				return err
			}

			st := store.FromContext(ctx)
			if err := st.InsertUser(ctx, db.FromContext(ctx), u); err != nil {
				if errors.Is(err, db.ErrDuplicateKey) {
					return fmt.Errorf("user %s already exists", u.ID)
				}
				return err
			}

			log.FromContext(ctx).Debug("user created", "id", u.ID, "username", u.Username)
			fmt.Fprintln(co.OutOrStdout(), u.ID)
			return nil
		},
	}

	userCreateCommand.Flags().StringVarP(&opts.Email, "email", "e", "", "email address")
	userCreateCommand.Flags().StringVar(&opts.GravatarEmail, "gravatar-email", "", "gravatar email address (defaults to the email address)")
	userCreateCommand.Flags().StringVarP(&opts.Password, "password", "p", "", "password")
	userCreateCommand.Flags().StringVarP(&opts.Biography, "bio", "b", "", "biography")
	userCreateCommand.Flags().BoolVar(&opts.Verified, "verified", false, "mark the account as verified")

	userInfoCommand := &cobra.Command{
		Use:   "info ID",
		Short: "Show information about a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(co *cobra.Command, args []string) error {
			ctx, cancel := cmd.QueryContext(co.Context())
			defer cancel()

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}

			st := store.FromContext(ctx)
			u, ok, err := st.TryFindUserByID(ctx, db.FromContext(ctx), id)
			if err != nil {
				return err
			}
			if !ok {
				return ErrUserNotFound
			}

			w := co.OutOrStdout()
			if asJSON {
				return cmd.WriteJSON(w, u)
			}

			fmt.Fprintf(w, "ID: %s\n", u.ID)
			fmt.Fprintf(w, "Username: %s\n", u.Username)
			fmt.Fprintf(w, "Email: %s\n", u.EmailAddress)
			fmt.Fprintf(w, "Gravatar email: %s\n", u.GravatarEmailAddress)
			fmt.Fprintf(w, "Verified: %t\n", u.AccountVerified)
			if u.Biography.Valid {
				fmt.Fprintf(w, "Biography: %s\n", u.Biography.String)
			}

			return nil
		},
	}

	userCmd.AddCommand(
		userCreateCommand,
		userInfoCommand,
	)

	return userCmd
}
