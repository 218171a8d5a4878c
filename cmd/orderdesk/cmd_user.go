package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

var (
	createStaff    bool
	createPassword string
)

var userCreateCmd = &cobra.Command{
	Use:   "user:create <username> <email>",
	Short: "Create a user; the password comes from --password or ORDERDESK_PASSWORD",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword()
		if err != nil {
			return err
		}

		return withDB(func(db *gorm.DB) error {
			svc := authService(db)
			user, err := svc.Register(cmd.Context(), services.SignupInput{
				Username: args[0],
				Email:    args[1],
				Password: password,
				IsActive: true,
			})
			if err != nil {
				return describe(err)
			}
			if createStaff {
				if user, err = svc.Promote(cmd.Context(), user.Username); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id=%d, staff=%t)\n", user.Username, user.ID, user.IsStaff)
			return nil
		})
	},
}

var userPromoteCmd = &cobra.Command{
	Use:   "user:promote <username>",
	Short: "Grant staff to an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			user, err := authService(db).Promote(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %q is now staff\n", user.Username)
			return nil
		})
	},
}

func init() {
	userCreateCmd.Flags().BoolVar(&createStaff, "staff", false, "grant staff to the new user")
	userCreateCmd.Flags().StringVar(&createPassword, "password", "", "password for the new user")
}

func authService(db *gorm.DB) *services.AuthService {
	return services.NewAuthService(
		repositories.NewStore(db),
		auth.NewTokenService(config.JWTSecret(), config.AccessTokenTTL(), config.RefreshTokenTTL(), nil),
		auth.NewPasswordHasher(config.BcryptCost()),
	)
}

func readPassword() (string, error) {
	if createPassword != "" {
		return createPassword, nil
	}
	if p := strings.TrimSpace(os.Getenv("ORDERDESK_PASSWORD")); p != "" {
		return p, nil
	}
	return "", errors.New("a password is required: pass --password or set ORDERDESK_PASSWORD")
}

// describe appends validation field errors to the message.
func describe(err error) error {
	var se *services.Error
	if errors.As(err, &se) && len(se.Fields) > 0 {
		return fmt.Errorf("%s (%s)", se.Message, validate.Summary(se.Fields))
	}
	return err
}
