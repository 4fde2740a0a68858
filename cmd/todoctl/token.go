package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tasklist-api/domain/models"
	"tasklist-api/domain/repositories"
	"tasklist-api/pkg/utils"
)

func newIssueTokenCmd(a *app) *cobra.Command {
	var (
		subject utils.TokenSubject
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Sign a bearer token for a user id",
		Long: "Signs a JWT with JWT_SECRET. When --user-id is the uuid of an existing account the\n" +
			"name and email come from the database, otherwise from the flags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject.UserID = strings.TrimSpace(subject.UserID)
			if subject.UserID == "" {
				return errors.New("--user-id is required")
			}

			c, err := a.boot()
			if err != nil {
				return err
			}
			defer a.close()

			if id, err := uuid.Parse(subject.UserID); err == nil {
				user, err := c.UserRepository.GetByID(cmd.Context(), id)
				switch {
				case err == nil:
					subject.Username = user.Username
					subject.Email = user.Email
					subject.FirstName = user.FirstName
					subject.LastName = user.LastName
					subject.Role = user.Role
				case !errors.Is(err, repositories.ErrNotFound):
					return fmt.Errorf("failed to load user: %w", err)
				}
			}

			if ttl <= 0 {
				ttl = c.Config.JWT.TTL
			}

			token, expiresAt, err := utils.GenerateToken(subject, c.Config.JWT.Secret, ttl)
			if err != nil {
				return err
			}

			return a.writeOut(cmd, map[string]any{
				"token":     token,
				"userId":    subject.UserID,
				"expiresAt": expiresAt.UTC().Format(time.RFC3339),
			})
		},
	}

	cmd.Flags().StringVar(&subject.UserID, "user-id", "", "User id to put in the token (required)")
	cmd.Flags().StringVar(&subject.Username, "username", "", "Username claim")
	cmd.Flags().StringVar(&subject.Email, "email", "", "Email claim")
	cmd.Flags().StringVar(&subject.FirstName, "first-name", "", "First name claim")
	cmd.Flags().StringVar(&subject.LastName, "last-name", "", "Last name claim")
	cmd.Flags().StringVar(&subject.Role, "role", models.RoleUser, "Role claim (admin unlocks /api/v1/admin)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default JWT_TTL_HOURS)")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
