package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/internal/userrepo"
	"github.com/go-petr/ledger/internal/userservice"
	"github.com/go-petr/ledger/pkg/dbpkg"
)

var newUser struct {
	username string
	password string
	fullname string
	email    string
	role     string
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage ledger users",
}

// userCreateCmd is the only way to create an admin: public sign up always yields members.
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user with the given role",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			logger.Error().Err(err).Msg("cannot connect to database")
			return err
		}
		defer db.Close()

		service := userservice.New(userrepo.NewRepoPGS(db))

		user, err := service.Create(cmd.Context(), newUser.username, newUser.password,
			newUser.fullname, newUser.email, newUser.role)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created %s with role %s\n", user.Username, user.Role)

		return nil
	},
}

func init() {
	flags := userCreateCmd.Flags()
	flags.StringVar(&newUser.username, "username", "", "username")
	flags.StringVar(&newUser.password, "password", "", "password")
	flags.StringVar(&newUser.fullname, "fullname", "", "full name")
	flags.StringVar(&newUser.email, "email", "", "email")
	flags.StringVar(&newUser.role, "role", domain.RoleMember, "member or admin")

	for _, name := range []string{"username", "password", "fullname", "email"} {
		_ = userCreateCmd.MarkFlagRequired(name)
	}

	userCmd.AddCommand(userCreateCmd)
}
