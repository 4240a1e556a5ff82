package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	var in service.AccountInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(cmd.Context(), dbOptions(cfg, false))
			if err != nil {
				return err
			}
			defer db.Close()

			identity := service.NewIdentityService(repository.NewSQLStore(db), service.IdentityConfig{
				JWTSecret:  cfg.JWTSecret,
				AccessTTL:  cfg.AccessTTL(),
				RefreshTTL: cfg.RefreshTTL(),
				BcryptCost: cfg.BcryptCost,
			}, zap.NewNop())
			a, err := identity.CreateAccount(cmd.Context(), in, model.RoleAdmin)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			cmd.Printf("created admin %q (id %d)\n", a.Username, a.ID)
			return nil
		},
	}
	f := create.Flags()
	f.StringVar(&in.Username, "username", "", "login name")
	f.StringVar(&in.Password, "password", "", "password")
	f.StringVar(&in.FullName, "fullname", "", "display name")
	f.StringVar(&in.Contact, "contact", "", "phone or email")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
