package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/persistence"
	"github.com/alliance-shipping/backoffice/internal/repository"
	"github.com/alliance-shipping/backoffice/internal/service"
)

const passwordEnv = "ASCTL_ADMIN_PASSWORD"

type adminCreateOptions struct {
	name        string
	email       string
	role        string
	password    string
	permissions []string
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage back-office accounts",
	}

	var opts adminCreateOptions
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account without an existing session",
		Long: `Creates the user (when absent) and its admin record. Use it to bootstrap the
first super admin. The password is read from --password or ` + passwordEnv + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := opts.input()
			if err != nil {
				return err
			}
			return runAdminCreate(cmd, input)
		},
	}
	create.Flags().StringVar(&opts.name, "name", "", "display name")
	create.Flags().StringVar(&opts.email, "email", "", "login email")
	create.Flags().StringVar(&opts.role, "role", string(domain.AdminRoleAdmin), "super_admin, admin or moderator")
	create.Flags().StringVar(&opts.password, "password", "", "initial password (prefer "+passwordEnv+")")
	create.Flags().StringSliceVar(&opts.permissions, "permission", nil, "granted permission, repeatable")
	_ = create.MarkFlagRequired("email")

	cmd.AddCommand(create)
	return cmd
}

func (o adminCreateOptions) input() (service.CreateAdminInput, error) {
	role, err := domain.ParseAdminRole(o.role)
	if err != nil {
		return service.CreateAdminInput{}, err
	}
	password := o.password
	if password == "" {
		password = strings.TrimSpace(os.Getenv(passwordEnv))
	}
	if password == "" {
		return service.CreateAdminInput{}, fmt.Errorf("password required: pass --password or set %s", passwordEnv)
	}
	return service.CreateAdminInput{
		Name:        o.name,
		Email:       o.email,
		Password:    password,
		Role:        role,
		Permissions: o.permissions,
	}, nil
}

func runAdminCreate(cmd *cobra.Command, input service.CreateAdminInput) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()
	if pg.PoolHandle() == nil {
		return fmt.Errorf("POSTGRES_DSN is required")
	}

	admins := service.NewAdminService(*cfg, service.AdminDependencies{
		UserRepo:  repository.NewUserRepository(pg.PoolHandle()),
		AdminRepo: repository.NewAdminRepository(pg.PoolHandle()),
	})
	account, err := admins.Bootstrap(ctx, input)
	if err != nil {
		return err
	}

	logger.Info("admin account created", zap.String("admin_id", account.Admin.ID), zap.String("role", string(account.Admin.Role)))
	fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) admin_id=%s\n", account.User.Email, account.Admin.Role, account.Admin.ID)
	return nil
}
