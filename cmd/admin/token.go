package main

import (
	"fmt"
	"time"

	"github.com/yigit/campustrack/internal/app/models"
)

func (cli *commandLine) mintToken(subject, role, department string) error {
	if role != models.RoleDepartmentAdmin && role != models.RoleSuperAdmin {
		return fmt.Errorf("role must be %q or %q, got %q", models.RoleDepartmentAdmin, models.RoleSuperAdmin, role)
	}

	token, expiresAt, err := cli.tokens.Generate(subject, role, department)
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.out, token)
	fmt.Fprintf(cli.out, "expires: %s\n", expiresAt.UTC().Format(time.RFC3339))
	return nil
}
