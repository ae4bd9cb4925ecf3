package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/yigit/campustrack/internal/app/services"
)

var errHelp = errors.New("help provided")

type tokenIssuer interface {
	Generate(subject, role, department string) (string, time.Time, error)
}

type commandLine struct {
	out           io.Writer
	readFile      func(name string) ([]byte, error) // mockable
	tokens        tokenIssuer
	importService func() (services.ImportService, error)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  import -file PATH [-dry-run]                   - import a roster file (.csv or .xlsx)")
	fmt.Fprintln(cli.out, "  token -subject S -role R [-department D]       - mint an operator access token")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importCmd.SetOutput(cli.out)
	importFile := importCmd.String("file", "", "Path of the roster file to import.")
	importDryRun := importCmd.Bool("dry-run", false, "Validate and check for duplicates without creating accounts.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenCmd.SetOutput(cli.out)
	tokenSubject := tokenCmd.String("subject", "", "Token subject, e.g. the operator's username.")
	tokenRole := tokenCmd.String("role", "", "Operator role: admin or superadmin.")
	tokenDepartment := tokenCmd.String("department", "", "Department the operator belongs to.")

	switch args[1] {
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importRoster(*importFile, *importDryRun)
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenSubject == "" || *tokenRole == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.mintToken(*tokenSubject, *tokenRole, *tokenDepartment)
	default:
		cli.printUsage()
		return errHelp
	}
}
