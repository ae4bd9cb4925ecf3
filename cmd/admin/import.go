package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yigit/campustrack/internal/app/models/dto"
	"github.com/yigit/campustrack/internal/app/services"
)

func (cli *commandLine) importRoster(path string, dryRun bool) error {
	data, err := cli.readFile(path)
	if err != nil {
		return fmt.Errorf("failed to read roster file: %w", err)
	}

	svc, err := cli.importService()
	if err != nil {
		return err
	}

	res, err := svc.Import(context.Background(), services.Upload{
		Filename: filepath.Base(path),
		Data:     data,
		DryRun:   dryRun,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewImportResponse(res))
}
