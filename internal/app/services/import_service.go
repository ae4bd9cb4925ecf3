package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campustrack/internal/app/importer"
	"github.com/yigit/campustrack/internal/pkg/filestorage"
)

// Upload is one roster file as received
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
	DryRun      bool
}

// ImportService runs roster batches
type ImportService interface {
	Import(ctx context.Context, upload Upload) (*importer.Result, error)
}

// RosterImporter is implemented by *importer.Importer
type RosterImporter interface {
	Import(ctx context.Context, req importer.Request) (*importer.Result, error)
	DryRun(ctx context.Context, req importer.Request) (*importer.Result, error)
}

type importService struct {
	importer RosterImporter
	archiver filestorage.Archiver
	logger   zerolog.Logger
	now      func() time.Time
}

// NewImportService creates an ImportService. archiver may be nil to skip archiving uploads.
func NewImportService(im RosterImporter, archiver filestorage.Archiver, logger zerolog.Logger) ImportService {
	return &importService{
		importer: im,
		archiver: archiver,
		logger:   logger.With().Str("component", "import_service").Logger(),
		now:      time.Now,
	}
}

// Import processes every row even if the caller goes away; only a *importer.ParseError is returned.
func (s *importService) Import(ctx context.Context, upload Upload) (*importer.Result, error) {
	ctx = context.WithoutCancel(ctx)

	req := importer.Request{
		Data:   upload.Data,
		Format: importer.DetectFormat(upload.Filename, upload.ContentType),
	}

	log := s.logger.With().Str("filename", upload.Filename).Str("format", string(req.Format)).Int("bytes", len(upload.Data)).Logger()

	if upload.DryRun {
		log.Info().Msg("Starting roster dry run")
		return s.importer.DryRun(ctx, req)
	}

	req.SourceFile = s.archive(ctx, upload)

	log.Info().Str("sourceFile", req.SourceFile).Msg("Starting roster import")
	return s.importer.Import(ctx, req)
}

// archive stores the raw upload and returns its location, or "" when archiving is off or fails
func (s *importService) archive(ctx context.Context, upload Upload) string {
	if s.archiver == nil {
		return ""
	}

	key := filestorage.ArchiveKey(upload.Filename, s.now())
	location, err := s.archiver.Store(ctx, key, upload.Data, upload.ContentType)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to archive roster upload, continuing without it")
		return ""
	}
	return location
}
