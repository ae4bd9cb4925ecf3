package importer

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campustrack/internal/app/models"
	"github.com/yigit/campustrack/internal/pkg/apperrors"
)

// AccountStore is the user store the importer writes to. CreateUser must wrap
// apperrors.ErrIdentifierExists when a unique index rejects the natural key.
type AccountStore interface {
	NaturalKeyExists(ctx context.Context, role models.Role, key string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// SummaryStore persists one UploadSummary per batch
type SummaryStore interface {
	CreateSummary(ctx context.Context, summary *models.UploadSummary) error
}

// Request is one uploaded roster
type Request struct {
	Data       []byte
	Format     Format
	SourceFile string
}

// Outcome is the result of a single row. Err is nil on success.
type Outcome struct {
	Index   int
	Row     Row
	Role    string
	Account *models.User
	Err     error
}

// Succeeded reports whether the row produced an account
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Failure is the reported form of a failed row
type Failure struct {
	Row   Row    `json:"row"`
	Error string `json:"error"`
}

// Result aggregates a batch. Successes and Failures partition the parsed rows.
type Result struct {
	Total     int
	Success   int
	Successes []Row
	Failures  []Failure
	Outcomes  []Outcome
	Summary   *models.UploadSummary
	DryRun    bool
}

// Importer runs roster batches. It holds no per-batch state and may be shared.
type Importer struct {
	accounts  AccountStore
	summaries SummaryStore
	hasher    PasswordHasher
	logger    zerolog.Logger
	now       func() time.Time
}

// New creates an Importer
func New(accounts AccountStore, summaries SummaryStore, hasher PasswordHasher, logger zerolog.Logger) *Importer {
	return &Importer{
		accounts:  accounts,
		summaries: summaries,
		hasher:    hasher,
		logger:    logger.With().Str("component", "importer").Logger(),
		now:       time.Now,
	}
}

// Import parses req and creates one account per valid row, sequentially in file order,
// then records an UploadSummary. Only a *ParseError fails the whole call.
func (im *Importer) Import(ctx context.Context, req Request) (*Result, error) {
	rows, err := Parse(req.Data, req.Format)
	if err != nil {
		im.logger.Error().Err(err).Str("format", string(req.Format)).Msg("Roster file could not be parsed")
		return nil, err
	}

	res := im.process(ctx, rows, false)

	summary := &models.UploadSummary{
		Department:    InferDepartment(res.Successes, res.Failures),
		UploadedCount: res.Success,
		ErrorCount:    len(res.Failures),
		SourceFile:    nullIfBlank(req.SourceFile),
		UploadedAt:    im.now().UTC(),
	}
	if err := im.summaries.CreateSummary(ctx, summary); err != nil {
		// accounts are already written; the caller still gets the per-row report
		im.logger.Error().Err(err).Str("department", summary.Department).Msg("Failed to persist upload summary")
	} else {
		res.Summary = summary
	}

	im.logger.Info().
		Int("total", res.Total).
		Int("success", res.Success).
		Int("failed", len(res.Failures)).
		Str("department", summary.Department).
		Msg("Roster batch completed")

	return res, nil
}

// DryRun validates req and checks natural keys, against the store and against earlier
// rows of the same file, without hashing or writing anything.
func (im *Importer) DryRun(ctx context.Context, req Request) (*Result, error) {
	rows, err := Parse(req.Data, req.Format)
	if err != nil {
		return nil, err
	}

	res := im.process(ctx, rows, true)

	im.logger.Info().
		Int("total", res.Total).
		Int("success", res.Success).
		Int("failed", len(res.Failures)).
		Bool("dryRun", true).
		Msg("Roster dry run completed")

	return res, nil
}

func (im *Importer) process(ctx context.Context, rows []Row, dryRun bool) *Result {
	res := &Result{
		Total:     len(rows),
		Successes: make([]Row, 0, len(rows)),
		Failures:  make([]Failure, 0),
		Outcomes:  make([]Outcome, 0, len(rows)),
		DryRun:    dryRun,
	}

	var seen map[string]struct{}
	if dryRun {
		seen = make(map[string]struct{})
	}

	for i, row := range rows {
		outcome := im.processRow(ctx, i, row, seen)
		res.Outcomes = append(res.Outcomes, outcome)

		if outcome.Succeeded() {
			res.Successes = append(res.Successes, row)
			im.logger.Info().Int("rowIndex", i).Str("role", outcome.Role).Str("outcome", "succeeded").Msg("Roster row processed")
			continue
		}

		res.Failures = append(res.Failures, Failure{Row: row, Error: outcome.Err.Error()})
		im.logger.Warn().Int("rowIndex", i).Str("role", outcome.Role).Str("outcome", "failed").Str("error", outcome.Err.Error()).Msg("Roster row processed")
	}

	res.Success = res.Total - len(res.Failures)
	return res
}

// processRow runs one row through the pipeline. seen is non-nil only for dry runs.
func (im *Importer) processRow(ctx context.Context, index int, row Row, seen map[string]struct{}) Outcome {
	outcome := Outcome{Index: index, Row: row, Role: row.Get(FieldRole)}

	candidate, err := Validate(row)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Role = string(candidate.Role)
	key := candidate.NaturalKey()

	exists, err := im.accounts.NaturalKeyExists(ctx, candidate.Role, key)
	if err != nil {
		outcome.Err = &PersistenceError{Err: err}
		return outcome
	}
	if exists {
		outcome.Err = &DuplicateIdentityError{Role: candidate.Role, Key: key}
		return outcome
	}

	if seen != nil {
		seenKey := string(candidate.Role) + "\x00" + key
		if _, dup := seen[seenKey]; dup {
			outcome.Err = &DuplicateIdentityError{Role: candidate.Role, Key: key}
			return outcome
		}
		seen[seenKey] = struct{}{}
		outcome.Account = NewAccount(candidate, "", im.now().UTC())
		return outcome
	}

	hashed, err := deriveCredential(im.hasher, candidate)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	account := NewAccount(candidate, hashed, im.now().UTC())
	if err := im.accounts.CreateUser(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrIdentifierExists) {
			outcome.Err = &DuplicateIdentityError{Role: candidate.Role, Key: key}
		} else {
			outcome.Err = &PersistenceError{Err: err}
		}
		return outcome
	}

	outcome.Account = account
	return outcome
}

// InferDepartment picks the summary department: the first successful row's department,
// then the first failed row's, then models.UnknownDepartment. Blank values fall through.
func InferDepartment(successes []Row, failures []Failure) string {
	var tiers []string
	if len(successes) > 0 {
		tiers = append(tiers, successes[0].Get(FieldDepartment))
	}
	if len(failures) > 0 {
		tiers = append(tiers, failures[0].Row.Get(FieldDepartment))
	}

	for _, department := range tiers {
		if department != "" {
			return department
		}
	}
	return models.UnknownDepartment
}
