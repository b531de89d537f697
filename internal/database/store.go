package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts. Lookup
// methods return (nil, nil) when the record does not exist; absence is an
// expected condition, not an error.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetUserByTelegramID retrieves a user by Telegram ID. Returns nil, nil if not found.
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*User, error)

	// GetOrCreateUser fetches the user with the given Telegram ID, creating
	// the record on first interaction. Idempotent on telegram_id.
	GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*User, error)

	// CreateProject inserts a new project row and sets its generated ID.
	CreateProject(ctx context.Context, project *Project) error

	// GetProject retrieves a project by ID. Returns nil, nil if not found.
	GetProject(ctx context.Context, id int64) (*Project, error)

	// GetProjectsByOwner retrieves all projects owned by the given user.
	GetProjectsByOwner(ctx context.Context, ownerID int64) ([]Project, error)

	// GetProjectByGroupID retrieves the project linked to a Telegram group.
	// Returns nil, nil if no project links that group.
	GetProjectByGroupID(ctx context.Context, groupID int64) (*Project, error)

	// LinkProjectGroup records the moderated Telegram group for a project.
	LinkProjectGroup(ctx context.Context, projectID, groupID int64) error

	// SetProjectModerationFlags updates both moderation flags on a project.
	SetProjectModerationFlags(ctx context.Context, projectID int64, captchaEnabled, scamFilterEnabled bool) error

	// MarkProjectLaunched performs the one-way draft -> launched transition.
	// Returns false when the project was not in draft status.
	MarkProjectLaunched(ctx context.Context, projectID int64) (bool, error)

	// UpdateProjectPumpFunDescription persists the derived marketing description.
	UpdateProjectPumpFunDescription(ctx context.Context, projectID int64, description string) error

	// ListProjectsMissingDescription retrieves projects whose derived
	// description was never persisted (e.g. a crash between the two
	// finalize steps). Used by the backfill task.
	ListProjectsMissingDescription(ctx context.Context) ([]Project, error)

	// CreateRaid inserts a new raid row and sets its generated ID.
	CreateRaid(ctx context.Context, raid *Raid) error

	// GetRaid retrieves a raid by ID. Returns nil, nil if not found.
	GetRaid(ctx context.Context, id int64) (*Raid, error)

	// ListRaidsByStatus retrieves a project's raids with the given status.
	ListRaidsByStatus(ctx context.Context, projectID int64, status string) ([]Raid, error)

	// CompleteRaid performs the one-way active -> completed transition.
	// Returns false when the raid was not active.
	CompleteRaid(ctx context.Context, raidID int64) (bool, error)

	// Stats returns the aggregate counters exposed by the query API.
	Stats(ctx context.Context) (*Stats, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) GetUserByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	if telegramID == 0 {
		return nil, fmt.Errorf("telegram_id cannot be zero")
	}

	var user User
	query := `SELECT id, created_at, updated_at, telegram_id, username, first_name, last_name
	          FROM users WHERE telegram_id = ?`

	err := s.db.GetContext(ctx, &user, query, telegramID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No user found", "telegram_id", telegramID)
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting user by telegram ID", "telegram_id", telegramID, "error", err)
		return nil, fmt.Errorf("failed to get user with telegram ID %d: %w", telegramID, err)
	}

	return &user, nil
}

func (s *sqlxStore) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*User, error) {
	user, err := s.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	now := time.Now().UTC()
	user = &User{
		CreatedAt:  now,
		UpdatedAt:  now,
		TelegramID: telegramID,
		Username:   NullStringFrom(username),
		FirstName:  NullStringFrom(firstName),
		LastName:   NullStringFrom(lastName),
	}

	query := `
        INSERT INTO users (telegram_id, username, first_name, last_name, created_at, updated_at)
        VALUES (:telegram_id, :username, :first_name, :last_name, :created_at, :updated_at);
    `
	result, err := s.db.NamedExecContext(ctx, query, user)
	if err != nil {
		// A concurrent first interaction may have inserted the row already;
		// the unique index on telegram_id makes the retry safe.
		if existing, lookupErr := s.GetUserByTelegramID(ctx, telegramID); lookupErr == nil && existing != nil {
			return existing, nil
		}
		s.logger.ErrorContext(ctx, "Error creating user", "telegram_id", telegramID, "error", err)
		return nil, fmt.Errorf("failed to create user with telegram ID %d: %w", telegramID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		user.ID = id
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after creating user",
			"telegram_id", telegramID, "error", err)
	}

	s.logger.DebugContext(ctx, "User created", "telegram_id", telegramID, "user_id", user.ID)
	return user, nil
}

func (s *sqlxStore) CreateProject(ctx context.Context, project *Project) error {
	if project == nil {
		return fmt.Errorf("cannot create nil project")
	}
	if project.OwnerID == 0 {
		return fmt.Errorf("project must have a non-zero owner_id")
	}
	if project.Status == "" {
		project.Status = ProjectStatusDraft
	}

	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	query := `
        INSERT INTO projects (
            owner_id, token_name, token_symbol, description, logo_file_id,
            website, twitter, telegram_group_id, telegram_channel_id, status,
            captcha_enabled, scam_filter_enabled, pump_fun_description,
            created_at, updated_at
        ) VALUES (
            :owner_id, :token_name, :token_symbol, :description, :logo_file_id,
            :website, :twitter, :telegram_group_id, :telegram_channel_id, :status,
            :captcha_enabled, :scam_filter_enabled, :pump_fun_description,
            :created_at, :updated_at
        );
    `
	result, err := s.db.NamedExecContext(ctx, query, project)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error creating project", "owner_id", project.OwnerID, "error", err)
		return fmt.Errorf("failed to create project for owner %d: %w", project.OwnerID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		project.ID = id
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after creating project",
			"owner_id", project.OwnerID, "error", err)
	}

	s.logger.DebugContext(ctx, "Project created",
		"project_id", project.ID, "owner_id", project.OwnerID, "token_symbol", project.TokenSymbol)
	return nil
}

const projectColumns = `id, created_at, updated_at, owner_id, token_name, token_symbol,
    description, logo_file_id, website, twitter, telegram_group_id,
    telegram_channel_id, status, captcha_enabled, scam_filter_enabled,
    pump_fun_description`

func (s *sqlxStore) GetProject(ctx context.Context, id int64) (*Project, error) {
	var project Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	err := s.db.GetContext(ctx, &project, query, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No project found", "project_id", id)
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting project", "project_id", id, "error", err)
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}

	return &project, nil
}

func (s *sqlxStore) GetProjectsByOwner(ctx context.Context, ownerID int64) ([]Project, error) {
	var projects []Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = ? ORDER BY id`

	if err := s.db.SelectContext(ctx, &projects, query, ownerID); err != nil {
		s.logger.ErrorContext(ctx, "Error getting projects by owner", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to get projects for owner %d: %w", ownerID, err)
	}

	return projects, nil
}

func (s *sqlxStore) GetProjectByGroupID(ctx context.Context, groupID int64) (*Project, error) {
	if groupID == 0 {
		return nil, fmt.Errorf("group_id cannot be zero")
	}

	var project Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE telegram_group_id = ?`

	err := s.db.GetContext(ctx, &project, query, groupID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting project by group ID", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to get project for group %d: %w", groupID, err)
	}

	return &project, nil
}

func (s *sqlxStore) LinkProjectGroup(ctx context.Context, projectID, groupID int64) error {
	query := `UPDATE projects SET telegram_group_id = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, groupID, time.Now().UTC(), projectID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error linking project group",
			"project_id", projectID, "group_id", groupID, "error", err)
		return fmt.Errorf("failed to link group %d to project %d: %w", groupID, projectID, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected != 1 {
		s.logger.WarnContext(ctx, "Unexpected number of rows affected when linking group",
			"project_id", projectID, "affected", affected)
	}

	s.logger.InfoContext(ctx, "Project linked to group", "project_id", projectID, "group_id", groupID)
	return nil
}

func (s *sqlxStore) SetProjectModerationFlags(ctx context.Context, projectID int64, captchaEnabled, scamFilterEnabled bool) error {
	query := `UPDATE projects SET captcha_enabled = ?, scam_filter_enabled = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, captchaEnabled, scamFilterEnabled, time.Now().UTC(), projectID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating moderation flags", "project_id", projectID, "error", err)
		return fmt.Errorf("failed to update moderation flags for project %d: %w", projectID, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected != 1 {
		s.logger.WarnContext(ctx, "Unexpected number of rows affected when updating moderation flags",
			"project_id", projectID, "affected", affected)
	}

	s.logger.DebugContext(ctx, "Moderation flags updated",
		"project_id", projectID, "captcha_enabled", captchaEnabled, "scam_filter_enabled", scamFilterEnabled)
	return nil
}

func (s *sqlxStore) MarkProjectLaunched(ctx context.Context, projectID int64) (bool, error) {
	// The WHERE clause enforces the one-way transition at the storage layer.
	query := `UPDATE projects SET status = ?, updated_at = ? WHERE id = ? AND status = ?`

	result, err := s.db.ExecContext(ctx, query, ProjectStatusLaunched, time.Now().UTC(), projectID, ProjectStatusDraft)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error marking project launched", "project_id", projectID, "error", err)
		return false, fmt.Errorf("failed to mark project %d launched: %w", projectID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not get affected row count when launching project",
			"project_id", projectID, "error", err)
		return true, nil
	}

	if affected == 0 {
		s.logger.DebugContext(ctx, "Project not in draft status, launch is a no-op", "project_id", projectID)
		return false, nil
	}

	s.logger.InfoContext(ctx, "Project marked as launched", "project_id", projectID)
	return true, nil
}

func (s *sqlxStore) UpdateProjectPumpFunDescription(ctx context.Context, projectID int64, description string) error {
	query := `UPDATE projects SET pump_fun_description = ?, updated_at = ? WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query, description, time.Now().UTC(), projectID); err != nil {
		s.logger.ErrorContext(ctx, "Error updating pump.fun description", "project_id", projectID, "error", err)
		return fmt.Errorf("failed to update pump.fun description for project %d: %w", projectID, err)
	}

	s.logger.DebugContext(ctx, "Pump.fun description updated", "project_id", projectID)
	return nil
}

func (s *sqlxStore) ListProjectsMissingDescription(ctx context.Context) ([]Project, error) {
	var projects []Project
	query := `SELECT ` + projectColumns + ` FROM projects
	          WHERE pump_fun_description IS NULL OR pump_fun_description = ''`

	if err := s.db.SelectContext(ctx, &projects, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing projects missing description", "error", err)
		return nil, fmt.Errorf("failed to list projects missing description: %w", err)
	}

	return projects, nil
}

func (s *sqlxStore) CreateRaid(ctx context.Context, raid *Raid) error {
	if raid == nil {
		return fmt.Errorf("cannot create nil raid")
	}
	if raid.ProjectID == 0 {
		return fmt.Errorf("raid must have a non-zero project_id")
	}
	if raid.Status == "" {
		raid.Status = RaidStatusActive
	}
	raid.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO raids (project_id, tweet_url, description, status, created_at)
        VALUES (:project_id, :tweet_url, :description, :status, :created_at);
    `
	result, err := s.db.NamedExecContext(ctx, query, raid)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error creating raid", "project_id", raid.ProjectID, "error", err)
		return fmt.Errorf("failed to create raid for project %d: %w", raid.ProjectID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		raid.ID = id
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after creating raid",
			"project_id", raid.ProjectID, "error", err)
	}

	s.logger.DebugContext(ctx, "Raid created", "raid_id", raid.ID, "project_id", raid.ProjectID)
	return nil
}

func (s *sqlxStore) GetRaid(ctx context.Context, id int64) (*Raid, error) {
	var raid Raid
	query := `SELECT id, created_at, project_id, tweet_url, description, status FROM raids WHERE id = ?`

	err := s.db.GetContext(ctx, &raid, query, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting raid", "raid_id", id, "error", err)
		return nil, fmt.Errorf("failed to get raid %d: %w", id, err)
	}

	return &raid, nil
}

func (s *sqlxStore) ListRaidsByStatus(ctx context.Context, projectID int64, status string) ([]Raid, error) {
	var raids []Raid
	query := `SELECT id, created_at, project_id, tweet_url, description, status
	          FROM raids WHERE project_id = ? AND status = ? ORDER BY created_at`

	if err := s.db.SelectContext(ctx, &raids, query, projectID, status); err != nil {
		s.logger.ErrorContext(ctx, "Error listing raids",
			"project_id", projectID, "status", status, "error", err)
		return nil, fmt.Errorf("failed to list %s raids for project %d: %w", status, projectID, err)
	}

	return raids, nil
}

func (s *sqlxStore) CompleteRaid(ctx context.Context, raidID int64) (bool, error) {
	query := `UPDATE raids SET status = ? WHERE id = ? AND status = ?`

	result, err := s.db.ExecContext(ctx, query, RaidStatusCompleted, raidID, RaidStatusActive)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error completing raid", "raid_id", raidID, "error", err)
		return false, fmt.Errorf("failed to complete raid %d: %w", raidID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not get affected row count when completing raid",
			"raid_id", raidID, "error", err)
		return true, nil
	}

	if affected == 0 {
		s.logger.DebugContext(ctx, "Raid not active, completion is a no-op", "raid_id", raidID)
		return false, nil
	}

	s.logger.InfoContext(ctx, "Raid marked as completed", "raid_id", raidID)
	return true, nil
}

func (s *sqlxStore) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	query := `
        SELECT
            (SELECT COUNT(*) FROM users) AS total_users,
            (SELECT COUNT(*) FROM projects) AS total_projects,
            (SELECT COUNT(*) FROM projects WHERE status = ?) AS launched_projects;
    `

	if err := s.db.GetContext(ctx, &stats, query, ProjectStatusLaunched); err != nil {
		s.logger.ErrorContext(ctx, "Error getting stats", "error", err)
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &stats, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite.
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)

	default:
		s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	}

	return nil
}
