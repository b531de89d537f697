package database

import (
	"database/sql"
	"time"
)

// Project status values. The draft -> launched transition is one-way.
const (
	ProjectStatusDraft    = "draft"
	ProjectStatusLaunched = "launched"
)

// Raid status values. The active -> completed transition is one-way.
const (
	RaidStatusActive    = "active"
	RaidStatusCompleted = "completed"
)

// User represents a Telegram user known to the bot. Users are created
// lazily on first interaction and never deleted.
type User struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	TelegramID int64          `db:"telegram_id"`
	Username   sql.NullString `db:"username"`
	FirstName  sql.NullString `db:"first_name"`
	LastName   sql.NullString `db:"last_name"`
}

// Project represents a token listing owned by a single user. Optional
// fields are nullable; an explicitly skipped field is stored as NULL.
type Project struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	OwnerID           int64          `db:"owner_id"`
	TokenName         string         `db:"token_name"`
	TokenSymbol       string         `db:"token_symbol"`
	Description       string         `db:"description"`
	LogoFileID        sql.NullString `db:"logo_file_id"`
	Website           sql.NullString `db:"website"`
	Twitter           sql.NullString `db:"twitter"`
	TelegramGroupID   sql.NullInt64  `db:"telegram_group_id"`
	TelegramChannelID sql.NullInt64  `db:"telegram_channel_id"`
	Status            string         `db:"status"`
	CaptchaEnabled    bool           `db:"captcha_enabled"`
	ScamFilterEnabled bool           `db:"scam_filter_enabled"`

	// PumpFunDescription is derived from Description/Website/Twitter by the
	// content package. It is always recomputable from those fields.
	PumpFunDescription sql.NullString `db:"pump_fun_description"`
}

// Raid represents a time-boxed community call-to-action tied to an external
// link, scoped to one project.
type Raid struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ProjectID   int64  `db:"project_id"`
	TweetURL    string `db:"tweet_url"`
	Description string `db:"description"`
	Status      string `db:"status"`
}

// VerifiedAdmin is an audit-only record of verified project admins. It is
// part of the persisted layout but not exercised by the core flows.
type VerifiedAdmin struct {
	ID         int64     `db:"id"`
	ProjectID  int64     `db:"project_id"`
	TelegramID int64     `db:"telegram_id"`
	VerifiedAt time.Time `db:"verified_at"`
}

// Stats aggregates the counters exposed by the query API.
type Stats struct {
	TotalUsers       int64 `db:"total_users"`
	TotalProjects    int64 `db:"total_projects"`
	LaunchedProjects int64 `db:"launched_projects"`
}

// NullStringFrom converts a plain string to sql.NullString, treating the
// empty string as NULL. Skipped optional fields are stored as NULL.
func NullStringFrom(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
