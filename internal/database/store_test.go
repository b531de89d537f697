package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/edenlabs/edenbot/internal/database"

	_ "modernc.org/sqlite"
)

// newTestStore opens a migrated SQLite database in a per-test temp
// directory.
func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func TestGetOrCreateUserIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.GetOrCreateUser(ctx, 100, "alice", "Alice", "Smith")
	if err != nil {
		t.Fatalf("first GetOrCreateUser: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("created user has no ID")
	}
	if !first.Username.Valid || first.Username.String != "alice" {
		t.Errorf("username = %+v, want alice", first.Username)
	}

	second, err := store.GetOrCreateUser(ctx, 100, "alice_renamed", "Alice", "Smith")
	if err != nil {
		t.Fatalf("second GetOrCreateUser: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call created a new user: %d vs %d", second.ID, first.ID)
	}

	missing, err := store.GetUserByTelegramID(ctx, 999)
	if err != nil {
		t.Fatalf("GetUserByTelegramID: %v", err)
	}
	if missing != nil {
		t.Errorf("unknown telegram ID returned %+v, want nil", missing)
	}
}

func TestCreateAndGetProject(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.GetOrCreateUser(ctx, 100, "alice", "Alice", "")
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}

	project := &database.Project{
		OwnerID:           user.ID,
		TokenName:         "Dogecoin",
		TokenSymbol:       "DOGE",
		Description:       "Much wow",
		Website:           database.NullStringFrom("https://doge.example"),
		Twitter:           database.NullStringFrom("dogecoin"),
		Status:            database.ProjectStatusDraft,
		CaptchaEnabled:    true,
		ScamFilterEnabled: true,
	}
	if err := store.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if project.ID == 0 {
		t.Fatal("created project has no ID")
	}

	got, err := store.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got == nil {
		t.Fatal("GetProject returned nil for existing project")
	}
	if got.TokenName != "Dogecoin" || got.TokenSymbol != "DOGE" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.CaptchaEnabled || !got.ScamFilterEnabled {
		t.Errorf("moderation flags lost: %+v", got)
	}
	if got.TelegramGroupID.Valid {
		t.Errorf("unlinked project has group ID %v", got.TelegramGroupID)
	}

	owned, err := store.GetProjectsByOwner(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProjectsByOwner: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != project.ID {
		t.Errorf("GetProjectsByOwner = %+v", owned)
	}

	missing, err := store.GetProject(ctx, 9999)
	if err != nil {
		t.Fatalf("GetProject missing: %v", err)
	}
	if missing != nil {
		t.Errorf("unknown project returned %+v, want nil", missing)
	}
}

func TestLinkProjectGroup(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, store, 100)

	before, err := store.GetProjectByGroupID(ctx, -100500)
	if err != nil {
		t.Fatalf("GetProjectByGroupID before link: %v", err)
	}
	if before != nil {
		t.Fatalf("unlinked group resolved to %+v", before)
	}

	if err := store.LinkProjectGroup(ctx, project.ID, -100500); err != nil {
		t.Fatalf("LinkProjectGroup: %v", err)
	}

	after, err := store.GetProjectByGroupID(ctx, -100500)
	if err != nil {
		t.Fatalf("GetProjectByGroupID after link: %v", err)
	}
	if after == nil || after.ID != project.ID {
		t.Errorf("linked group resolved to %+v, want project %d", after, project.ID)
	}
}

func TestSetProjectModerationFlags(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, store, 100)

	if err := store.SetProjectModerationFlags(ctx, project.ID, false, true); err != nil {
		t.Fatalf("SetProjectModerationFlags: %v", err)
	}
	got, _ := store.GetProject(ctx, project.ID)
	if got.CaptchaEnabled || !got.ScamFilterEnabled {
		t.Errorf("flags = (%v, %v), want (false, true)", got.CaptchaEnabled, got.ScamFilterEnabled)
	}

	// Toggling twice restores the original value.
	if err := store.SetProjectModerationFlags(ctx, project.ID, true, true); err != nil {
		t.Fatalf("SetProjectModerationFlags: %v", err)
	}
	got, _ = store.GetProject(ctx, project.ID)
	if !got.CaptchaEnabled {
		t.Error("captcha flag not restored after second toggle")
	}
}

func TestMarkProjectLaunchedIsOneWay(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, store, 100)

	changed, err := store.MarkProjectLaunched(ctx, project.ID)
	if err != nil {
		t.Fatalf("MarkProjectLaunched: %v", err)
	}
	if !changed {
		t.Fatal("first launch reported no change")
	}

	got, _ := store.GetProject(ctx, project.ID)
	if got.Status != database.ProjectStatusLaunched {
		t.Fatalf("status = %q, want launched", got.Status)
	}

	changed, err = store.MarkProjectLaunched(ctx, project.ID)
	if err != nil {
		t.Fatalf("repeat MarkProjectLaunched: %v", err)
	}
	if changed {
		t.Error("repeat launch reported a change")
	}
}

func TestRaidLifecycle(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, store, 100)

	raid := &database.Raid{
		ProjectID:   project.ID,
		TweetURL:    "https://x.com/user/status/1",
		Description: "Like and Retweet!",
		Status:      database.RaidStatusActive,
	}
	if err := store.CreateRaid(ctx, raid); err != nil {
		t.Fatalf("CreateRaid: %v", err)
	}
	if raid.ID == 0 {
		t.Fatal("created raid has no ID")
	}

	active, err := store.ListRaidsByStatus(ctx, project.ID, database.RaidStatusActive)
	if err != nil {
		t.Fatalf("ListRaidsByStatus: %v", err)
	}
	if len(active) != 1 || active[0].ID != raid.ID {
		t.Fatalf("active raids = %+v", active)
	}

	changed, err := store.CompleteRaid(ctx, raid.ID)
	if err != nil {
		t.Fatalf("CompleteRaid: %v", err)
	}
	if !changed {
		t.Fatal("first completion reported no change")
	}

	changed, err = store.CompleteRaid(ctx, raid.ID)
	if err != nil {
		t.Fatalf("repeat CompleteRaid: %v", err)
	}
	if changed {
		t.Error("repeat completion reported a change")
	}

	active, err = store.ListRaidsByStatus(ctx, project.ID, database.RaidStatusActive)
	if err != nil {
		t.Fatalf("ListRaidsByStatus after completion: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("completed raid still listed as active: %+v", active)
	}

	got, err := store.GetRaid(ctx, raid.ID)
	if err != nil {
		t.Fatalf("GetRaid: %v", err)
	}
	if got.Status != database.RaidStatusCompleted {
		t.Errorf("raid status = %q, want completed", got.Status)
	}
}

func TestDescriptionBackfillQueries(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, store, 100)

	missing, err := store.ListProjectsMissingDescription(ctx)
	if err != nil {
		t.Fatalf("ListProjectsMissingDescription: %v", err)
	}
	if len(missing) != 1 || missing[0].ID != project.ID {
		t.Fatalf("missing = %+v, want the fresh project", missing)
	}

	if err := store.UpdateProjectPumpFunDescription(ctx, project.ID, "Much wow\n\nTwitter: @dogecoin"); err != nil {
		t.Fatalf("UpdateProjectPumpFunDescription: %v", err)
	}

	missing, err = store.ListProjectsMissingDescription(ctx)
	if err != nil {
		t.Fatalf("ListProjectsMissingDescription after update: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("project still listed as missing description: %+v", missing)
	}

	got, _ := store.GetProject(ctx, project.ID)
	if got.PumpFunDescription.String != "Much wow\n\nTwitter: @dogecoin" {
		t.Errorf("pump_fun_description = %q", got.PumpFunDescription.String)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	empty, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats on empty database: %v", err)
	}
	if empty.TotalUsers != 0 || empty.TotalProjects != 0 || empty.LaunchedProjects != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	first := createTestProject(t, store, 100)
	createTestProject(t, store, 200)

	if _, err := store.MarkProjectLaunched(ctx, first.ID); err != nil {
		t.Fatalf("MarkProjectLaunched: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, want 2", stats.TotalUsers)
	}
	if stats.TotalProjects != 2 {
		t.Errorf("TotalProjects = %d, want 2", stats.TotalProjects)
	}
	if stats.LaunchedProjects != 1 {
		t.Errorf("LaunchedProjects = %d, want 1", stats.LaunchedProjects)
	}
}

// createTestProject inserts a draft project owned by a fresh user with the
// given Telegram ID.
func createTestProject(t *testing.T, store database.Store, telegramID int64) *database.Project {
	t.Helper()
	ctx := context.Background()

	user, err := store.GetOrCreateUser(ctx, telegramID, "owner", "Owner", "")
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}

	project := &database.Project{
		OwnerID:           user.ID,
		TokenName:         "Dogecoin",
		TokenSymbol:       "DOGE",
		Description:       "Much wow",
		Status:            database.ProjectStatusDraft,
		CaptchaEnabled:    true,
		ScamFilterEnabled: true,
	}
	if err := store.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	return project
}
