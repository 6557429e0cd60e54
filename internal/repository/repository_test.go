package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"journalapi/internal/config"
	"journalapi/internal/database"
	"journalapi/internal/domain"
	"journalapi/internal/repository"
	dbpkg "journalapi/pkg/database"
	"journalapi/pkg/logger"
)

func newTestStore(t *testing.T) *dbpkg.Store {
	t.Helper()

	cm, err := dbpkg.NewConnectionManager(config.DatabaseConfig{
		URL: "sqlite://" + filepath.Join(t.TempDir(), "repo.db"),
	}, logger.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = cm.Close() })

	if err := database.NewMigrationService(cm.DB(), cm.Dialect(), logger.Nop()).RunMigrations(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return dbpkg.NewStore(cm, time.Second)
}

func str(s string) domain.Text { return domain.NewText(s) }

func TestUserRepository_CreateFindUpdateDelete(t *testing.T) {
	repo := repository.NewUserRepository(newTestStore(t), logger.Nop())
	ctx := context.Background()

	user := &domain.User{FName: str("A"), LName: str("B"), Username: str("ab"), Password: str("pw")}
	id, err := repo.Create(ctx, user)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 || user.ID != domain.NewID(id) {
		t.Fatalf("expected generated id on the record, got %d / %+v", id, user.ID)
	}

	got, err := repo.FindByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("find: %+v %v", got, err)
	}
	if got.FName.String != "A" || got.Username.String != "ab" || got.Password.String != "pw" {
		t.Fatalf("unexpected record: %+v", got)
	}

	affected, err := repo.Update(ctx, &domain.User{ID: domain.NewID(id), FName: str("C")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	got, _ = repo.FindByID(ctx, id)
	if got.FName != str("C") || got.LName.Valid || got.Username.Valid {
		t.Fatalf("expected full overwrite, got %+v", got)
	}

	affected, err = repo.Delete(ctx, domain.NewID(id))
	if err != nil || affected != 1 {
		t.Fatalf("delete: %d %v", affected, err)
	}

	got, err = repo.FindByID(ctx, id)
	if err != nil || got != nil {
		t.Fatalf("expected no record after delete, got %+v %v", got, err)
	}
}

func TestUserRepository_FindAllEmpty(t *testing.T) {
	repo := repository.NewUserRepository(newTestStore(t), logger.Nop())

	users, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", users)
	}
}

func TestUserRepository_FindByCredentials(t *testing.T) {
	repo := repository.NewUserRepository(newTestStore(t), logger.Nop())
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Username: str("ab"), Password: str("pw")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByCredentials(ctx, "ab", "pw")
	if err != nil || got == nil {
		t.Fatalf("expected match, got %+v %v", got, err)
	}
	if got.ID.Int64 != id {
		t.Fatalf("unexpected id %d", got.ID.Int64)
	}

	got, err = repo.FindByCredentials(ctx, "ab", "wrong")
	if err != nil || got != nil {
		t.Fatalf("expected no match, got %+v %v", got, err)
	}
}

func TestUserRepository_DeleteMissing(t *testing.T) {
	repo := repository.NewUserRepository(newTestStore(t), logger.Nop())

	affected, err := repo.Delete(context.Background(), domain.NewID(9999))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected zero affected rows, got %d", affected)
	}
}

func TestJournalRepository_RoundTrip(t *testing.T) {
	repo := repository.NewJournalRepository(newTestStore(t), logger.Nop())
	ctx := context.Background()

	journal := &domain.Journal{
		UserID:    domain.NewID(12),
		Title:     str("Day one"),
		Content:   str("hello"),
		CreatedAt: str("not-a-date, kept as is"),
	}
	id, err := repo.Create(ctx, journal)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("find: %+v %v", got, err)
	}
	if got.UserID != domain.NewID(12) || got.CreatedAt != str("not-a-date, kept as is") {
		t.Fatalf("unexpected record: %+v", got)
	}

	all, err := repo.FindAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("find all: %d %v", len(all), err)
	}

	affected, err := repo.Update(ctx, &domain.Journal{ID: domain.NewID(id), Title: str("edited")})
	if err != nil || affected != 1 {
		t.Fatalf("update: %d %v", affected, err)
	}
	got, _ = repo.FindByID(ctx, id)
	if got.UserID.Valid || got.Content.Valid || got.CreatedAt.Valid || got.Title != str("edited") {
		t.Fatalf("expected full overwrite, got %+v", got)
	}

	if _, err := repo.Delete(ctx, domain.NewID(id)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = repo.FindByID(ctx, id)
	if err != nil || got != nil {
		t.Fatalf("expected nothing after delete, got %+v %v", got, err)
	}
}
