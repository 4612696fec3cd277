package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/secrets"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

func newApiKeyFixture(t *testing.T) (ApiKeyService, *gorm.DB, uuid.UUID) {
	t.Helper()
	db := testDB(t)
	log := testLogger(t)
	box, err := secrets.New("test-secret")
	if err != nil {
		t.Fatalf("secrets.New: %v", err)
	}
	svc := NewApiKeyService(log, repos.NewApiKeyRepo(db, log), box)
	u := seedUser(t, db, "keys@example.com")
	return svc, db, u.ID
}

func TestResolveKeyPrefersUserOverSystemOverEnv(t *testing.T) {
	svc, _, userID := newApiKeyFixture(t)
	ctx := context.Background()
	t.Setenv("OPENAI_API_KEY", "env-key")

	got, err := svc.ResolveKey(ctx, userID, types.ApiKeyServiceLLM)
	if err != nil {
		t.Fatalf("ResolveKey env: %v", err)
	}
	if got != "env-key" {
		t.Fatalf("env fallback = %q", got)
	}

	if _, err := svc.SetSystemKey(ctx, types.ApiKeyServiceLLM, "system-key", "shared"); err != nil {
		t.Fatalf("SetSystemKey: %v", err)
	}
	got, err = svc.ResolveKey(ctx, userID, types.ApiKeyServiceLLM)
	if err != nil {
		t.Fatalf("ResolveKey system: %v", err)
	}
	if got != "system-key" {
		t.Fatalf("system key = %q", got)
	}

	if _, err := svc.SetUserKey(ctx, userID, types.ApiKeyServiceLLM, "user-key", "mine"); err != nil {
		t.Fatalf("SetUserKey: %v", err)
	}
	got, err = svc.ResolveKey(ctx, userID, types.ApiKeyServiceLLM)
	if err != nil {
		t.Fatalf("ResolveKey user: %v", err)
	}
	if got != "user-key" {
		t.Fatalf("user key = %q", got)
	}
}

func TestResolveKeyMissingEverywhere(t *testing.T) {
	svc, _, userID := newApiKeyFixture(t)
	t.Setenv("TTS_API_KEY", "")

	if _, err := svc.ResolveKey(context.Background(), userID, types.ApiKeyServiceTTS); err == nil {
		t.Fatalf("expected error when no key configured")
	}
}

func TestStoredKeysAreEncryptedAtRest(t *testing.T) {
	svc, _, userID := newApiKeyFixture(t)
	ctx := context.Background()

	created, err := svc.SetUserKey(ctx, userID, types.ApiKeyServiceImage, "sk-plain-value", "")
	if err != nil {
		t.Fatalf("SetUserKey: %v", err)
	}
	if created.EncryptedValue == "sk-plain-value" {
		t.Fatalf("key stored in the clear")
	}

	listed, err := svc.ListUserKeys(ctx, userID)
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListUserKeys: err=%v len=%d", err, len(listed))
	}
	if listed[0].EncryptedValue == "sk-plain-value" {
		t.Fatalf("listed key exposes plaintext")
	}
}

func TestStoreKeyRejectsUnknownService(t *testing.T) {
	svc, _, userID := newApiKeyFixture(t)

	if _, err := svc.SetUserKey(context.Background(), userID, types.ApiKeyService("search"), "v", ""); err == nil {
		t.Fatalf("unknown service accepted")
	}
}

func TestDeleteUserKeyRestoresFallback(t *testing.T) {
	svc, _, userID := newApiKeyFixture(t)
	ctx := context.Background()
	t.Setenv("OPENAI_API_KEY", "env-key")

	created, err := svc.SetUserKey(ctx, userID, types.ApiKeyServiceLLM, "user-key", "")
	if err != nil {
		t.Fatalf("SetUserKey: %v", err)
	}
	if err := svc.DeleteUserKey(ctx, userID, created.ID); err != nil {
		t.Fatalf("DeleteUserKey: %v", err)
	}

	got, err := svc.ResolveKey(ctx, userID, types.ApiKeyServiceLLM)
	if err != nil {
		t.Fatalf("ResolveKey: %v", err)
	}
	if got != "env-key" {
		t.Fatalf("after delete = %q, want env fallback", got)
	}
}

// A user-scoped delete must only ever reach the caller's own keys: another
// user's key id or a system key id reads as not found and the row survives.
func TestDeleteUserKeyScopedToOwner(t *testing.T) {
	svc, db, userID := newApiKeyFixture(t)
	ctx := context.Background()

	other := seedUser(t, db, "other@example.com")
	theirs, err := svc.SetUserKey(ctx, other.ID, types.ApiKeyServiceLLM, "their-key", "")
	if err != nil {
		t.Fatalf("SetUserKey other: %v", err)
	}
	system, err := svc.SetSystemKey(ctx, types.ApiKeyServiceLLM, "system-key", "shared")
	if err != nil {
		t.Fatalf("SetSystemKey: %v", err)
	}

	if err := svc.DeleteUserKey(ctx, userID, theirs.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting another user's key: err = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteUserKey(ctx, userID, system.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting a system key as user: err = %v, want ErrNotFound", err)
	}

	otherKeys, err := svc.ListUserKeys(ctx, other.ID)
	if err != nil || len(otherKeys) != 1 {
		t.Fatalf("other user's keys: err=%v len=%d", err, len(otherKeys))
	}
	systemKeys, err := svc.ListSystemKeys(ctx)
	if err != nil || len(systemKeys) != 1 {
		t.Fatalf("system keys: err=%v len=%d", err, len(systemKeys))
	}
}

func TestDeleteSystemKeyIgnoresUserKeys(t *testing.T) {
	svc, _, userID := newApiKeyFixture(t)
	ctx := context.Background()

	mine, err := svc.SetUserKey(ctx, userID, types.ApiKeyServiceTTS, "user-key", "")
	if err != nil {
		t.Fatalf("SetUserKey: %v", err)
	}
	system, err := svc.SetSystemKey(ctx, types.ApiKeyServiceTTS, "system-key", "")
	if err != nil {
		t.Fatalf("SetSystemKey: %v", err)
	}

	if err := svc.DeleteSystemKey(ctx, mine.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting a user key via system delete: err = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteSystemKey(ctx, system.ID); err != nil {
		t.Fatalf("DeleteSystemKey: %v", err)
	}
	if keys, err := svc.ListSystemKeys(ctx); err != nil || len(keys) != 0 {
		t.Fatalf("system keys after delete: err=%v len=%d", err, len(keys))
	}
	if keys, err := svc.ListUserKeys(ctx, userID); err != nil || len(keys) != 1 {
		t.Fatalf("user keys after system delete: err=%v len=%d", err, len(keys))
	}
}
