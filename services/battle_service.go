// services/battle_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
	"github.com/mihirzalavadiya/css-battle-showcase/storage"
	"github.com/mihirzalavadiya/css-battle-showcase/uploader"
)

// ErrNotFound is returned when no battle has the requested id. It is never
// masked as a storage error, so the HTTP adapter can answer 404 instead of 500.
var ErrNotFound = errors.New("battle not found")

// ValidationError reports a bad or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// BattleService owns the CRUD rules over whichever RecordStore is active:
// id generation, timestamping, image upload-before-persist, and not-found
// semantics. Every operation is a read-modify-write over the whole
// collection; there is no finer-grained atomicity (two concurrent admin
// sessions race at last-write-wins).
type BattleService struct {
	Store    storage.RecordStore
	Uploader uploader.ImageUploader
}

func NewBattleService(store storage.RecordStore, up uploader.ImageUploader) *BattleService {
	if up == nil {
		up = uploader.Noop{}
	}
	return &BattleService{Store: store, Uploader: up}
}

// List returns all battles in the store's natural order.
func (s *BattleService) List(ctx context.Context) ([]models.Battle, error) {
	battles, err := s.Store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	return battles, nil
}

// GetByID returns the battle with the given id or ErrNotFound.
func (s *BattleService) GetByID(ctx context.Context, id string) (models.Battle, error) {
	battles, err := s.Store.LoadAll(ctx)
	if err != nil {
		return models.Battle{}, fmt.Errorf("get battle %s: %w", id, err)
	}
	for _, b := range battles {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Battle{}, ErrNotFound
}

// Create validates the input, resolves the image payload to a URL, assigns a
// fresh uuid and createdAt, and persists. Client-supplied ids never survive:
// BattleInput has no id field, and the uuid here replaces whatever the client
// had in mind. Timestamp ids collide under rapid creation; uuids do not.
func (s *BattleService) Create(ctx context.Context, input models.BattleInput) (models.Battle, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.Battle{}, &ValidationError{Field: "title", Reason: "is required"}
	}

	// Upload before persist: a failed upload must not leave a record behind.
	imageURL, err := s.Uploader.Upload(ctx, input.Title, input.Image)
	if err != nil {
		return models.Battle{}, fmt.Errorf("create battle: %w", err)
	}

	battles, err := s.Store.LoadAll(ctx)
	if err != nil {
		return models.Battle{}, fmt.Errorf("create battle: %w", err)
	}

	battle := models.Battle{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Code:        input.Code,
		Image:       imageURL,
		CreatedAt:   now(),
	}

	battles = append(battles, battle)
	if err := s.Store.SaveAll(ctx, battles); err != nil {
		return models.Battle{}, fmt.Errorf("create battle: %w", err)
	}
	return battle, nil
}

// Update shallow-merges the supplied fields over the stored record and bumps
// updatedAt. Fields omitted from the payload are preserved; id and createdAt
// cannot be overwritten because BattleUpdate has no such fields.
func (s *BattleService) Update(ctx context.Context, id string, input models.BattleUpdate) (models.Battle, error) {
	battles, err := s.Store.LoadAll(ctx)
	if err != nil {
		return models.Battle{}, fmt.Errorf("update battle %s: %w", id, err)
	}

	idx := -1
	for i, b := range battles {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Battle{}, ErrNotFound
	}

	battle := battles[idx]
	if input.Title != nil {
		battle.Title = *input.Title
	}
	if input.Description != nil {
		battle.Description = *input.Description
	}
	if input.Code != nil {
		battle.Code = *input.Code
	}
	if input.Image != nil {
		imageURL, err := s.Uploader.Upload(ctx, battle.Title, *input.Image)
		if err != nil {
			return models.Battle{}, fmt.Errorf("update battle %s: %w", id, err)
		}
		battle.Image = imageURL
	}
	battle.UpdatedAt = now()

	battles[idx] = battle
	if err := s.Store.SaveAll(ctx, battles); err != nil {
		return models.Battle{}, fmt.Errorf("update battle %s: %w", id, err)
	}
	return battle, nil
}

// Delete removes the battle with the given id or returns ErrNotFound.
func (s *BattleService) Delete(ctx context.Context, id string) error {
	battles, err := s.Store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("delete battle %s: %w", id, err)
	}

	kept := battles[:0]
	found := false
	for _, b := range battles {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return ErrNotFound
	}

	if err := s.Store.SaveAll(ctx, kept); err != nil {
		return fmt.Errorf("delete battle %s: %w", id, err)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(models.TimeLayout)
}
