// client/local.go
package client

import (
	"context"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
	"github.com/mihirzalavadiya/css-battle-showcase/services"
	"github.com/mihirzalavadiya/css-battle-showcase/storage"
)

// LocalFacade offers the BattleClient surface directly over a RecordStore,
// with no server in between — the counterpart of the browser-only
// localStorage variant. Change broadcasting works the same way.
type LocalFacade struct {
	svc *services.BattleService

	broadcaster
}

// NewLocalFacade wraps the store in a BattleService with no image uploader;
// image values pass through as given.
func NewLocalFacade(store storage.RecordStore) *LocalFacade {
	return &LocalFacade{svc: services.NewBattleService(store, nil)}
}

func (f *LocalFacade) Subscribe(fn func([]models.Battle)) func() {
	return f.subscribe(fn)
}

func (f *LocalFacade) GetBattles(ctx context.Context) ([]models.Battle, error) {
	return f.svc.List(ctx)
}

func (f *LocalFacade) GetBattleByID(ctx context.Context, id string) (models.Battle, error) {
	return f.svc.GetByID(ctx, id)
}

func (f *LocalFacade) AddBattle(ctx context.Context, input models.BattleInput) (models.Battle, error) {
	battle, err := f.svc.Create(ctx, input)
	if err != nil {
		return models.Battle{}, err
	}
	return battle, f.refresh(ctx)
}

func (f *LocalFacade) UpdateBattle(ctx context.Context, id string, input models.BattleUpdate) (models.Battle, error) {
	battle, err := f.svc.Update(ctx, id, input)
	if err != nil {
		return models.Battle{}, err
	}
	return battle, f.refresh(ctx)
}

func (f *LocalFacade) DeleteBattle(ctx context.Context, id string) error {
	if err := f.svc.Delete(ctx, id); err != nil {
		return err
	}
	return f.refresh(ctx)
}

func (f *LocalFacade) refresh(ctx context.Context) error {
	battles, err := f.svc.List(ctx)
	if err != nil {
		return err
	}
	f.notify(battles)
	return nil
}
