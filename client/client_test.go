package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
	"github.com/mihirzalavadiya/css-battle-showcase/services"
	"github.com/mihirzalavadiya/css-battle-showcase/storage"
)

// newAPIServer exposes a real BattleService over net/http so the facade is
// exercised against live CRUD semantics, not canned responses.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := services.NewBattleService(storage.NewMemoryStore(), nil)

	writeErr := func(w http.ResponseWriter, err error) {
		status := http.StatusInternalServerError
		msg := "Internal server error"
		if errors.Is(err, services.ErrNotFound) {
			status, msg = http.StatusNotFound, "Battle not found"
		}
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			status, msg = http.StatusBadRequest, ve.Error()
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": msg})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimPrefix(r.URL.Path, "/api/battles")
		id = strings.TrimPrefix(id, "/")

		switch {
		case r.Method == http.MethodGet && id == "":
			battles, err := svc.List(ctx)
			if err != nil {
				writeErr(w, err)
				return
			}
			json.NewEncoder(w).Encode(battles)
		case r.Method == http.MethodGet:
			battle, err := svc.GetByID(ctx, id)
			if err != nil {
				writeErr(w, err)
				return
			}
			json.NewEncoder(w).Encode(battle)
		case r.Method == http.MethodPost:
			var input models.BattleInput
			json.NewDecoder(r.Body).Decode(&input)
			battle, err := svc.Create(ctx, input)
			if err != nil {
				writeErr(w, err)
				return
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(battle)
		case r.Method == http.MethodPut:
			var input models.BattleUpdate
			json.NewDecoder(r.Body).Decode(&input)
			battle, err := svc.Update(ctx, id, input)
			if err != nil {
				writeErr(w, err)
				return
			}
			json.NewEncoder(w).Encode(battle)
		case r.Method == http.MethodDelete:
			if err := svc.Delete(ctx, id); err != nil {
				writeErr(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *BattleClient {
	return New(newAPIServer(t).URL + "/api/battles")
}

func TestClientCRUDRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	battles, err := c.GetBattles(ctx)
	require.NoError(t, err)
	assert.Empty(t, battles)

	created, err := c.AddBattle(ctx, models.BattleInput{Title: "Box Centering"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := c.GetBattleByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	title := "Renamed"
	updated, err := c.UpdateBattle(ctx, created.ID, models.BattleUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	require.NoError(t, c.DeleteBattle(ctx, created.ID))

	battles, err = c.GetBattles(ctx)
	require.NoError(t, err)
	assert.Empty(t, battles)
}

func TestClientSurfacesServerErrorVerbatim(t *testing.T) {
	c := newTestClient(t)

	_, err := c.GetBattleByID(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Equal(t, "Battle not found", err.Error())
}

func TestClientBroadcastsAfterMutations(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	var received [][]models.Battle
	unsubscribe := c.Subscribe(func(battles []models.Battle) {
		received = append(received, battles)
	})

	created, err := c.AddBattle(ctx, models.BattleInput{Title: "One"})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Len(t, received[0], 1)

	title := "One v2"
	_, err = c.UpdateBattle(ctx, created.ID, models.BattleUpdate{Title: &title})
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "One v2", received[1][0].Title)

	require.NoError(t, c.DeleteBattle(ctx, created.ID))
	require.Len(t, received, 3)
	assert.Empty(t, received[2])

	// No broadcasts after unsubscribe; calling it again is harmless.
	unsubscribe()
	unsubscribe()
	_, err = c.AddBattle(ctx, models.BattleInput{Title: "Two"})
	require.NoError(t, err)
	assert.Len(t, received, 3)
}

func TestClientFailedMutationDoesNotBroadcast(t *testing.T) {
	c := newTestClient(t)

	notified := 0
	defer c.Subscribe(func([]models.Battle) { notified++ })()

	_, err := c.AddBattle(context.Background(), models.BattleInput{})
	require.Error(t, err)
	assert.Zero(t, notified)
}
