package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Dawichi/hexastats/internal/domain/account"
	"github.com/Dawichi/hexastats/internal/domain/region"
	usecasemock "github.com/Dawichi/hexastats/internal/mocks/usecase"
	basecache "github.com/Dawichi/hexastats/internal/platform/cache"
	"github.com/Dawichi/hexastats/internal/usecase"
	"github.com/Dawichi/hexastats/internal/validation"
)

func matchBody(matchID string) []byte {
	return []byte(`{"metadata":{"matchId":"` + matchID + `","participants":[]},` +
		`"info":{"gameCreation":1700000000000,"gameDuration":1200,"gameMode":"CLASSIC","queueId":420,"participants":[],"teams":[]}}`)
}

func newFrontDoor(t *testing.T) *basecache.FrontDoor {
	t.Helper()

	door, err := basecache.NewFrontDoor(basecache.NewMemoryBackend(time.Hour), basecache.Options{Enabled: true, WriteWorkers: 1})
	if err != nil {
		t.Fatalf("new front door: %v", err)
	}
	t.Cleanup(door.Close)
	return door
}

func TestRiotProvider_CachesMatchPerCluster(t *testing.T) {
	t.Parallel()

	next := usecasemock.NewRiotProvider(t)
	next.On("FetchMatch", mock.Anything, region.Platform("euw1"), "EUW1_1").Return(matchBody("EUW1_1"), nil).Once()

	door := newFrontDoor(t)
	provider := NewRiotProvider(next, door, ProviderTTLs{Match: time.Hour})
	ctx := context.Background()

	if _, err := provider.FetchMatch(ctx, "euw1", "EUW1_1"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	door.Wait()

	// eun1 shares the europe cluster
	got, err := provider.FetchMatch(ctx, "eun1", "EUW1_1")
	if err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if string(got) != string(matchBody("EUW1_1")) {
		t.Fatalf("payload=%s", got)
	}
}

func TestRiotProvider_CachesAccount(t *testing.T) {
	t.Parallel()

	id := account.RiotID{Name: "Hexa", Tag: "EUW"}
	next := usecasemock.NewRiotProvider(t)
	next.On("FetchAccount", mock.Anything, region.Platform("euw1"), id).
		Return(account.Account{PUUID: "p-1", GameName: "Hexa", TagLine: "EUW"}, nil).
		Once()

	door := newFrontDoor(t)
	provider := NewRiotProvider(next, door, ProviderTTLs{Account: time.Hour})
	ctx := context.Background()

	if _, err := provider.FetchAccount(ctx, "euw1", id); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	door.Wait()

	got, err := provider.FetchAccount(ctx, "euw1", account.RiotID{Name: "HEXA", Tag: "euw"})
	if err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if got.PUUID != "p-1" {
		t.Fatalf("account=%+v", got)
	}
}

func TestRiotProvider_DoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	next := usecasemock.NewRiotProvider(t)
	next.On("FetchMatch", mock.Anything, region.Platform("euw1"), "EUW1_2").Return(nil, usecase.ErrTransient).Once()
	next.On("FetchMatch", mock.Anything, region.Platform("euw1"), "EUW1_2").Return(matchBody("EUW1_2"), nil).Once()

	door := newFrontDoor(t)
	provider := NewRiotProvider(next, door, ProviderTTLs{Match: time.Hour})
	ctx := context.Background()

	if _, err := provider.FetchMatch(ctx, "euw1", "EUW1_2"); !errors.Is(err, usecase.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	door.Wait()
	if _, err := provider.FetchMatch(ctx, "euw1", "EUW1_2"); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestRiotProvider_DoesNotCacheInvalidMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body []byte
	}{
		{name: "missing fields", body: []byte(`{"metadata":{}}`)},
		{name: "truncated body", body: matchBody("EUW1_4")[:40]},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := usecasemock.NewRiotProvider(t)
			next.On("FetchMatch", mock.Anything, region.Platform("euw1"), "EUW1_4").Return(tt.body, nil).Twice()

			door := newFrontDoor(t)
			provider := NewRiotProvider(next, door, ProviderTTLs{Match: 168 * time.Hour})
			ctx := context.Background()

			for i := 0; i < 2; i++ {
				_, err := provider.FetchMatch(ctx, "euw1", "EUW1_4")
				if !errors.Is(err, validation.ErrValidationFailed) {
					t.Fatalf("call %d: expected validation error, got %v", i, err)
				}
				door.Wait()
			}
			if _, hit := door.Lookup(ctx, basecache.Key("match", "europe", "EUW1_4"), time.Hour); hit {
				t.Fatal("invalid payload was cached")
			}
		})
	}
}

func TestRiotProvider_PassesThroughUncachedResources(t *testing.T) {
	t.Parallel()

	query := usecase.MatchIDQuery{Start: 0, Count: 1, Type: usecase.QueueTypeAll}
	next := usecasemock.NewRiotProvider(t)
	next.On("FetchMatchIDs", mock.Anything, region.Platform("euw1"), "p-1", query).Return([]string{"EUW1_3"}, nil).Twice()

	provider := NewRiotProvider(next, newFrontDoor(t), ProviderTTLs{Account: time.Hour, Match: time.Hour})
	for i := 0; i < 2; i++ {
		ids, err := provider.FetchMatchIDs(context.Background(), "euw1", "p-1", query)
		if err != nil || len(ids) != 1 {
			t.Fatalf("ids=%v err=%v", ids, err)
		}
	}
}
