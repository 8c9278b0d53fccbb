package keys

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"codeberg.org/sbomhub/server/internal/kong"
	"codeberg.org/sbomhub/server/internal/logger"
	"codeberg.org/sbomhub/server/sbomhub/consumers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// single-consumer gateway; records the consumer argument of key calls
type fakeGateway struct {
	consumer *kong.Consumer
	keys     []kong.Key
	listErr  error

	keyCalls []string
}

func (g *fakeGateway) GetConsumer(_ context.Context, username string) (*kong.Consumer, error) {
	if g.consumer == nil || g.consumer.Username != username {
		return nil, &kong.APIError{Kind: kong.KindNotFound, StatusCode: http.StatusNotFound, Message: "Not found"}
	}

	c := *g.consumer
	return &c, nil
}

func (g *fakeGateway) ListKeys(_ context.Context, consumer string) ([]kong.Key, error) {
	g.keyCalls = append(g.keyCalls, "list "+consumer)
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.keys, nil
}

func (g *fakeGateway) CreateKey(_ context.Context, consumer, key string) (*kong.Key, error) {
	g.keyCalls = append(g.keyCalls, "create "+consumer)
	return &kong.Key{ID: "k-new", Key: key, Consumer: &kong.ConsumerRef{ID: consumer}}, nil
}

func (g *fakeGateway) DeleteKey(_ context.Context, consumer, keyID string) error {
	g.keyCalls = append(g.keyCalls, "delete "+consumer+" "+keyID)
	return nil
}

func aliceConsumer() *kong.Consumer {
	return &kong.Consumer{ID: "c-alice", Username: "ada", CustomID: "ada@alice.com"}
}

func TestService_OwnerManagesKeys(t *testing.T) {
	gateway := &fakeGateway{
		consumer: aliceConsumer(),
		keys:     []kong.Key{{ID: "k1", Key: "secret", Consumer: &kong.ConsumerRef{ID: "c-alice"}}},
	}
	svc := NewService(gateway)
	ctx := context.Background()

	list, err := svc.List(ctx, "ADA@alice.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c-alice", list[0].ConsumerID)

	key, err := svc.Create(ctx, "ada@alice.com", "custom-key-value")
	require.NoError(t, err)
	assert.Equal(t, "custom-key-value", key.Key)

	require.NoError(t, svc.Revoke(ctx, "ada@alice.com", "k1"))

	assert.Equal(t, []string{"list c-alice", "create c-alice", "delete c-alice k1"}, gateway.keyCalls)
}

func TestService_RejectsSharedUsername(t *testing.T) {
	gateway := &fakeGateway{consumer: aliceConsumer()}
	svc := NewService(gateway)
	ctx := context.Background()

	capture, records := logger.NewCapture()
	prev := logger.SetDefault(capture)
	defer logger.SetDefault(prev)

	bob := "ada@bob.com"

	_, err := svc.List(ctx, bob)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Create(ctx, bob, "")
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Revoke(ctx, bob, "k1")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Info(ctx, bob)
	assert.ErrorIs(t, err, ErrNotOwner)

	assert.Empty(t, gateway.keyCalls)
	assert.Equal(t, 4, records.Count(slog.LevelWarn))
}

func TestService_ConsumerWithoutCustomID(t *testing.T) {
	c := aliceConsumer()
	c.CustomID = ""
	svc := NewService(&fakeGateway{consumer: c})

	_, err := svc.List(context.Background(), "ada@alice.com")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestService_NotProvisioned(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewService(gateway)

	_, err := svc.Info(context.Background(), "ada@alice.com")
	require.Error(t, err)
	assert.True(t, kong.IsNotFound(err))
	assert.False(t, errors.Is(err, ErrNotOwner))
	assert.Empty(t, gateway.keyCalls)
}

func TestService_EmptyUsername(t *testing.T) {
	_, err := NewService(&fakeGateway{}).List(context.Background(), "@example.com")
	assert.ErrorIs(t, err, consumers.ErrEmptyUsername)
}

func TestService_InfoToleratesKeyListFailure(t *testing.T) {
	capture, records := logger.NewCapture()
	prev := logger.SetDefault(capture)
	defer logger.SetDefault(prev)

	gateway := &fakeGateway{consumer: aliceConsumer(), listErr: errors.New("boom")}

	info, err := NewService(gateway).Info(context.Background(), "ada@alice.com")
	require.NoError(t, err)
	assert.Equal(t, "c-alice", info.Consumer.ID)
	assert.Empty(t, info.Keys)
	assert.Equal(t, 0, info.KeyCount)
	assert.Equal(t, []string{}, info.Consumer.Tags)
	assert.Equal(t, 1, records.Count(slog.LevelError))
}
