package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tutorlink/internal/domain"
	apperrors "tutorlink/internal/errors"
	"tutorlink/internal/order/usecase"
)

type stubVocabulary map[string]bool

func (v stubVocabulary) Contains(value string) bool { return v[value] }

type mockOrderCreator struct {
	CreateFunc func(ctx context.Context, payload domain.OrderCreate, initData string) (string, error)
}

func (m *mockOrderCreator) Create(ctx context.Context, payload domain.OrderCreate, initData string) (string, error) {
	return m.CreateFunc(ctx, payload, initData)
}

func newTestStore(creator usecase.OrderCreator) *Store {
	return NewStore(stubVocabulary{"python": true}, creator, time.Second, time.Minute, zap.NewNop())
}

func fillDraft(t *testing.T, sess *Session) {
	t.Helper()
	sess.Draft.SetTitle("Алгебра")
	sess.Draft.SetDescription("Подготовка к экзамену")
	require.NoError(t, sess.Draft.SelectTags([]string{"python"}))
}

func TestStore_Open_MountsButton(t *testing.T) {
	store := newTestStore(&mockOrderCreator{})

	sess := store.Open("query_id=1")

	state := sess.Button.State()
	assert.True(t, state.IsMounted)
	assert.True(t, state.IsVisible)
	assert.True(t, state.IsEnabled)
	assert.Equal(t, usecase.SubmitButtonText, state.Text)
	assert.Equal(t, 1, sess.Button.Subscribers())
	assert.Equal(t, 1, store.Len())

	initData, ok := sess.InitData()
	assert.True(t, ok)
	assert.Equal(t, "query_id=1", initData)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := newTestStore(&mockOrderCreator{})

	_, err := store.Get("missing")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestStore_Close_ReleasesButton(t *testing.T) {
	store := newTestStore(&mockOrderCreator{})
	sess := store.Open("query_id=1")

	require.NoError(t, store.Close(sess.ID))

	state := sess.Button.State()
	assert.False(t, state.IsMounted)
	assert.False(t, state.IsVisible)
	assert.Equal(t, 0, sess.Button.Subscribers())
	assert.Equal(t, usecase.StateClosed, sess.Flow.State())
	assert.Equal(t, 0, store.Len())

	err := store.Close(sess.ID)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestStore_ClickSubmitsThroughSession(t *testing.T) {
	var gotInitData string
	creator := &mockOrderCreator{
		CreateFunc: func(ctx context.Context, payload domain.OrderCreate, initData string) (string, error) {
			gotInitData = initData
			return "ord_42", nil
		},
	}
	store := newTestStore(creator)
	sess := store.Open("")
	sess.SetInitData("query_id=2")
	fillDraft(t, sess)

	err := sess.Button.Click(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "query_id=2", gotInitData)
	assert.Equal(t, usecase.OrdersListPath, sess.NavigatedTo())
	assert.Equal(t, []string{usecase.MsgOrderCreated + "ord_42"}, sess.TakeNotices())
	assert.Empty(t, sess.TakeNotices())
	require.NotNil(t, sess.Flow.Outcome())
	assert.Equal(t, "ord_42", sess.Flow.Outcome().OrderID)
}

func TestStore_ClickWithoutInitData(t *testing.T) {
	store := newTestStore(&mockOrderCreator{})
	sess := store.Open("")
	fillDraft(t, sess)

	err := sess.Button.Click(context.Background())

	_, ok := apperrors.IsPreconditionError(err)
	assert.True(t, ok)
	assert.Equal(t, []string{usecase.MsgInitDataMissing}, sess.TakeNotices())
	assert.Empty(t, sess.NavigatedTo())
}

func TestStore_Reap(t *testing.T) {
	store := newTestStore(&mockOrderCreator{})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	stale := store.Open("a")
	now = now.Add(30 * time.Second)
	fresh := store.Open("b")
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, store.Reap())

	_, err := store.Get(stale.ID)
	assert.Error(t, err)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
	assert.Equal(t, usecase.StateClosed, stale.Flow.State())
}

func TestStore_Run_ClosesAllOnCancel(t *testing.T) {
	store := newTestStore(&mockOrderCreator{})
	sess := store.Open("a")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, usecase.StateClosed, sess.Flow.State())
}
