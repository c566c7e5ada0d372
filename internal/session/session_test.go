package session

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/gymsup/internal/domain"
	"github.com/dukerupert/gymsup/internal/nav"
)

func TestNew(t *testing.T) {
	s, err := New(time.Hour)
	require.NoError(t, err)

	assert.Len(t, s.ID, 43)
	assert.False(t, s.LoggedIn())
	assert.True(t, s.Cart.IsEmpty())
	assert.Equal(t, nav.PageHome, s.Nav.Page)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, time.Second)

	other, err := New(time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, other.ID)
}

func TestSession_LoggedInRequiresTokenAndUser(t *testing.T) {
	s := &Session{Token: "tok"}
	assert.False(t, s.LoggedIn())

	s = &Session{User: &domain.User{ID: 1}}
	assert.False(t, s.LoggedIn())

	s.Token = "tok"
	assert.True(t, s.LoggedIn())
}

func TestSession_SignOutClearsUserState(t *testing.T) {
	s, err := New(time.Hour)
	require.NoError(t, err)

	s.SignIn("tok", &domain.User{ID: 1, Role: domain.RoleUser})
	s.Cart = domain.NewCart([]domain.CartItem{{VariantID: 1, SKU: "A", Quantity: 1, Price: decimal.NewFromInt(10)}})
	s.Chat = []domain.ChatMessage{{Role: domain.ChatRoleUser, Text: "hi"}}
	s.Nav = nav.SelectProduct(s.Nav, 7)

	s.SignOut()

	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token)
	assert.True(t, s.Cart.IsEmpty())
	assert.Empty(t, s.Chat)
	assert.Equal(t, nav.PageHome, s.Nav.Page)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s, err := New(time.Hour)
	require.NoError(t, err)
	s.SignIn("tok", &domain.User{ID: 3, Name: "An", Role: domain.RoleAdmin})
	s.Cart = domain.NewCart([]domain.CartItem{{VariantID: 70, SKU: "ON-CHOC-5", Quantity: 2, Price: decimal.NewFromInt(1650000)}})
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.LoggedIn())
	assert.True(t, got.User.IsAdmin())
	assert.Equal(t, 2, got.Cart.ItemCount())

	sku, ok := got.Cart.SKUFor(70)
	require.True(t, ok)
	assert.Equal(t, "ON-CHOC-5", sku)

	// Mutating the returned copy does not touch the stored one.
	got.Token = ""
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok", again.Token)
}

func TestMemoryStore_Missing(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s, err := New(time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Delete(ctx, s.ID))
	require.NoError(t, store.Delete(ctx, s.ID))

	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	live := &Session{ID: "live", ExpiresAt: now.Add(time.Minute)}
	dead := &Session{ID: "dead", ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, store.Save(ctx, live))
	require.NoError(t, store.Save(ctx, dead))

	_, err := store.Get(ctx, "dead")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, store.Len())

	n, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, "live")
	assert.NoError(t, err)
}
