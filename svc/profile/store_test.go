package profile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/finauth/svc/profile"
)

type mockDocumentStore struct {
	mock.Mock
}

func (m *mockDocumentStore) Merge(ctx context.Context, id string, set, createOnly map[string]any) error {
	args := m.Called(ctx, id, set, createOnly)
	return args.Error(0)
}

func (m *mockDocumentStore) Find(ctx context.Context, id string) (*profile.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.UserProfile), args.Error(1)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestStoreUpsert_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := profile.NewStore(profile.NewMemoryStore(nil))

	tests := []struct {
		name   string
		userID string
		fields profile.Fields
		want   error
	}{
		{"missing user id", "  ", profile.Fields{profile.FieldName: "Ana"}, profile.ErrMissingUserID},
		{"password", "u1", profile.Fields{"password": "secret123"}, profile.ErrForbiddenField},
		{"password any case", "u1", profile.Fields{"PassWord": "secret123"}, profile.ErrForbiddenField},
		{"confirm password", "u1", profile.Fields{"confirmpassword": "x"}, profile.ErrForbiddenField},
		{"unknown field", "u1", profile.Fields{"cpf": "52998224725"}, profile.ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, store.Upsert(ctx, tt.userID, tt.fields), tt.want)
		})
	}
}

func TestStoreUpsert_MergeSemantics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	mem := profile.NewMemoryStore(clk.now)
	store := profile.NewStore(mem)

	require.NoError(t, store.Upsert(ctx, "u1", profile.Fields{
		profile.FieldEmail:         "ana@example.com",
		profile.FieldName:          "Ana",
		profile.FieldEmailVerified: false,
		profile.FieldProvider:      profile.ProviderEmail,
		profile.FieldCreatedAt:     profile.ServerTimestamp,
		profile.FieldLastLogin:     profile.ServerTimestamp,
	}))
	created := clk.t

	clk.t = clk.t.Add(time.Hour)
	require.NoError(t, store.Upsert(ctx, "u1", profile.Fields{
		profile.FieldLastLogin: profile.ServerTimestamp,
		profile.FieldCreatedAt: profile.ServerTimestamp,
	}))

	p, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name, "untouched fields survive")
	assert.Equal(t, "ana@example.com", p.Email)
	assert.Equal(t, created, p.CreatedAt, "createdAt is create-only")
	assert.Equal(t, clk.t, p.LastLogin)
	assert.Equal(t, clk.t, p.UpdatedAt)
}

func TestStoreUpsert_StampsUpdatedAt(t *testing.T) {
	t.Parallel()

	docs := &mockDocumentStore{}
	docs.On("Merge", mock.Anything, "u1",
		map[string]any{
			profile.FieldEmailVerified: true,
			profile.FieldUpdatedAt:     profile.ServerTimestamp,
		},
		map[string]any(nil),
	).Return(nil).Once()

	store := profile.NewStore(docs)
	require.NoError(t, store.Upsert(context.Background(), "u1", profile.Fields{
		profile.FieldEmailVerified: true,
		profile.FieldUpdatedAt:     time.Unix(0, 0),
	}))
	docs.AssertExpectations(t)
}

func TestStoreUpsert_BackendFailure(t *testing.T) {
	t.Parallel()

	docs := &mockDocumentStore{}
	docs.On("Merge", mock.Anything, "u1", mock.Anything, mock.Anything).
		Return(errors.New("connection reset")).Once()

	store := profile.NewStore(docs)
	err := store.Upsert(context.Background(), "u1", profile.Fields{profile.FieldLastLogin: profile.ServerTimestamp})
	assert.ErrorIs(t, err, profile.ErrStoreWrite)
	docs.AssertExpectations(t)
}

func TestStoreGet(t *testing.T) {
	t.Parallel()

	store := profile.NewStore(profile.NewMemoryStore(nil))
	_, err := store.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, profile.ErrMissingUserID)
}
