package feedback_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcafe/cafehub/modules/feedback"
	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/scope"
)

type memStore struct {
	entries []feedback.Entry
}

func (m *memStore) Insert(_ context.Context, e feedback.Entry) error {
	m.entries = append([]feedback.Entry{e}, m.entries...)
	return nil
}

func (m *memStore) List(context.Context) ([]feedback.Entry, error) {
	return m.entries, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return feedback.ErrNotFound
}

var staffA = access.Identity{ID: "s1", Email: "s1@x.dev", Role: access.RoleStaff, CafeID: "cafe-a", Approval: access.ApprovalApproved}

func newTestService() (*feedback.Service, *memStore) {
	store := &memStore{}
	scoper := scope.NewScoper(access.NewResolver("owner@smartcafe.dev"))
	return feedback.NewService(store, scoper, nil), store
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	t.Run("anonymous submission with defaults", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		e, err := svc.Submit(context.Background(), feedback.SubmitInput{Rating: 4})
		require.NoError(t, err)

		assert.Equal(t, feedback.CategoryGeneral, e.Category)
		assert.Equal(t, scope.DefaultCafeID, e.CafeID)
		assert.Empty(t, e.Name)
	})

	t.Run("rejects out of range ratings", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		for _, rating := range []int{0, -1, 6} {
			_, err := svc.Submit(context.Background(), feedback.SubmitInput{Rating: rating})
			assert.ErrorIs(t, err, feedback.ErrInvalidRating)
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()
		_, err := svc.Submit(context.Background(), feedback.SubmitInput{Rating: 3, Category: "parking"})
		assert.ErrorIs(t, err, feedback.ErrInvalidCategory)
	})
}

func TestListFilters(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	seed := []feedback.SubmitInput{
		{Rating: 5, Category: feedback.CategoryFood, CafeID: "cafe-a"},
		{Rating: 5, Category: feedback.CategoryService, CafeID: "cafe-a"},
		{Rating: 2, Category: feedback.CategoryFood, CafeID: "cafe-a"},
		{Rating: 4, Category: feedback.CategoryFood, CafeID: "cafe-b"},
	}
	for _, in := range seed {
		_, err := svc.Submit(context.Background(), in)
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), staffA, feedback.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3, "other cafés' feedback stays hidden")

	fives, err := svc.List(context.Background(), staffA, feedback.Filter{Rating: 5})
	require.NoError(t, err)
	assert.Len(t, fives, 2)

	food, err := svc.List(context.Background(), staffA, feedback.Filter{Category: feedback.CategoryFood})
	require.NoError(t, err)
	assert.Len(t, food, 2)

	both, err := svc.List(context.Background(), staffA, feedback.Filter{Rating: 5, Category: feedback.CategoryFood})
	require.NoError(t, err)
	assert.Len(t, both, 1)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	empty, err := svc.Summarize(context.Background(), staffA)
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Average)

	for _, rating := range []int{5, 5, 4, 2} {
		_, err := svc.Submit(context.Background(), feedback.SubmitInput{Rating: rating, CafeID: "cafe-a"})
		require.NoError(t, err)
	}

	sum, err := svc.Summarize(context.Background(), staffA)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Count)
	assert.InDelta(t, 4.0, sum.Average, 1e-9)
	assert.Equal(t, 2, sum.Distribution[5])
	assert.Equal(t, 1, sum.Distribution[4])
	assert.Equal(t, 0, sum.Distribution[3])
	assert.Equal(t, 1, sum.Distribution[2])
}
