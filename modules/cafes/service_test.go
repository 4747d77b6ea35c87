package cafes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcafe/cafehub/modules/cafes"
)

type memStore struct {
	byID map[string]cafes.Cafe
}

func newMemStore() *memStore { return &memStore{byID: map[string]cafes.Cafe{}} }

func (m *memStore) Insert(_ context.Context, c cafes.Cafe) error {
	if _, ok := m.byID[c.ID]; ok {
		return cafes.ErrIDTaken
	}
	m.byID[c.ID] = c
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (cafes.Cafe, error) {
	c, ok := m.byID[id]
	if !ok {
		return cafes.Cafe{}, cafes.ErrNotFound
	}
	return c, nil
}

func (m *memStore) List(context.Context) ([]cafes.Cafe, error) {
	out := make([]cafes.Cafe, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) Update(_ context.Context, c cafes.Cafe) error {
	if _, ok := m.byID[c.ID]; !ok {
		return cafes.ErrNotFound
	}
	m.byID[c.ID] = c
	return nil
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("slugs the name into the id", func(t *testing.T) {
		t.Parallel()

		svc := cafes.NewService(newMemStore(), nil)
		c, err := svc.Create(context.Background(), cafes.CreateInput{Name: "Chai Point (MG Road)"})
		require.NoError(t, err)

		assert.Equal(t, "chai-point-mg-road", c.ID)
		assert.Equal(t, "Chai Point (MG Road)", c.Name)
		assert.True(t, c.Active)
	})

	t.Run("rejects blank names", func(t *testing.T) {
		t.Parallel()

		svc := cafes.NewService(newMemStore(), nil)
		for _, name := range []string{"", "   ", "!!!"} {
			_, err := svc.Create(context.Background(), cafes.CreateInput{Name: name})
			assert.ErrorIs(t, err, cafes.ErrInvalidCafe)
		}
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		t.Parallel()

		svc := cafes.NewService(newMemStore(), nil)
		_, err := svc.Create(context.Background(), cafes.CreateInput{Name: "Chai Point"})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), cafes.CreateInput{Name: "chai  point"})
		assert.ErrorIs(t, err, cafes.ErrIDTaken)
	})
}

func TestUpdateKeepsID(t *testing.T) {
	t.Parallel()

	svc := cafes.NewService(newMemStore(), nil)
	c, err := svc.Create(context.Background(), cafes.CreateInput{Name: "Chai Point"})
	require.NoError(t, err)

	newName := "Chai Point Express"
	updated, err := svc.Update(context.Background(), c.ID, cafes.UpdateInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, c.ID, updated.ID)
	assert.Equal(t, newName, updated.Name)
}

func TestDeactivate(t *testing.T) {
	t.Parallel()

	svc := cafes.NewService(newMemStore(), nil)
	c, err := svc.Create(context.Background(), cafes.CreateInput{Name: "Chai Point"})
	require.NoError(t, err)

	got, err := svc.Deactivate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = svc.Deactivate(context.Background(), "ghost")
	assert.ErrorIs(t, err, cafes.ErrNotFound)
}
