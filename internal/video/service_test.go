package video

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepository is enough for exercising service rules.
type memRepository struct {
	rows map[string]*Video
}

func (m *memRepository) Create(_ context.Context, v *Video) error {
	v.ID = "v" + strconv.Itoa(len(m.rows)+1)
	m.rows[v.ID] = v
	return nil
}

func (m *memRepository) GetByID(_ context.Context, id string) (*Video, error) {
	v, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memRepository) List(context.Context, Filter) ([]*Video, int, error) {
	return nil, 0, nil
}

func (m *memRepository) Update(_ context.Context, v *Video) error {
	if _, ok := m.rows[v.ID]; !ok {
		return ErrNotFound
	}
	m.rows[v.ID] = v
	return nil
}

func (m *memRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func TestVideoLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewService(&memRepository{rows: map[string]*Video{}})

	_, err := s.Create(ctx, CreateRequest{Title: "Oil change", URL: "  "})
	assert.ErrorIs(t, err, ErrURLRequired)

	v, err := s.Create(ctx, CreateRequest{Title: " Oil change ", URL: "https://www.youtube.com/watch?v=abc"})
	require.NoError(t, err)
	assert.Equal(t, "Oil change", v.Title)
	assert.False(t, v.Published)

	published := true
	v, err = s.Update(ctx, v.ID, UpdateRequest{Published: &published})
	require.NoError(t, err)
	assert.True(t, v.Published)

	blank := ""
	_, err = s.Update(ctx, v.ID, UpdateRequest{Title: &blank})
	assert.ErrorIs(t, err, ErrTitleRequired)

	require.NoError(t, s.Delete(ctx, v.ID))
	_, err = s.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
