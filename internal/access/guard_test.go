package access

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/careerpath/internal/database/careers"
	"github.com/mrlokans/careerpath/internal/database/dbtest"
	"github.com/mrlokans/careerpath/internal/entities"
)

func TestGuard_Authorize(t *testing.T) {
	db := dbtest.Open(t)
	owner := dbtest.CreateUser(t, db, "owner")
	other := dbtest.CreateUser(t, db, "other")
	career := dbtest.CreateCareer(t, db, owner, "Backend")

	repo := careers.NewRepository(db)
	guard := NewGuard("career", repo.GetByID)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      uint
		userID  uuid.UUID
		wantErr error
	}{
		{"owner", career.ID, owner.ID, nil},
		{"not owner", career.ID, other.ID, entities.ErrForbidden},
		{"missing record, owner", 9999, owner.ID, entities.ErrNotFound},
		{"missing record, stranger", 9999, other.ID, entities.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := guard.Authorize(ctx, tt.id, tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, career.ID, got.ID)
		})
	}
}

type note struct{ owner uuid.UUID }

func (n note) OwnerID() uuid.UUID { return n.owner }

func TestGuard_PropagatesLoaderErrors(t *testing.T) {
	boom := errors.New("connection reset")
	guard := NewGuard("note", func(ctx context.Context, id string) (note, error) {
		if id == "missing" {
			return note{}, fmt.Errorf("note: %w", entities.ErrNotFound)
		}
		return note{}, boom
	})

	_, err := guard.Authorize(context.Background(), "missing", uuid.New())
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = guard.Authorize(context.Background(), "x", uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, entities.ErrForbidden)
}

func TestOwns(t *testing.T) {
	id := uuid.New()
	assert.True(t, Owns(note{owner: id}, id))
	assert.False(t, Owns(note{owner: id}, uuid.New()))
}
