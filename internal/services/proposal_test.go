package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/types"
)

func TestProposeQueuesForOrdinaryMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "dalia", userOpts{})
	object := env.createObject(t, "Brass coffee pot")

	result, err := env.proposalSvc.Propose(ctx, member.ID, object.ID, "typo fix", map[string]string{
		"title": "Brass coffee pot (dallah)",
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, result.Proposal.Status)
	assert.Nil(t, result.Object)

	// The entry is untouched until review.
	current, err := env.heritage.GetByID(ctx, nil, object.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brass coffee pot", current.Title)
}

func TestProposeRejectsUnknownField(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "yusuf", userOpts{})
	object := env.createObject(t, "Clay jar")

	_, err := env.proposalSvc.Propose(ctx, member.ID, object.ID, "", map[string]string{
		"image_path": "/uploads/sneaky.jpg",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apierr.StatusOf(err))

	_, err = env.proposalSvc.Propose(ctx, member.ID, object.ID, "", map[string]string{})
	require.Error(t, err)
}

func TestProposeAutoAppliesForModerator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	moderator := env.createUser(t, "mawada", userOpts{rank: 997})
	object := env.createObject(t, "Palm frond basket")

	result, err := env.proposalSvc.Propose(ctx, moderator.ID, object.ID, "", map[string]string{
		"title":  "Palm frond basket (restored)",
		"region": string(types.RegionJazan),
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, result.Proposal.Status)
	require.NotNil(t, result.Object)

	current, err := env.heritage.GetByID(ctx, nil, object.ID)
	require.NoError(t, err)
	assert.Equal(t, "Palm frond basket (restored)", current.Title)
	assert.Equal(t, types.RegionJazan, current.Region)
	// Untouched fields keep their values.
	assert.Equal(t, "A catalogued heritage object.", current.Description)
	assert.Equal(t, types.TypeVessel, current.ObjectType)
}

func TestReviewAppliesStoredChangeSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "faisal", userOpts{})
	reviewer := env.createUser(t, "curator", userOpts{staff: true})
	object := env.createObject(t, "Incense burner")

	proposed, err := env.proposalSvc.Propose(ctx, member.ID, object.ID, "add maker", map[string]string{
		"maker":       "Asiri workshop",
		"origin_date": "1910-03-01",
	})
	require.NoError(t, err)

	result, err := env.proposalSvc.Review(ctx, reviewer.ID, proposed.Proposal.ID, true)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, result.Proposal.Status)

	current, err := env.heritage.GetByID(ctx, nil, object.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asiri workshop", current.Maker)
	assert.Equal(t, "1910-03-01", current.OriginDate.Format(types.DateLayout))
	assert.Equal(t, "Incense burner", current.Title)

	// The approved proposal stays stored as the audit record.
	stored, err := env.proposals.GetByID(ctx, nil, proposed.Proposal.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, types.StatusApproved, stored.Status)
}

func TestReviewProposalIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "hala", userOpts{})
	reviewer := env.createUser(t, "curator2", userOpts{staff: true})
	object := env.createObject(t, "Silver anklet")

	proposed, err := env.proposalSvc.Propose(ctx, member.ID, object.ID, "", map[string]string{
		"title": "Silver anklet (hijl)",
	})
	require.NoError(t, err)

	_, err = env.proposalSvc.Review(ctx, reviewer.ID, proposed.Proposal.ID, false)
	require.NoError(t, err)

	_, err = env.proposalSvc.Review(ctx, reviewer.ID, proposed.Proposal.ID, true)
	require.Error(t, err)
	assert.Equal(t, "precondition_violation", apierr.CodeOf(err))

	current, err := env.heritage.GetByID(ctx, nil, object.ID)
	require.NoError(t, err)
	assert.Equal(t, "Silver anklet", current.Title)
}

func TestProposeInlineDiffsAgainstCurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "rania", userOpts{})
	object := env.createObject(t, "Wooden door panel")

	form := map[string]string{}
	for _, name := range types.EditableFields() {
		form[name] = object.FieldValue(name)
	}

	// Nothing changed: the proposal is refused outright.
	_, err := env.proposalSvc.ProposeInline(ctx, member.ID, object.ID, "", form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No changes detected")

	// One field changed: only that field lands in the change-set.
	form["materials"] = "tamarisk wood"
	result, err := env.proposalSvc.ProposeInline(ctx, member.ID, object.ID, "", form)
	require.NoError(t, err)

	var changes map[string]string
	require.NoError(t, json.Unmarshal(result.Proposal.Data, &changes))
	assert.Equal(t, map[string]string{"materials": "tamarisk wood"}, changes)
}

func TestProposeAgainstMissingObject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := env.createUser(t, "omar", userOpts{})

	_, err := env.proposalSvc.Propose(ctx, member.ID, uuid.New(), "", map[string]string{"title": "x"})
	require.Error(t, err)
	assert.Equal(t, 404, apierr.StatusOf(err))
}
