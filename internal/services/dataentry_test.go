package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntryValidation(t *testing.T) {
	appCtx := newTestContext(t)
	companies := NewCompanyService(appCtx)
	entries := NewDataEntryService(appCtx)
	ctx := context.Background()

	_, err := entries.Create(ctx, CreateEntryInput{UID: "u1"})
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	_, err = entries.Create(ctx, CreateEntryInput{CompanyID: 123, UID: "u1"})
	assert.Equal(t, KindNotFound, KindOf(err))

	acme, err := companies.Create(ctx, "Acme")
	require.NoError(t, err)

	entry, err := entries.Create(ctx, CreateEntryInput{CompanyID: acme.ID, UID: "u1", DeviceType: "sensor"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", entry.CompanyName)
	require.NotNil(t, entry.UID)
	assert.Equal(t, "u1", *entry.UID)

	// UID uniqueness holds on the direct create path too.
	_, err = entries.Create(ctx, CreateEntryInput{CompanyID: acme.ID, UID: "u1"})
	assert.Equal(t, KindAlreadyExists, KindOf(err))

	// Entries without a uid do not collide with each other.
	_, err = entries.Create(ctx, CreateEntryInput{CompanyID: acme.ID, DeviceType: "gateway"})
	require.NoError(t, err)
	_, err = entries.Create(ctx, CreateEntryInput{CompanyID: acme.ID, DeviceType: "camera"})
	require.NoError(t, err)
}

func TestListEntriesFilterConjunction(t *testing.T) {
	appCtx := newTestContext(t)
	companies := NewCompanyService(appCtx)
	entries := NewDataEntryService(appCtx)
	ctx := context.Background()

	acme, err := companies.Create(ctx, "Acme")
	require.NoError(t, err)
	globex, err := companies.Create(ctx, "Globex")
	require.NoError(t, err)

	seed := []CreateEntryInput{
		{CompanyID: acme.ID, UID: "a1", DataSet: "prod"},
		{CompanyID: acme.ID, UID: "a2", DataSet: "staging"},
		{CompanyID: globex.ID, UID: "g1", DataSet: "prod"},
	}
	for _, input := range seed {
		_, err := entries.Create(ctx, input)
		require.NoError(t, err)
	}

	// Conjunction, never a union: Acme entries in "prod" only.
	matched, err := entries.List(ctx, EntryFilter{CompanyName: "Acme", DataSet: "prod"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.NotNil(t, matched[0].UID)
	assert.Equal(t, "a1", *matched[0].UID)
	assert.Equal(t, "Acme", matched[0].CompanyName)

	all, err := entries.List(ctx, EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byUID, err := entries.List(ctx, EntryFilter{UID: "g1"})
	require.NoError(t, err)
	require.Len(t, byUID, 1)
	assert.Equal(t, "Globex", byUID[0].CompanyName)

	none, err := entries.List(ctx, EntryFilter{CompanyName: "Globex", DataSet: "staging"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateEntryPartialPatch(t *testing.T) {
	appCtx := newTestContext(t)
	companies := NewCompanyService(appCtx)
	entries := NewDataEntryService(appCtx)
	ctx := context.Background()

	acme, err := companies.Create(ctx, "Acme")
	require.NoError(t, err)
	entry, err := entries.Create(ctx, CreateEntryInput{CompanyID: acme.ID, UID: "u1", DataSet: "prod"})
	require.NoError(t, err)

	updated, err := entries.Update(ctx, entry.ID, UpdateEntryInput{DeviceType: strptr("sensor")})
	require.NoError(t, err)
	assert.Equal(t, "sensor", updated.DeviceType)
	require.NotNil(t, updated.UID)
	assert.Equal(t, "u1", *updated.UID)
	assert.Equal(t, "prod", updated.DataSet)
}

func TestUpdateEntryErrors(t *testing.T) {
	appCtx := newTestContext(t)
	companies := NewCompanyService(appCtx)
	entries := NewDataEntryService(appCtx)
	ctx := context.Background()

	acme, err := companies.Create(ctx, "Acme")
	require.NoError(t, err)
	first, err := entries.Create(ctx, CreateEntryInput{CompanyID: acme.ID, UID: "u1"})
	require.NoError(t, err)
	second, err := entries.Create(ctx, CreateEntryInput{CompanyID: acme.ID, UID: "u2"})
	require.NoError(t, err)

	_, err = entries.Update(ctx, first.ID, UpdateEntryInput{})
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	_, err = entries.Update(ctx, 404, UpdateEntryInput{DeviceType: strptr("sensor")})
	assert.Equal(t, KindNotFound, KindOf(err))

	// Moving an entry onto a taken uid is rejected.
	_, err = entries.Update(ctx, second.ID, UpdateEntryInput{UID: strptr("u1")})
	assert.Equal(t, KindAlreadyExists, KindOf(err))

	// Re-asserting the entry's own uid is fine.
	_, err = entries.Update(ctx, second.ID, UpdateEntryInput{UID: strptr("u2")})
	require.NoError(t, err)
}

func TestDeleteEntry(t *testing.T) {
	appCtx := newTestContext(t)
	companies := NewCompanyService(appCtx)
	entries := NewDataEntryService(appCtx)
	ctx := context.Background()

	acme, err := companies.Create(ctx, "Acme")
	require.NoError(t, err)
	entry, err := entries.Create(ctx, CreateEntryInput{CompanyID: acme.ID, UID: "u1"})
	require.NoError(t, err)

	require.NoError(t, entries.Delete(ctx, entry.ID))

	_, err = entries.Get(ctx, entry.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = entries.Delete(ctx, entry.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}
