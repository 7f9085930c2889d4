package service

import (
	"testing"

	"lingolink/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRequest(t *testing.T, friends *FriendService, sender, recipient uuid.UUID) *model.FriendRequest {
	t.Helper()
	var request model.FriendRequest
	err := friends.db.Where("pair_key = ?", model.PairKey(sender, recipient)).First(&request).Error
	require.NoError(t, err)
	return &request
}

func TestSendRequest_CreatesPendingAndNotifiesRecipient(t *testing.T) {
	db, _, notifs, friends := newServices(t)
	alice := createUser(t, db)
	bob := createUser(t, db)

	require.NoError(t, friends.SendRequest(alice.ID, bob.ID))

	request := findRequest(t, friends, alice.ID, bob.ID)
	assert.Equal(t, model.RequestStatusPending, request.Status)
	assert.Equal(t, alice.ID, request.SenderID)
	assert.Equal(t, bob.ID, request.RecipientID)

	// recipient got a friend_request notification
	list, err := notifs.List(bob.ID, 10, 0, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.NotificationFriendRequest, list[0].Type)
}

func TestSendRequest_SelfFails(t *testing.T) {
	db, _, _, friends := newServices(t)
	alice := createUser(t, db)

	err := friends.SendRequest(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestSendRequest_RecipientMissing(t *testing.T) {
	db, _, _, friends := newServices(t)
	alice := createUser(t, db)

	err := friends.SendRequest(alice.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendRequest_DuplicateEitherDirection(t *testing.T) {
	db, _, _, friends := newServices(t)
	alice := createUser(t, db)
	bob := createUser(t, db)

	require.NoError(t, friends.SendRequest(alice.ID, bob.ID))

	assert.ErrorIs(t, friends.SendRequest(alice.ID, bob.ID), ErrRequestExists)
	assert.ErrorIs(t, friends.SendRequest(bob.ID, alice.ID), ErrRequestExists)
}

func TestSendRequest_AlreadyFriends(t *testing.T) {
	db, users, _, friends := newServices(t)
	alice := createUser(t, db)
	bob := createUser(t, db)

	require.NoError(t, users.AddFriendEdge(alice.ID, bob.ID))

	assert.ErrorIs(t, friends.SendRequest(alice.ID, bob.ID), ErrAlreadyFriends)
}

func TestAcceptRequest_FormsSymmetricFriendship(t *testing.T) {
	db, users, notifs, friends := newServices(t)
	alice := createUser(t, db)
	bob := createUser(t, db)

	require.NoError(t, friends.SendRequest(alice.ID, bob.ID))
	request := findRequest(t, friends, alice.ID, bob.ID)

	require.NoError(t, friends.AcceptRequest(request.ID, bob.ID))

	// record is terminal accepted
	request = findRequest(t, friends, alice.ID, bob.ID)
	assert.Equal(t, model.RequestStatusAccepted, request.Status)

	// friendship is symmetric regardless of argument order
	for _, pair := range [][2]uuid.UUID{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		ok, err := users.IsFriend(pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, ok)
	}

	aliceFriends, err := users.Friends(alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, bob.ID, aliceFriends[0].ID)

	bobFriends, err := users.Friends(bob.ID)
	require.NoError(t, err)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, alice.ID, bobFriends[0].ID)

	// both parties were told the connection formed
	for _, id := range []uuid.UUID{alice.ID, bob.ID} {
		list, err := notifs.List(id, 10, 0, false)
		require.NoError(t, err)
		var accepted int
		for _, n := range list {
			if n.Type == model.NotificationFriendAccepted {
				accepted++
			}
		}
		assert.Equal(t, 1, accepted, "user %s should have one friend_accepted notification", id)
	}
}

func TestAcceptRequest_OnlyRecipientMayAccept(t *testing.T) {
	db, users, _, friends := newServices(t)
	alice := createUser(t, db)
	bob := createUser(t, db)
	carol := createUser(t, db)

	require.NoError(t, friends.SendRequest(alice.ID, bob.ID))
	request := findRequest(t, friends, alice.ID, bob.ID)

	// the sender cannot accept their own request
	assert.ErrorIs(t, friends.AcceptRequest(request.ID, alice.ID), ErrNotRecipient)
	// nor can a third party
	assert.ErrorIs(t, friends.AcceptRequest(request.ID, carol.ID), ErrNotRecipient)

	ok, err := users.IsFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAcceptRequest_SecondAcceptConflicts(t *testing.T) {
	db, _, _, friends := newServices(t)
	alice := createUser(t, db)
	bob := createUser(t, db)

	require.NoError(t, friends.SendRequest(alice.ID, bob.ID))
	request := findRequest(t, friends, alice.ID, bob.ID)

	require.NoError(t, friends.AcceptRequest(request.ID, bob.ID))
	assert.ErrorIs(t, friends.AcceptRequest(request.ID, bob.ID), ErrAlreadyHandled)
}

func TestAcceptRequest_NotFound(t *testing.T) {
	db, _, _, friends := newServices(t)
	bob := createUser(t, db)

	assert.ErrorIs(t, friends.AcceptRequest(uuid.New(), bob.ID), ErrRequestNotFound)
}

func TestRejectRequest_DeletesRecordAndFreesPair(t *testing.T) {
	db, users, _, friends := newServices(t)
	alice := createUser(t, db)
	bob := createUser(t, db)

	require.NoError(t, friends.SendRequest(alice.ID, bob.ID))
	request := findRequest(t, friends, alice.ID, bob.ID)

	// only the recipient may reject
	assert.ErrorIs(t, friends.RejectRequest(request.ID, alice.ID), ErrNotRecipient)

	require.NoError(t, friends.RejectRequest(request.ID, bob.ID))

	// record is unfindable, no friendship formed
	_, err := friends.getRequest(request.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
	ok, err := users.IsFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// the pair may exchange a fresh request
	require.NoError(t, friends.SendRequest(alice.ID, bob.ID))
}

func TestRejectRequest_NotFound(t *testing.T) {
	db, _, _, friends := newServices(t)
	bob := createUser(t, db)

	assert.ErrorIs(t, friends.RejectRequest(uuid.New(), bob.ID), ErrRequestNotFound)
}

func TestListIncomingAndOutgoing(t *testing.T) {
	db, _, _, friends := newServices(t)
	alice := createUser(t, db)
	bob := createUser(t, db)
	carol := createUser(t, db)

	require.NoError(t, friends.SendRequest(alice.ID, bob.ID))
	require.NoError(t, friends.SendRequest(carol.ID, bob.ID))

	incoming, err := friends.ListIncoming(bob.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	for _, view := range incoming {
		require.NotNil(t, view.Sender)
		assert.Equal(t, model.RequestStatusPending, view.Status)
		assert.Nil(t, view.Recipient)
	}

	outgoing, err := friends.ListOutgoing(alice.ID)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	require.NotNil(t, outgoing[0].Recipient)
	assert.Equal(t, bob.ID, outgoing[0].Recipient.ID)

	// nothing pending for the senders' incoming views
	incoming, err = friends.ListIncoming(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)
}

func TestListAcceptedForSender(t *testing.T) {
	db, _, _, friends := newServices(t)
	alice := createUser(t, db)
	bob := createUser(t, db)

	require.NoError(t, friends.SendRequest(alice.ID, bob.ID))
	request := findRequest(t, friends, alice.ID, bob.ID)
	require.NoError(t, friends.AcceptRequest(request.ID, bob.ID))

	accepted, err := friends.ListAcceptedForSender(alice.ID)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, model.RequestStatusAccepted, accepted[0].Status)
	require.NotNil(t, accepted[0].Recipient)
	assert.Equal(t, bob.ID, accepted[0].Recipient.ID)

	// accepted entries are sender-scoped; pending incoming is gone for bob
	incoming, err := friends.ListIncoming(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)
}
