package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YukiGDMG/TCP-IP/internal/entity"
	"github.com/YukiGDMG/TCP-IP/internal/protocol"
)

func newTestManager() (*Manager, *fakeHistory) {
	history := &fakeHistory{}
	return NewManager(testLogger(), history, 0), history
}

func TestManager_Register(t *testing.T) {
	manager, _ := newTestManager()

	t.Run("welcomes by nickname", func(t *testing.T) {
		sender := &fakeSender{}

		session := manager.Register(sender, "Alice")

		assert.Equal(t, "Alice", session.Nickname)
		assert.Equal(t, entity.PhaseLobby, session.Phase())

		welcome := sender.lastEvent(protocol.EventWelcome)
		require.NotNil(t, welcome)
		assert.Contains(t, welcome.Message, "Alice")
	})

	t.Run("blank nickname falls back to Unknown", func(t *testing.T) {
		session := manager.Register(&fakeSender{}, "   ")
		assert.Equal(t, "Unknown", session.Nickname)
	})
}

func TestManager_RequestMatch(t *testing.T) {
	manager, _ := newTestManager()
	sender := &fakeSender{}
	session := manager.Register(sender, "Alice")

	// When: requesting a match twice without cancelling
	manager.Dispatch(session, &protocol.Message{Type: protocol.TypeRequestMatch})
	manager.Dispatch(session, &protocol.Message{Type: protocol.TypeRequestMatch})

	// Then: the session is queued exactly once
	assert.Equal(t, entity.PhaseQueued, session.Phase())
	assert.Equal(t, 1, manager.QueueLen())
	assert.Equal(t, 1, sender.countEvent(protocol.EventSearching))
}

func TestManager_CancelMatch(t *testing.T) {
	manager, _ := newTestManager()
	sender := &fakeSender{}
	session := manager.Register(sender, "Alice")

	manager.Dispatch(session, &protocol.Message{Type: protocol.TypeRequestMatch})
	manager.Dispatch(session, &protocol.Message{Type: protocol.TypeCancelMatch})

	// Then: the session is back in the lobby and out of the queue
	assert.Equal(t, entity.PhaseLobby, session.Phase())
	assert.Equal(t, 0, manager.QueueLen())
	require.NotNil(t, sender.lastEvent(protocol.EventMatchCancelled))
}

func TestManager_WrongPhaseCommandsIgnored(t *testing.T) {
	manager, _ := newTestManager()
	sender := &fakeSender{}
	session := manager.Register(sender, "Alice")

	// When: game-phase and queue-phase commands arrive in the lobby
	manager.Dispatch(session, &protocol.Message{Type: protocol.TypeSubmitMove, Message: "rock"})
	manager.Dispatch(session, &protocol.Message{Type: protocol.TypeCancelMatch})
	manager.Dispatch(session, &protocol.Message{Type: protocol.TypeLeaveGame})
	manager.Dispatch(session, &protocol.Message{Type: protocol.TypeTimeoutElapsed})
	manager.Dispatch(session, &protocol.Message{Type: 42})

	// Then: nothing changes and no error reaches the client
	assert.Equal(t, entity.PhaseLobby, session.Phase())
	assert.Equal(t, 0, manager.QueueLen())
	assert.Empty(t, sender.results())
	assert.Nil(t, sender.lastEvent(protocol.EventMatchCancelled))
}

func TestManager_DisconnectMidQueue(t *testing.T) {
	manager, _ := newTestManager()
	session := manager.Register(&fakeSender{}, "Alice")

	manager.Dispatch(session, &protocol.Message{Type: protocol.TypeRequestMatch})

	// When: the connection drops while queued
	manager.Disconnect(session)

	// Then: the queue no longer references the session
	assert.Equal(t, 0, manager.QueueLen())
	assert.Equal(t, entity.PhaseLobby, session.Phase())
}

func TestManager_DisconnectInGameForfeits(t *testing.T) {
	manager, _ := newTestManager()
	matchmaker := NewMatchmaker(testLogger(), manager)

	senderA := &fakeSender{}
	senderB := &fakeSender{}
	alice := manager.Register(senderA, "Alice")
	bob := manager.Register(senderB, "Bob")

	manager.Dispatch(alice, &protocol.Message{Type: protocol.TypeRequestMatch})
	manager.Dispatch(bob, &protocol.Message{Type: protocol.TypeRequestMatch})
	matchmaker.PairAll()

	require.Equal(t, entity.PhaseInGame, alice.Phase())

	// When: Alice's connection drops mid-round
	manager.Disconnect(alice)

	// Then: Bob wins by forfeiture and both sessions are released
	require.NotNil(t, senderB.lastEvent(protocol.EventOpponentLeft))
	assert.Equal(t, entity.PhaseLobby, alice.Phase())
	assert.Equal(t, entity.PhaseLobby, bob.Phase())
	assert.Equal(t, 0, manager.ActiveRooms())
}

func TestManager_FullRoundScenario(t *testing.T) {
	manager, history := newTestManager()
	matchmaker := NewMatchmaker(testLogger(), manager)

	senderA := &fakeSender{}
	senderB := &fakeSender{}
	alice := manager.Register(senderA, "Alice")
	bob := manager.Register(senderB, "Bob")

	// Given: both players request a match
	manager.Dispatch(alice, &protocol.Message{Type: protocol.TypeRequestMatch})
	manager.Dispatch(bob, &protocol.Message{Type: protocol.TypeRequestMatch})
	matchmaker.PairAll()

	// Then: each side is notified with the other's nickname
	foundA := senderA.lastEvent(protocol.EventMatchFound)
	require.NotNil(t, foundA)
	assert.Contains(t, foundA.Message, "Bob")
	foundB := senderB.lastEvent(protocol.EventMatchFound)
	require.NotNil(t, foundB)
	assert.Contains(t, foundB.Message, "Alice")

	// When: Alice plays rock, Bob plays scissors
	manager.Dispatch(alice, &protocol.Message{Type: protocol.TypeSubmitMove, Message: "Rock "})
	manager.Dispatch(bob, &protocol.Message{Type: protocol.TypeSubmitMove, Message: "scissors"})

	// Then: Alice wins, Bob loses, moves cross over literally
	resultsA := senderA.results()
	require.Len(t, resultsA, 1)
	assert.Equal(t, protocol.ResultWin, resultsA[0].Result)
	assert.Equal(t, "scissors", resultsA[0].OpponentMove)

	resultsB := senderB.results()
	require.Len(t, resultsB, 1)
	assert.Equal(t, protocol.ResultLose, resultsB[0].Result)
	assert.Equal(t, "rock", resultsB[0].OpponentMove)

	// Then: both return to the lobby and may queue again immediately
	assert.Equal(t, 1, senderA.countEvent(protocol.EventReturnToLobby))
	assert.Equal(t, 1, senderB.countEvent(protocol.EventReturnToLobby))

	manager.Dispatch(alice, &protocol.Message{Type: protocol.TypeRequestMatch})
	assert.Equal(t, entity.PhaseQueued, alice.Phase())

	// Then: the round reaches the history, best-effort but observable
	require.Eventually(t, func() bool {
		return len(history.all()) == 1
	}, time.Second, 5*time.Millisecond)
	record := history.all()[0]
	assert.Equal(t, entity.ReasonCompleted, record.Reason)
	assert.Equal(t, "Alice", record.PlayerA)
	assert.Equal(t, "Bob", record.PlayerB)
	assert.Equal(t, 0, manager.ActiveRooms())
}

func TestManager_LeaveBeforeMoveScenario(t *testing.T) {
	manager, _ := newTestManager()
	matchmaker := NewMatchmaker(testLogger(), manager)

	senderA := &fakeSender{}
	senderB := &fakeSender{}
	alice := manager.Register(senderA, "Alice")
	bob := manager.Register(senderB, "Bob")

	manager.Dispatch(alice, &protocol.Message{Type: protocol.TypeRequestMatch})
	manager.Dispatch(bob, &protocol.Message{Type: protocol.TypeRequestMatch})
	matchmaker.PairAll()

	// When: Alice forfeits before any move
	manager.Dispatch(alice, &protocol.Message{Type: protocol.TypeLeaveGame})

	// Then: Bob is told he won and returns to the lobby
	require.NotNil(t, senderB.lastEvent(protocol.EventOpponentLeft))
	assert.Equal(t, 1, senderB.countEvent(protocol.EventReturnToLobby))

	// Then: Alice resets to the lobby without ever seeing a result
	assert.Empty(t, senderA.results())
	assert.Equal(t, entity.PhaseLobby, alice.Phase())
}

func TestManager_ClientAssertedTimeout(t *testing.T) {
	manager, _ := newTestManager()
	matchmaker := NewMatchmaker(testLogger(), manager)

	senderA := &fakeSender{}
	senderB := &fakeSender{}
	alice := manager.Register(senderA, "Alice")
	bob := manager.Register(senderB, "Bob")

	manager.Dispatch(alice, &protocol.Message{Type: protocol.TypeRequestMatch})
	manager.Dispatch(bob, &protocol.Message{Type: protocol.TypeRequestMatch})
	matchmaker.PairAll()

	// When: a client asserts its countdown expired
	manager.Dispatch(bob, &protocol.Message{Type: protocol.TypeTimeoutElapsed})

	// Then: the round ends with no winner
	assert.Empty(t, senderA.results())
	assert.Empty(t, senderB.results())
	require.NotNil(t, senderA.lastEvent(protocol.EventTimeExpired))
	assert.Equal(t, entity.PhaseLobby, alice.Phase())
	assert.Equal(t, entity.PhaseLobby, bob.Phase())
}
