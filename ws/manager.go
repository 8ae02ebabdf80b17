package ws

import (
	"fmt"
	"sync"

	"notifyhub_backend/internal/logger"
)

// Event is the frame delivered to room members.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type membership struct {
	client *Client
	userID uint
}

// RoomManager owns all room state: which connections are in which user room.
// Rooms are ephemeral; a room exists exactly while it has members. Services
// never touch connections, they only ask for an emit into a room.
type RoomManager struct {
	mu sync.RWMutex
	// room membership, keyed by the room's user id
	rooms map[uint]map[*Client]struct{}
	// reverse index for disconnect cleanup
	clients map[*Client]map[uint]struct{}

	register chan *Client
	join     chan membership
	leave    chan membership
	drop     chan *Client
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms:    make(map[uint]map[*Client]struct{}),
		clients:  make(map[*Client]map[uint]struct{}),
		register: make(chan *Client),
		join:     make(chan membership),
		leave:    make(chan membership),
		drop:     make(chan *Client),
	}
}

// RoomKey names a user's room.
func RoomKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// Run processes membership changes. Must be started once, as a goroutine,
// before any client connects.
func (m *RoomManager) Run() {
	for {
		select {
		case client := <-m.register:
			m.addClient(client)
		case mb := <-m.join:
			m.addMember(mb.client, mb.userID)
		case mb := <-m.leave:
			m.removeMember(mb.client, mb.userID)
		case client := <-m.drop:
			m.removeClient(client)
		}
	}
}

// Register makes the manager track a connection before it joins any room,
// so disconnect always closes its send channel exactly once.
func (m *RoomManager) Register(client *Client) {
	m.register <- client
}

// JoinRoom adds the connection to room user:<userID>. Multiple connections
// (tabs, devices) may join the same room; all of them receive emits.
func (m *RoomManager) JoinRoom(client *Client, userID uint) {
	m.join <- membership{client: client, userID: userID}
}

// LeaveRoom removes the membership. Well-behaved clients send a leave frame;
// the disconnect path cleans up for everyone else.
func (m *RoomManager) LeaveRoom(client *Client, userID uint) {
	m.leave <- membership{client: client, userID: userID}
}

// Disconnect removes the connection from every room it joined and closes its
// send channel. Safe to request more than once for the same client.
func (m *RoomManager) Disconnect(client *Client) {
	m.drop <- client
}

// EmitToUser delivers an event to every current member of the user's room.
// Best-effort: an empty room silently drops the event, and a member whose
// send buffer is full gets disconnected rather than blocking the emit.
func (m *RoomManager) EmitToUser(userID uint, event string, payload any) {
	m.mu.RLock()
	room := m.rooms[userID]
	members := make([]*Client, 0, len(room))
	for client := range room {
		members = append(members, client)
	}
	m.mu.RUnlock()

	if len(members) == 0 {
		logger.Debug("No listeners in room, event dropped",
			"room", RoomKey(userID), "event", event)
		return
	}

	frame := Event{Event: event, Data: payload}
	for _, client := range members {
		select {
		case client.Send <- frame:
		default:
			logger.Warn("Client send buffer full, disconnecting",
				"client", client.ID, "room", RoomKey(userID))
			go m.Disconnect(client)
		}
	}
}

// RoomSize reports the current member count of a user's room.
func (m *RoomManager) RoomSize(userID uint) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[userID])
}

func (m *RoomManager) addClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[client]; !ok {
		m.clients[client] = make(map[uint]struct{})
	}
}

func (m *RoomManager) addMember(client *Client, userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clients[client]; !ok {
		m.clients[client] = make(map[uint]struct{})
	}
	if _, ok := m.rooms[userID]; !ok {
		m.rooms[userID] = make(map[*Client]struct{})
	}
	m.rooms[userID][client] = struct{}{}
	m.clients[client][userID] = struct{}{}

	logger.Debug("Client joined room",
		"client", client.ID, "room", RoomKey(userID), "members", len(m.rooms[userID]))
}

func (m *RoomManager) removeMember(client *Client, userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeMemberLocked(client, userID)
}

func (m *RoomManager) removeClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	joined, ok := m.clients[client]
	if !ok {
		// Already fully removed; never close Send twice.
		return
	}
	for userID := range joined {
		m.removeMemberLocked(client, userID)
	}
	delete(m.clients, client)
	close(client.Send)

	logger.Debug("Client disconnected", "client", client.ID)
}

func (m *RoomManager) removeMemberLocked(client *Client, userID uint) {
	if room, ok := m.rooms[userID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(m.rooms, userID)
		}
	}
	if joined, ok := m.clients[client]; ok {
		delete(joined, userID)
	}
}
