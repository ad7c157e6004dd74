package game

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

// broadcast delivers events to every player and spectator in order.
// Recipients are snapshotted under the lock; the sends happen outside
// it so a slow connection cannot stall unrelated message handling.
// A failed send to a player is swallowed (the transport's disconnect
// signal handles the cleanup); a failed send to a spectator drops that
// spectator from the roster.
func (that *Session) broadcast(events ...any) {
	if len(events) == 0 {
		return
	}

	that.mu.Lock()
	recipients := make([]*Client, 0, len(that.spectators)+2)
	for _, color := range []entity.Color{entity.ColorBlack, entity.ColorWhite} {
		if client := that.players[color]; client != nil {
			recipients = append(recipients, client)
		}
	}
	recipients = append(recipients, that.spectators...)
	that.mu.Unlock()

	var dead []*Client
	for _, client := range recipients {
		for _, event := range events {
			if err := client.conn.WriteEvent(event); err != nil {
				if !client.IsPlayer() {
					dead = append(dead, client)
				}
				break
			}
		}
	}

	for _, client := range dead {
		that.dropSpectator(client)
	}
}

// send delivers events to one client only, e.g. the welcome burst or a
// targeted undo request.
func (that *Session) send(client *Client, events ...any) {
	if client == nil {
		return
	}

	for _, event := range events {
		if err := client.conn.WriteEvent(event); err != nil {
			that.logger.Debug("dropped targeted event", "client", client.id, "error", err)
			return
		}
	}
}

func (that *Session) dropSpectator(client *Client) {
	that.mu.Lock()
	for i, spectator := range that.spectators {
		if spectator == client {
			that.spectators = append(that.spectators[:i], that.spectators[i+1:]...)
			break
		}
	}
	that.mu.Unlock()

	_ = client.conn.Close()

	that.logger.Info("spectator dropped after failed send", "client", client.id)
}
