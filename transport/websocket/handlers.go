package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/game"
)

func (that *Server) handleMove(client *game.Client, data []byte) error {
	var payload movePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid move payload: %w", err)
	}

	return that.session.HandleMove(client, payload.Row, payload.Col)
}

func (that *Server) handleReset(client *game.Client, _ []byte) error {
	return that.session.HandleReset(client)
}

func (that *Server) handleResign(client *game.Client, _ []byte) error {
	return that.session.HandleResign(client)
}

func (that *Server) handleUndoRequest(client *game.Client, _ []byte) error {
	return that.session.HandleUndoRequest(client)
}

func (that *Server) handleUndoResponse(client *game.Client, data []byte) error {
	var payload undoResponsePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid undo response payload: %w", err)
	}

	return that.session.HandleUndoResponse(client, payload.Accepted)
}

func (that *Server) handlePause(client *game.Client, _ []byte) error {
	return that.session.HandlePause(client)
}

func (that *Server) handleUnpause(client *game.Client, _ []byte) error {
	return that.session.HandleUnpause(client)
}

func (that *Server) handleSetUsername(client *game.Client, data []byte) error {
	var payload usernamePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid username payload: %w", err)
	}

	return that.session.SetUsername(client, payload.Username)
}

func (that *Server) handleAdminSwapColors(_ *game.Client, data []byte) error {
	payload, err := decodeAdminPayload(data)
	if err != nil {
		return err
	}

	return that.session.AdminSwapColors(payload.Password)
}

func (that *Server) handleAdminUndo(_ *game.Client, data []byte) error {
	payload, err := decodeAdminPayload(data)
	if err != nil {
		return err
	}

	return that.session.AdminUndo(payload.Password)
}

func (that *Server) handleAdminChangeCapacity(_ *game.Client, data []byte) error {
	payload, err := decodeAdminPayload(data)
	if err != nil {
		return err
	}

	return that.session.AdminChangeCapacity(payload.Password, payload.Capacity)
}

func (that *Server) handleAdminChangeTimer(_ *game.Client, data []byte) error {
	payload, err := decodeAdminPayload(data)
	if err != nil {
		return err
	}

	return that.session.AdminChangeTimer(payload.Password, payload.Seconds)
}

func (that *Server) handleAdminChangeTotalTime(_ *game.Client, data []byte) error {
	payload, err := decodeAdminPayload(data)
	if err != nil {
		return err
	}

	return that.session.AdminChangeTotalTime(payload.Password, payload.Seconds)
}

func (that *Server) handleAdminChangePauseDuration(_ *game.Client, data []byte) error {
	payload, err := decodeAdminPayload(data)
	if err != nil {
		return err
	}

	return that.session.AdminChangePauseDuration(payload.Password, payload.Seconds)
}

func (that *Server) handleAdminClearScores(_ *game.Client, data []byte) error {
	payload, err := decodeAdminPayload(data)
	if err != nil {
		return err
	}

	return that.session.AdminClearScores(payload.Password)
}

func (that *Server) handleAdminSwapSpectator(_ *game.Client, data []byte) error {
	payload, err := decodeAdminPayload(data)
	if err != nil {
		return err
	}

	return that.session.AdminSwapSpectator(payload.Password, payload.SpectatorIndex, payload.PlayerColor)
}

func decodeAdminPayload(data []byte) (*adminPayload, error) {
	var payload adminPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid admin payload: %w", err)
	}

	return &payload, nil
}
