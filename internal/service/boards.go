package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pribylovaa/go-board/internal/models"
	"github.com/pribylovaa/go-board/internal/pkg/log"
	"github.com/pribylovaa/go-board/internal/storage"
)

// Границы пагинации списков.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CreateBoard создаёт доску от имени ownerID.
func (s *Service) CreateBoard(ctx context.Context, ownerID int64, name string, public bool) (*models.Board, error) {
	const op = "service.boards.CreateBoard"

	name, err := validateBoardName(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	board := &models.Board{Name: name, Public: public, OwnerID: ownerID}
	if err := s.storage.SaveBoard(ctx, board); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrBoardNameTaken)
		}

		return nil, wrapStorage(op, err)
	}

	log.From(ctx).Info("board_created",
		slog.String("op", op),
		slog.Int64("board_id", board.ID),
		slog.Int64("owner_id", ownerID),
	)

	return board, nil
}

// GetBoard возвращает доску; приватная доска видна только владельцу.
func (s *Service) GetBoard(ctx context.Context, userID, boardID int64) (*models.Board, error) {
	const op = "service.boards.GetBoard"

	board, err := s.accessibleBoard(ctx, userID, boardID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return board, nil
}

// ListBoards возвращает публичные и собственные доски, самые наполненные — первыми.
func (s *Service) ListBoards(ctx context.Context, userID int64, limit, offset int) ([]models.Board, error) {
	const op = "service.boards.ListBoards"

	limit, err := pageSize(limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%s: offset: %w", op, ErrInvalidArgument)
	}

	boards, err := s.storage.ListAccessibleBoards(ctx, userID, limit, offset)
	if err != nil {
		return nil, wrapStorage(op, err)
	}

	return boards, nil
}

// UpdateBoard меняет имя и/или видимость доски. Только владелец.
func (s *Service) UpdateBoard(ctx context.Context, userID, boardID int64, upd models.BoardUpdate) (*models.Board, error) {
	const op = "service.boards.UpdateBoard"

	if _, err := s.ownedBoard(ctx, userID, boardID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if upd.Name != nil {
		name, err := validateBoardName(*upd.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.Name = &name
	}

	board, err := s.storage.UpdateBoard(ctx, boardID, upd)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return nil, fmt.Errorf("%s: %w", op, ErrBoardNameTaken)
		case errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, wrapStorage(op, err)
	}

	return board, nil
}

// DeleteBoard удаляет доску вместе с постами. Только владелец.
// Оставшиеся в буфере дельты удалённой доски снимет следующая свёртка.
func (s *Service) DeleteBoard(ctx context.Context, userID, boardID int64) error {
	const op = "service.boards.DeleteBoard"

	if _, err := s.ownedBoard(ctx, userID, boardID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteBoard(ctx, boardID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return wrapStorage(op, err)
	}

	log.From(ctx).Info("board_deleted",
		slog.String("op", op),
		slog.Int64("board_id", boardID),
	)

	return nil
}

func (s *Service) accessibleBoard(ctx context.Context, userID, boardID int64) (*models.Board, error) {
	board, err := s.storage.BoardByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, wrapStorage("service.boards.accessibleBoard", err)
	}

	if !board.Public && board.OwnerID != userID {
		return nil, ErrForbidden
	}

	return board, nil
}

func (s *Service) ownedBoard(ctx context.Context, userID, boardID int64) (*models.Board, error) {
	board, err := s.accessibleBoard(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}

	if board.OwnerID != userID {
		return nil, ErrForbidden
	}

	return board, nil
}

func validateBoardName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > 100 {
		return "", fmt.Errorf("name: %w", ErrInvalidArgument)
	}

	return name, nil
}

// pageSize: 0 — значение по умолчанию, иначе 1..MaxPageSize.
func pageSize(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultPageSize, nil
	case limit < 0 || limit > MaxPageSize:
		return 0, fmt.Errorf("limit: %w", ErrInvalidArgument)
	}

	return limit, nil
}
