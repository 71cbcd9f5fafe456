package shortlist

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/notification"
	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
)

// Directory resolves a scout's organization for notification text.
type Directory interface {
	Organization(ctx context.Context, userID uint) (string, error)
}

type ShortlistService struct {
	repo      ShortlistRepository
	users     user.UserRepository
	players   player.PlayerRepository
	directory Directory
	notifier  notification.Notifier
}

func NewShortlistService(repo ShortlistRepository, users user.UserRepository, players player.PlayerRepository, directory Directory, notifier notification.Notifier) *ShortlistService {
	return &ShortlistService{repo: repo, users: users, players: players, directory: directory, notifier: notifier}
}

var errDuplicate = apperrors.Conflict("Player is already on your shortlist")

// Add puts a player on the scout's shortlist and tells the player.
func (s *ShortlistService) Add(ctx context.Context, scout common.Actor, playerID uint, notes string) (*Shortlist, error) {
	p, err := s.users.GetUserByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Role != user.RolePlayer {
		return nil, apperrors.NotFound("Player")
	}

	row := &Shortlist{ScoutID: scout.ID, PlayerID: playerID, Notes: strings.TrimSpace(notes)}
	err = s.repo.WithTransaction(ctx, func(tx ShortlistRepository) error {
		exists, err := tx.Exists(ctx, scout.ID, playerID)
		if err != nil {
			return err
		}
		if exists {
			return errDuplicate
		}
		return tx.Create(ctx, row)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errDuplicate
	}
	if err != nil {
		return nil, err
	}

	org := "independent"
	if s.directory != nil {
		if o, err := s.directory.Organization(ctx, scout.ID); err == nil && o != "" {
			org = o
		}
	}
	s.notifier.Notify(ctx, playerID, notification.KindShortlisted, scout.Name, org)
	return row, nil
}

// List returns the scout's shortlist, newest first.
func (s *ShortlistService) List(ctx context.Context, scoutID uint) ([]Entry, error) {
	rows, err := s.repo.ListByScout(ctx, scoutID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PlayerID)
	}
	players, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	profiles, err := s.players.GetProfilesByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		e := Entry{Shortlist: row, PlayerName: players[row.PlayerID].Name}
		if p, ok := profiles[row.PlayerID]; ok {
			e.Profile = &p
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *ShortlistService) Remove(ctx context.Context, scoutID, playerID uint) error {
	removed, err := s.repo.Delete(ctx, scoutID, playerID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NotFound("Shortlist entry")
	}
	return nil
}
