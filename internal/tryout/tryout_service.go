package tryout

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/notification"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
	"github.com/DhavalSuthar-24/scoutnet/pkg/utils"
)

const displayDate = "Mon 2 Jan 2006 15:04"

// Directory resolves a scout's organization for notification text.
type Directory interface {
	Organization(ctx context.Context, userID uint) (string, error)
}

// TryoutInput is the create payload. Date accepts YYYY-MM-DD with Time, RFC3339,
// or a phrase such as "next friday at 5pm".
type TryoutInput struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// TryoutUpdate carries optional fields; nil leaves the stored value alone.
type TryoutUpdate struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Description *string `json:"description"`
}

type TryoutService struct {
	repo      TryoutRepository
	users     user.UserRepository
	directory Directory
	notifier  notification.Notifier
	now       func() time.Time
}

func NewTryoutService(repo TryoutRepository, users user.UserRepository, directory Directory, notifier notification.Notifier) *TryoutService {
	return &TryoutService{repo: repo, users: users, directory: directory, notifier: notifier, now: time.Now}
}

func (s *TryoutService) parseDate(date, clock string) (time.Time, error) {
	t, err := utils.ParseEventTime(date, clock, s.now())
	if err != nil {
		return time.Time{}, apperrors.Validation("Could not understand the tryout date %q", strings.TrimSpace(date+" "+clock))
	}
	return t.UTC(), nil
}

// ownedTryout loads a tryout and checks that scoutID created it.
func (s *TryoutService) ownedTryout(ctx context.Context, scoutID, tryoutID uint) (*Tryout, error) {
	t, err := s.repo.GetTryoutByID(ctx, tryoutID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.NotFound("Tryout")
	}
	if t.ScoutID != scoutID {
		return nil, apperrors.Authorization("You do not own this tryout")
	}
	return t, nil
}

func (s *TryoutService) CreateTryout(ctx context.Context, scoutID uint, in TryoutInput) (*Tryout, error) {
	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	if name == "" || location == "" || strings.TrimSpace(in.Date) == "" {
		return nil, apperrors.Validation("name, location and date are required")
	}
	date, err := s.parseDate(in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if date.Before(s.now()) {
		return nil, apperrors.Validation("Tryout date must be in the future")
	}

	t := &Tryout{
		ScoutID:     scoutID,
		Name:        name,
		Location:    location,
		Date:        date,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.repo.CreateTryout(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TryoutService) ListOwn(ctx context.Context, scoutID uint) ([]Tryout, error) {
	tryouts, err := s.repo.ListByScout(ctx, scoutID)
	if tryouts == nil {
		tryouts = []Tryout{}
	}
	return tryouts, err
}

// GetTryout returns an owned tryout with its invitations.
func (s *TryoutService) GetTryout(ctx context.Context, scoutID, tryoutID uint) (*TryoutDetail, error) {
	t, err := s.ownedTryout(ctx, scoutID, tryoutID)
	if err != nil {
		return nil, err
	}
	invs, err := s.repo.ListInvitationsByTryout(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	playerIDs := make([]uint, 0, len(invs))
	for _, inv := range invs {
		playerIDs = append(playerIDs, inv.PlayerID)
	}
	players, err := s.users.GetUsersByIDs(ctx, playerIDs)
	if err != nil {
		return nil, err
	}
	views := make([]InvitationView, 0, len(invs))
	for _, inv := range invs {
		views = append(views, InvitationView{Invitation: inv, PlayerName: players[inv.PlayerID].Name})
	}
	return &TryoutDetail{Tryout: *t, Invitations: views}, nil
}

func (s *TryoutService) UpdateTryout(ctx context.Context, scoutID, tryoutID uint, in TryoutUpdate) (*Tryout, error) {
	t, err := s.ownedTryout(ctx, scoutID, tryoutID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperrors.Validation("name cannot be empty")
		}
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Location != nil {
		if strings.TrimSpace(*in.Location) == "" {
			return nil, apperrors.Validation("location cannot be empty")
		}
		t.Location = strings.TrimSpace(*in.Location)
	}
	if in.Date != nil {
		clock := ""
		if in.Time != nil {
			clock = *in.Time
		}
		date, err := s.parseDate(*in.Date, clock)
		if err != nil {
			return nil, err
		}
		t.Date = date
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if err := s.repo.UpdateTryout(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTryout removes the tryout and its invitations in one transaction, then tells
// every player who still held a live invitation.
func (s *TryoutService) DeleteTryout(ctx context.Context, scoutID, tryoutID uint) error {
	t, err := s.ownedTryout(ctx, scoutID, tryoutID)
	if err != nil {
		return err
	}

	var affected []uint
	err = s.repo.WithTransaction(ctx, func(tx TryoutRepository) error {
		invs, err := tx.ListInvitationsByTryout(ctx, t.ID)
		if err != nil {
			return err
		}
		for _, inv := range invs {
			if inv.Status != InvitationDeclined {
				affected = append(affected, inv.PlayerID)
			}
		}
		if err := tx.DeleteInvitationsByTryout(ctx, t.ID); err != nil {
			return err
		}
		return tx.DeleteTryout(ctx, t.ID)
	})
	if err != nil {
		return err
	}

	for _, playerID := range affected {
		s.notifier.Notify(ctx, playerID, notification.KindTryoutCancelled, t.Name, t.Location)
	}
	logger.Info(ctx).Uint("tryout_id", t.ID).Int("notified", len(affected)).Msg("tryout deleted")
	return nil
}

// insertInvitation is check-then-insert with the unique index as backstop.
func (s *TryoutService) insertInvitation(ctx context.Context, inv *Invitation) error {
	err := s.repo.WithTransaction(ctx, func(tx TryoutRepository) error {
		exists, err := tx.InvitationExists(ctx, inv.TryoutID, inv.PlayerID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.Conflict("Player already has an invitation for this tryout")
		}
		return tx.CreateInvitation(ctx, inv)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("Player already has an invitation for this tryout")
	}
	return err
}

func (s *TryoutService) loadUser(ctx context.Context, id uint, role user.Role, resource string) (*user.User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Role != role {
		return nil, apperrors.NotFound(resource)
	}
	return u, nil
}

// Invite sends a scout-initiated invitation.
func (s *TryoutService) Invite(ctx context.Context, scout common.Actor, tryoutID, playerID uint, message string) (*Invitation, error) {
	t, err := s.ownedTryout(ctx, scout.ID, tryoutID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadUser(ctx, playerID, user.RolePlayer, "Player"); err != nil {
		return nil, err
	}

	inv := &Invitation{
		TryoutID: t.ID,
		PlayerID: playerID,
		Status:   InvitationPending,
		Source:   SourceScout,
		Message:  strings.TrimSpace(message),
	}
	if err := s.insertInvitation(ctx, inv); err != nil {
		return nil, err
	}

	org := "independent"
	if s.directory != nil {
		if o, err := s.directory.Organization(ctx, scout.ID); err == nil && o != "" {
			org = o
		}
	}
	s.notifier.Notify(ctx, playerID, notification.KindInvitationReceived,
		scout.Name, org, t.Name, t.Location, t.Date.Format(displayDate))
	return inv, nil
}

// CancelInvitation lets the owning scout withdraw a pending invitation.
func (s *TryoutService) CancelInvitation(ctx context.Context, scout common.Actor, invitationID uint) error {
	inv, err := s.repo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv == nil {
		return apperrors.NotFound("Invitation")
	}
	t, err := s.ownedTryout(ctx, scout.ID, inv.TryoutID)
	if err != nil {
		return err
	}
	if inv.Status != InvitationPending {
		return apperrors.Validation("Only pending invitations can be cancelled")
	}
	if err := s.repo.DeleteInvitation(ctx, inv.ID); err != nil {
		return err
	}
	s.notifier.Notify(ctx, inv.PlayerID, notification.KindInvitationCancelled, scout.Name, t.Name)
	return nil
}

// Respond settles a pending invitation. Scout invitations are answered by the
// invited player; join requests are answered by the scout who owns the tryout.
func (s *TryoutService) Respond(ctx context.Context, actor common.Actor, invitationID uint, status InvitationStatus) (*Invitation, error) {
	if status != InvitationAccepted && status != InvitationDeclined {
		return nil, apperrors.Validation("status must be accepted or declined")
	}
	inv, err := s.repo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperrors.NotFound("Invitation")
	}
	t, err := s.repo.GetTryoutByID(ctx, inv.TryoutID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.NotFound("Tryout")
	}

	var recipient uint
	var kind notification.Kind
	switch inv.Source {
	case SourcePlayer:
		if actor.ID != t.ScoutID {
			return nil, apperrors.Authorization("Only the tryout's scout can answer this request")
		}
		recipient = inv.PlayerID
		kind = notification.KindRequestAccepted
		if status == InvitationDeclined {
			kind = notification.KindRequestDeclined
		}
	default:
		if actor.ID != inv.PlayerID {
			return nil, apperrors.Authorization("This invitation is not addressed to you")
		}
		recipient = t.ScoutID
		kind = notification.KindInvitationAccepted
		if status == InvitationDeclined {
			kind = notification.KindInvitationDeclined
		}
	}
	if inv.Status != InvitationPending {
		return nil, apperrors.Validation("Invitation has already been %s", inv.Status)
	}

	now := s.now().UTC()
	inv.Status = status
	inv.RespondedAt = &now
	if err := s.repo.UpdateInvitation(ctx, inv); err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, recipient, kind, actor.Name, t.Name)
	return inv, nil
}

// ListUpcoming lists tryouts from now on, optionally at one location.
func (s *TryoutService) ListUpcoming(ctx context.Context, location string, page models.Page) ([]UpcomingTryout, int64, error) {
	tryouts, total, err := s.repo.ListUpcoming(ctx, s.now().UTC(), location, page)
	if err != nil {
		return nil, 0, err
	}
	scoutIDs := make([]uint, 0, len(tryouts))
	for _, t := range tryouts {
		scoutIDs = append(scoutIDs, t.ScoutID)
	}
	scouts, err := s.users.GetUsersByIDs(ctx, scoutIDs)
	if err != nil {
		return nil, 0, err
	}
	out := make([]UpcomingTryout, 0, len(tryouts))
	for _, t := range tryouts {
		out = append(out, UpcomingTryout{Tryout: t, ScoutName: scouts[t.ScoutID].Name})
	}
	return out, total, nil
}

// RequestToJoin records a player-initiated pending invitation.
func (s *TryoutService) RequestToJoin(ctx context.Context, p common.Actor, tryoutID uint, message string) (*Invitation, error) {
	t, err := s.repo.GetTryoutByID(ctx, tryoutID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.NotFound("Tryout")
	}
	if t.Date.Before(s.now()) {
		return nil, apperrors.Validation("This tryout has already taken place")
	}

	inv := &Invitation{
		TryoutID: t.ID,
		PlayerID: p.ID,
		Status:   InvitationPending,
		Source:   SourcePlayer,
		Message:  strings.TrimSpace(message),
	}
	if err := s.insertInvitation(ctx, inv); err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, t.ScoutID, notification.KindTryoutRequest, p.Name, t.Name)
	return inv, nil
}

// ListPlayerInvitations returns the player's invitations with tryout details.
func (s *TryoutService) ListPlayerInvitations(ctx context.Context, playerID uint) ([]PlayerInvitation, error) {
	invs, err := s.repo.ListInvitationsByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	tryoutIDs := make([]uint, 0, len(invs))
	for _, inv := range invs {
		tryoutIDs = append(tryoutIDs, inv.TryoutID)
	}
	tryouts, err := s.repo.GetTryoutsByIDs(ctx, tryoutIDs)
	if err != nil {
		return nil, err
	}
	scoutIDs := make([]uint, 0, len(tryouts))
	for _, t := range tryouts {
		scoutIDs = append(scoutIDs, t.ScoutID)
	}
	scouts, err := s.users.GetUsersByIDs(ctx, scoutIDs)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerInvitation, 0, len(invs))
	for _, inv := range invs {
		t := tryouts[inv.TryoutID]
		out = append(out, PlayerInvitation{Invitation: inv, Tryout: t, ScoutName: scouts[t.ScoutID].Name})
	}
	return out, nil
}

// SendProfile notifies a scout that a player wants to be looked at.
func (s *TryoutService) SendProfile(ctx context.Context, p common.Actor, scoutID uint, message string) error {
	if _, err := s.loadUser(ctx, scoutID, user.RoleScout, "Scout"); err != nil {
		return err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		message = "no message"
	}
	s.notifier.Notify(ctx, scoutID, notification.KindProfileShared, p.Name, message)
	return nil
}

func (s *TryoutService) ListLocations(ctx context.Context) ([]Location, error) {
	locs, err := s.repo.ListLocations(ctx)
	if locs == nil {
		locs = []Location{}
	}
	return locs, err
}

// AddLocation rejects names that already exist in any letter case.
func (s *TryoutService) AddLocation(ctx context.Context, adminID uint, name string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("name is required")
	}
	exists, err := s.repo.LocationNameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("Location %q already exists", name)
	}
	loc := &Location{Name: name, CreatedBy: adminID}
	if err := s.repo.CreateLocation(ctx, loc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Location %q already exists", name)
		}
		return nil, err
	}
	return loc, nil
}

// DeleteLocation refuses while any tryout still uses the location.
func (s *TryoutService) DeleteLocation(ctx context.Context, id uint) (*Location, error) {
	loc, err := s.repo.GetLocationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, apperrors.NotFound("Location")
	}
	n, err := s.repo.CountByLocation(ctx, loc.Name)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apperrors.Validation("Cannot delete location: %d tryout(s) still use it", n)
	}
	if err := s.repo.DeleteLocation(ctx, id); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *TryoutService) CountTryouts(ctx context.Context) (int64, error) {
	return s.repo.CountTryouts(ctx)
}

func (s *TryoutService) CountInvitationsByStatus(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountInvitationsByStatus(ctx)
}
