package admin

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/DhavalSuthar-24/scoutnet/internal/audit"
	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/media"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/tryout"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
	"github.com/DhavalSuthar-24/scoutnet/pkg/utils"
	hash "github.com/DhavalSuthar-24/scoutnet/utils"
)

const temporaryPasswordLength = 12

type AdminService struct {
	repo    AdminRepository
	users   user.UserRepository
	media   *media.MediaService
	tryouts *tryout.TryoutService
	audit   audit.Trail
	store   storage.MediaStore
}

func NewAdminService(repo AdminRepository, users user.UserRepository, mediaSvc *media.MediaService, tryouts *tryout.TryoutService, trail audit.Trail, store storage.MediaStore) *AdminService {
	return &AdminService{repo: repo, users: users, media: mediaSvc, tryouts: tryouts, audit: trail, store: store}
}

func (s *AdminService) record(ctx context.Context, admin common.Actor, action audit.Action, entity string, id uint, details string) {
	s.audit.Record(ctx, audit.SystemLog{
		ActorID:    admin.ID,
		Action:     action,
		EntityType: entity,
		EntityID:   id,
		Details:    details,
		IPAddress:  admin.IP,
	})
}

// Users

func (s *AdminService) ListUsers(ctx context.Context, filter user.ListFilter, page models.Page) ([]user.User, int64, error) {
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, 0, apperrors.Validation("Invalid role filter %q", filter.Role)
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, apperrors.Validation("Invalid status filter %q", filter.Status)
	}
	users, total, err := s.users.ListUsers(ctx, filter, page)
	if users == nil {
		users = []user.User{}
	}
	return users, total, err
}

func (s *AdminService) loadUser(ctx context.Context, id uint) (*user.User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFound("User")
	}
	return u, nil
}

func (s *AdminService) GetUser(ctx context.Context, id uint) (*UserDetail, error) {
	u, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &UserDetail{User: u}
	switch u.Role {
	case user.RolePlayer:
		p, err := s.repo.GetPlayerProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			detail.Profile = p
		}
	case user.RoleScout:
		p, err := s.repo.GetScoutProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			detail.Profile = p
		}
	}
	return detail, nil
}

// DeleteUser removes the account with everything it owns. Remote uploads are removed
// after the rows are gone; failures there are only logged.
func (s *AdminService) DeleteUser(ctx context.Context, admin common.Actor, id uint) error {
	if id == admin.ID {
		return apperrors.Validation("You cannot delete your own account")
	}
	u, err := s.loadUser(ctx, id)
	if err != nil {
		return err
	}
	publicIDs, err := s.repo.DeleteUserCascade(ctx, id)
	if err != nil {
		return err
	}
	for _, pid := range publicIDs {
		logger.BestEffort(ctx, "storage:delete", func() error {
			return s.store.Delete(ctx, pid)
		})
	}
	s.record(ctx, admin, audit.ActionDelete, audit.EntityUser, id, fmt.Sprintf("deleted %s account %s", u.Role, u.Email))
	return nil
}

func (s *AdminService) UpdateUserStatus(ctx context.Context, admin common.Actor, id uint, status user.Status) (*user.User, error) {
	if !status.IsValid() {
		return nil, apperrors.Validation("status must be one of active, inactive, suspended")
	}
	if id == admin.ID {
		return nil, apperrors.Validation("You cannot change your own status")
	}
	u, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := u.Status
	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	u.Status = status
	s.record(ctx, admin, audit.ActionUpdate, audit.EntityUser, id, fmt.Sprintf("status: %s -> %s", previous, status))
	return u, nil
}

// ResetPassword sets newPassword, or a generated one when it is empty. The generated
// password is only ever returned here.
func (s *AdminService) ResetPassword(ctx context.Context, admin common.Actor, id uint, newPassword string) (*ResetPasswordResult, error) {
	result := &ResetPasswordResult{UserID: id}
	if newPassword == "" {
		newPassword = utils.GenerateRandomToken(temporaryPasswordLength)
		result.TemporaryPassword = newPassword
	}
	if len(newPassword) < 6 {
		return nil, apperrors.Validation("new_password must be at least 6 characters")
	}
	if _, err := s.loadUser(ctx, id); err != nil {
		return nil, err
	}
	hashed, err := hash.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, id, hashed); err != nil {
		return nil, err
	}
	details := "password set by admin"
	if result.TemporaryPassword != "" {
		details = "temporary password generated"
	}
	s.record(ctx, admin, audit.ActionResetPassword, audit.EntityUser, id, details)
	return result, nil
}

// Media

func (s *AdminService) ListMedia(ctx context.Context, filter media.ListFilter, page models.Page) ([]media.Video, int64, error) {
	return s.media.List(ctx, filter, page)
}

func (s *AdminService) DeleteMedia(ctx context.Context, admin common.Actor, id uint) error {
	v, err := s.media.Delete(ctx, admin, id)
	if err != nil {
		return err
	}
	s.record(ctx, admin, audit.ActionDelete, audit.EntityVideo, id, fmt.Sprintf("deleted %s %q of player %d", v.Type, v.Title(), v.PlayerID))
	return nil
}

func (s *AdminService) SetMediaStatus(ctx context.Context, admin common.Actor, id uint, status media.Status) (*media.Video, error) {
	v, previous, err := s.media.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.record(ctx, admin, audit.ActionUpdate, audit.EntityVideo, id, fmt.Sprintf("status: %s -> %s", previous, status))
	return v, nil
}

// Locations

func (s *AdminService) ListLocations(ctx context.Context) ([]tryout.Location, error) {
	return s.tryouts.ListLocations(ctx)
}

func (s *AdminService) AddLocation(ctx context.Context, admin common.Actor, name string) (*tryout.Location, error) {
	loc, err := s.tryouts.AddLocation(ctx, admin.ID, name)
	if err != nil {
		return nil, err
	}
	s.record(ctx, admin, audit.ActionCreate, audit.EntityLocation, loc.ID, loc.Name)
	return loc, nil
}

func (s *AdminService) DeleteLocation(ctx context.Context, admin common.Actor, id uint) error {
	loc, err := s.tryouts.DeleteLocation(ctx, id)
	if err != nil {
		return err
	}
	s.record(ctx, admin, audit.ActionDelete, audit.EntityLocation, id, loc.Name)
	return nil
}

// Audit trail

func validateLogFilter(filter *audit.Filter) error {
	filter.Action = audit.Action(strings.ToUpper(strings.TrimSpace(string(filter.Action))))
	if filter.Action != "" && !filter.Action.IsValid() {
		return apperrors.Validation("Invalid action filter %q", filter.Action)
	}
	return nil
}

func (s *AdminService) Logs(ctx context.Context, filter audit.Filter, page models.Page) ([]audit.SystemLog, int64, error) {
	if err := validateLogFilter(&filter); err != nil {
		return nil, 0, err
	}
	return s.audit.List(ctx, filter, page)
}

func (s *AdminService) ExportLogs(ctx context.Context, filter audit.Filter) (*bytes.Buffer, error) {
	if err := validateLogFilter(&filter); err != nil {
		return nil, err
	}
	return s.audit.ExportXLSX(ctx, filter)
}

func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	if d.UsersByRole, err = s.users.CountBy(ctx, "role"); err != nil {
		return nil, err
	}
	if d.UsersByStatus, err = s.users.CountBy(ctx, "status"); err != nil {
		return nil, err
	}
	if d.MediaByStatus, err = s.media.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if d.Tryouts, err = s.tryouts.CountTryouts(ctx); err != nil {
		return nil, err
	}
	if d.InvitationsByStatus, err = s.tryouts.CountInvitationsByStatus(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}
