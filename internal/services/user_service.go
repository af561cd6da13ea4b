package services

import (
	"database/sql"

	"portal/internal/domain"
	"portal/internal/domain/models"
	"portal/internal/repositories"
	"portal/internal/utils"
)

type UserService struct {
	UserRepo  repositories.UserRepository
	RequestID string
}

// EnsureMemberRole promotes the calling user from guest to member. Missing
// rows are created; members and above are left untouched apart from
// updated_at, so the call is safe on every reservation-submitting action.
func (s UserService) EnsureMemberRole(rc domain.RequestContext) error {
	if rc.UserID <= 0 {
		return domain.ValidationError{Field: "user_id", Msg: "invalid user"}
	}

	u, err := s.UserRepo.GetByID(int64(rc.UserID))
	if err != nil && err != sql.ErrNoRows {
		return domain.InternalError{Msg: "failed to read user", Err: err}
	}
	if err == nil && u.Role != domain.RoleGuest {
		return nil
	}

	if err := s.UserRepo.UpsertMemberRole(int64(rc.UserID), rc.Email); err != nil {
		return domain.InternalError{Msg: "failed to promote user", Err: err}
	}
	utils.LogEvent(s.RequestID, "user", "ensure_member", "promoted to member")
	return nil
}

func (s UserService) Get(id int64) (models.User, error) {
	u, err := s.UserRepo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

func (s UserService) List() ([]models.User, error) {
	out, err := s.UserRepo.List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s UserService) Update(id int64, patch models.UserUpdate) (models.User, error) {
	if _, err := s.Get(id); err != nil {
		return models.User{}, err
	}
	if err := s.UserRepo.Update(id, patch); err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to update user", Err: err}
	}
	return s.Get(id)
}

func (s UserService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.UserRepo.Delete(id); err != nil {
		return domain.InternalError{Msg: "failed to delete user", Err: err}
	}
	return nil
}
