package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"portal/internal/domain"
	"portal/internal/repositories"
)

func TestEnsureMemberRolePromotesGuest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := UserService{UserRepo: repositories.UserRepository{DB: db}}
	rc := domain.RequestContext{UserID: 7, Email: "guest@example.com", Role: domain.RoleGuest}

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(userRows(7, domain.RoleGuest))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(int64(7), "guest@example.com", domain.RoleMember, domain.RoleGuest).
		WillReturnResult(sqlmock.NewResult(7, 2))

	if err := svc.EnsureMemberRole(rc); err != nil {
		t.Fatalf("ensure member: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureMemberRoleLeavesHigherRolesAlone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := UserService{UserRepo: repositories.UserRepository{DB: db}}

	for _, role := range []string{domain.RoleMember, domain.RoleManager, domain.RoleAdmin} {
		mock.ExpectQuery("FROM users WHERE id").
			WithArgs(int64(7)).
			WillReturnRows(userRows(7, role))

		rc := domain.RequestContext{UserID: 7, Role: role}
		if err := svc.EnsureMemberRole(rc); err != nil {
			t.Fatalf("role %s: %v", role, err)
		}
	}
	// No INSERT was expected; any write would fail ExpectationsWereMet.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureMemberRoleRejectsAnonymous(t *testing.T) {
	svc := UserService{}
	if err := svc.EnsureMemberRole(domain.RequestContext{}); !domain.IsValidation(err) {
		t.Fatalf("anonymous context must be rejected, got %v", err)
	}
}
