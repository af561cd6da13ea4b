package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"portal/internal/domain"
	"portal/internal/domain/models"
)

func TestUpsertMemberRoleGuardsHigherRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := UserRepository{DB: db}

	// The IF() guard only flips role when the existing value is guest.
	mock.ExpectExec("INSERT INTO users").
		WithArgs(int64(7), "guest@example.com", domain.RoleMember, domain.RoleGuest).
		WillReturnResult(sqlmock.NewResult(7, 1))

	if err := repo.UpsertMemberRole(7, " guest@example.com "); err != nil {
		t.Fatalf("upsert member role: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserUpdateAppliesOnlyPresentFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := UserRepository{DB: db}

	name := " 김철수 "
	mock.ExpectExec("UPDATE users SET name=\\?, updated_at=NOW\\(\\)").
		WithArgs("김철수", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(5, models.UserUpdate{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// An empty patch issues no statement at all.
	if err := repo.Update(5, models.UserUpdate{}); err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
