package repositories

import (
	"database/sql"
	"strings"

	intconfig "portal/internal/config"
	"portal/internal/domain"
	"portal/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userCols = `id, COALESCE(name,''), COALESCE(email,''), COALESCE(phone,''), COALESCE(role,''), COALESCE(created_at,''), COALESCE(updated_at,'')`

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`SELECT `+userCols+` FROM users WHERE id=? LIMIT 1`, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`SELECT `+userCols+` FROM users WHERE email=? LIMIT 1`, strings.TrimSpace(email)).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(`SELECT ` + userCols + ` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update applies only fields present in the patch.
func (r UserRepository) Update(id int64, patch models.UserUpdate) error {
	sets := []string{}
	args := []any{}
	if patch.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*patch.Name))
	}
	if patch.Phone != nil {
		sets = append(sets, "phone=?")
		args = append(args, strings.TrimSpace(*patch.Phone))
	}
	if patch.Role != nil {
		sets = append(sets, "role=?")
		args = append(args, strings.ToLower(strings.TrimSpace(*patch.Role)))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	return err
}

func (r UserRepository) Delete(id int64) error {
	_, err := r.db().Exec(`DELETE FROM users WHERE id=?`, id)
	return err
}

// UpsertMemberRole promotes a guest (or creates a missing row) to member in a
// single statement. Roles above member are never touched, so the promotion is
// idempotent and cannot downgrade.
func (r UserRepository) UpsertMemberRole(id int64, email string) error {
	_, err := r.db().Exec(`
		INSERT INTO users (id, email, role, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			role=IF(role=?, VALUES(role), role),
			updated_at=NOW()`,
		id, strings.TrimSpace(email), domain.RoleMember, domain.RoleGuest)
	return err
}
