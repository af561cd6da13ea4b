package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	intconfig "portal/internal/config"
	"portal/internal/domain"
	"portal/internal/http/middleware"
)

// AuthUser is the auth response user payload.
type AuthUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		user         AuthUser
		passwordHash string
	)
	err := intconfig.DB.QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(email,''), COALESCE(phone,''), COALESCE(password_hash,''), COALESCE(role,'guest')
		FROM users WHERE email = ? LIMIT 1`, req.Email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &passwordHash, &user.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			RespondError(c, http.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "사용자 조회에 실패했습니다", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다", nil)
		return
	}

	token, err := middleware.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "토큰 발급에 실패했습니다", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "이메일과 비밀번호는 필수입니다", nil)
		return
	}

	var exists int
	if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, req.Email).Scan(&exists); err != nil {
		RespondError(c, http.StatusInternalServerError, "사용자 확인에 실패했습니다", err)
		return
	}
	if exists > 0 {
		RespondError(c, http.StatusBadRequest, "이미 가입된 이메일입니다", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "비밀번호 처리에 실패했습니다", err)
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		req.Name, req.Email, req.Phone, string(hash), domain.RoleGuest)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "회원가입에 실패했습니다", err)
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"message": "가입이 완료되었습니다",
		"user": AuthUser{
			ID:    id,
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
			Role:  domain.RoleGuest,
		},
	})
}
