package controllerImp

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smartfield/entities"
	"smartfield/pkg/middleware"
)

type AuthCtrl struct {
	db     *gorm.DB
	secret string
}

func New(db *gorm.DB, secret string) *AuthCtrl { return &AuthCtrl{db: db, secret: secret} }

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthCtrl) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username, email, password are required"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "hash error"})
	}
	u := entities.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := h.db.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "username or email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]string{"user_id": u.UserID})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthCtrl) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	var u entities.User
	if err := h.db.Where("username = ?", req.Username).First(&u).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}
	tok, err := middleware.SignToken(h.secret, u.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "jwt error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"token": tok})
}

func (h *AuthCtrl) WhoAmI(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return c.JSON(http.StatusOK, map[string]any{"username": nil, "anonymous": true})
	}
	return c.JSON(http.StatusOK, map[string]any{"username": *actor, "anonymous": false})
}
