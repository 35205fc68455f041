package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/controle-mei/internal/database"
	"github.com/valeriaulyamaeva/controle-mei/internal/logging"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Informe um e-mail válido e uma senha de pelo menos 6 caracteres")
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password, strings.TrimSpace(req.FullName))
	if errors.Is(err, database.ErrDuplicate) {
		h.fail(c, err, "E-mail já cadastrado")
		return
	}
	if err != nil {
		h.fail(c, err, "Erro ao criar conta")
		return
	}

	h.log.Info().Str(logging.USER, user.ID).Str(logging.EVENT, "registered").Msg("user registered")
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Informe e-mail e senha")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, database.ErrInvalidCredentials) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha incorretos"})
		return
	}
	if err != nil {
		h.fail(c, err, "Erro ao entrar")
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), user.ID, h.opts.SessionTTL)
	if err != nil {
		h.fail(c, err, "Erro ao entrar")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"user":       user,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sessão inválida"})
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), token); err != nil {
		h.fail(c, err, "Erro ao sair")
		return
	}
	c.Status(http.StatusNoContent)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth resolves the bearer token and stores the user id in the context.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Faça login para continuar"})
			return
		}
		userID, err := h.sessions.Resolve(c.Request.Context(), token)
		if errors.Is(err, database.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sessão expirada, faça login novamente"})
			return
		}
		if err != nil {
			h.fail(c, err, "Erro ao validar sessão")
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}
