package controller

import (
	"errors"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/service"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest define el cuerpo del registro
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"omitempty,oneof=student tutor"`
	TargetYear int    `json:"targetYear" binding:"omitempty,min=2024"`
}

// Register godoc
// @Summary Registrar usuario
// @Description Crea una cuenta con la información entregada
// @Tags Autenticación
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "Datos de registro"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "Parámetros inválidos"
// @Failure 409 {object} util.Response "Email ya registrado"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       model.UserRole(req.Role),
		TargetYear: req.TargetYear,
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "el email ya está registrado")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// LoginRequest define el cuerpo del login
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Iniciar sesión
// @Description Valida credenciales y devuelve un JWT
// @Tags Autenticación
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Credenciales"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response "Credenciales inválidas"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, 401, "credenciales inválidas")
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// Me godoc
// @Summary Usuario actual
// @Description Devuelve el perfil del usuario autenticado
// @Tags Autenticación
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
