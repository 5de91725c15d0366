package handler

import (
	"notesmanager/dto"
	"notesmanager/middleware"
	"notesmanager/usecase"
	"notesmanager/utils"

	"github.com/gin-gonic/gin"
)

func authResponse(res *usecase.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{User: dto.ToUserResponse(res.User), Token: res.Token}
}

func RegisterHandler(c *gin.Context, auth AuthUsecase) {
	var req dto.RegisterRequest
	if !bindJSON(c, "register", &req) {
		utils.TrackAuthAttempt("failure", "register")
		return
	}

	res, err := auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.TrackAuthAttempt("failure", "register")
		respondError(c, "register", err)
		return
	}

	utils.TrackAuthAttempt("success", "register")
	utils.Created(c, "User registered successfully", authResponse(res))
}

func LoginHandler(c *gin.Context, auth AuthUsecase) {
	var req dto.LoginRequest
	if !bindJSON(c, "login", &req) {
		utils.TrackAuthAttempt("failure", "login")
		return
	}

	res, err := auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.TrackAuthAttempt("failure", "login")
		respondError(c, "login", err)
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, "Login successful", authResponse(res))
}

func AdminLoginHandler(c *gin.Context, auth AuthUsecase) {
	var req dto.LoginRequest
	if !bindJSON(c, "admin_login", &req) {
		utils.TrackAuthAttempt("failure", "admin_login")
		return
	}

	res, err := auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.TrackAuthAttempt("failure", "admin_login")
		respondError(c, "admin_login", err)
		return
	}

	utils.TrackAuthAttempt("success", "admin_login")
	utils.Success(c, "Admin login successful", authResponse(res))
}

func MeHandler(c *gin.Context) {
	utils.Success(c, "", dto.CurrentUserResponse{User: dto.ToUserResponse(middleware.CurrentUser(c))})
}
