package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fidelity-club/fidelity-be/config"
	"github.com/fidelity-club/fidelity-be/models"
	"github.com/fidelity-club/fidelity-be/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *services.UserService
}

func NewUserController() *UserController {
	authService := services.NewAuthService(config.DB)
	return &UserController{
		userService: services.NewUserService(config.DB, config.Store, authService),
	}
}

type CreateUserRequest struct {
	FullName string          `json:"full_name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Role     models.UserRole `json:"role"`
	Points   int             `json:"points"`
	DNI      string          `json:"dni"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`
	Password string          `json:"password"`
}

type AdminUpdateUserRequest struct {
	FullName *string          `json:"full_name"`
	Email    *string          `json:"email"`
	Role     *models.UserRole `json:"role"`
	Points   *int             `json:"points"`
	DNI      *string          `json:"dni"`
	Phone    *string          `json:"phone"`
	Address  *string          `json:"address"`
	Password *string          `json:"password"`
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID, _ := c.Get("user_id")

	user, err := uc.userService.GetUser(userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update from a multipart form. Only
// fields present in the form are touched, so blank and absent differ.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var input services.UpdateUserInput
	if v, ok := c.GetPostForm("full_name"); ok {
		input.FullName = &v
	}
	if v, ok := c.GetPostForm("email"); ok {
		input.Email = &v
	}
	if v, ok := c.GetPostForm("dni"); ok {
		input.DNI = &v
	}
	if v, ok := c.GetPostForm("phone"); ok {
		input.Phone = &v
	}
	if v, ok := c.GetPostForm("address"); ok {
		input.Address = &v
	}
	if v, ok := c.GetPostForm("password"); ok {
		input.Password = &v
	}
	if v, ok := c.GetPostForm("date_of_birth"); ok {
		dob, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de fecha inválido. Use YYYY-MM-DD"})
			return
		}
		input.DateOfBirth = &dob
	}

	if file, err := c.FormFile("avatar"); err == nil {
		data, ext, err := readUpload(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error al leer el archivo"})
			return
		}
		input.Avatar = data
		input.AvatarExt = ext
	}

	user, err := uc.userService.UpdateUser(userID.(uint), input, false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Perfil actualizado",
		"user":    user,
	})
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.userService.CreateUser(req.FullName, req.DNI, req.Email,
		req.Phone, req.Address, req.Password, req.Role, req.Points)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuario creado con éxito",
		"user":    user,
	})
}

func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.userService.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de usuario inválido"})
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.userService.UpdateUser(uint(id), services.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Points:   req.Points,
		DNI:      req.DNI,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
	}, true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Usuario actualizado",
		"user":    user,
	})
}

// readUpload pulls the bytes and normalized extension out of a multipart
// file header.
func readUpload(header *multipart.FileHeader) ([]byte, string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, strings.ToLower(filepath.Ext(header.Filename)), nil
}
