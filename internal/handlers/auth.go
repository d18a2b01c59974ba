package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/minseo-lab/daon/backend/internal/models"
	"github.com/minseo-lab/daon/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SchoolIdentity is what the school portal returns for verified credentials
type SchoolIdentity struct {
	Name          string `json:"name"`
	StudentNumber string `json:"student_number"`
	Generation    int    `json:"generation"`
}

// SchoolVerifier verifies portal credentials and returns the student's identity
type SchoolVerifier interface {
	Verify(id, password string) (*SchoolIdentity, error)
}

// portalVerifier calls the school portal's login API over HTTP
type portalVerifier struct {
	baseURL string
	client  *http.Client
}

// NewPortalVerifier creates a SchoolVerifier against the given portal base URL
func NewPortalVerifier(baseURL string) SchoolVerifier {
	return &portalVerifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *portalVerifier) Verify(id, password string) (*SchoolIdentity, error) {
	params := url.Values{}
	params.Set("id", id)
	params.Set("password", password)

	resp, err := v.client.Get(v.baseURL + "/api/portal_login?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("portal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("portal returned status %d", resp.StatusCode)
	}

	var result struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		SchoolIdentity
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("portal response decode failed: %w", err)
	}
	if result.Status != "success" {
		return nil, fmt.Errorf("portal rejected credentials: %s", result.Message)
	}
	return &result.SchoolIdentity, nil
}

// AuthHandler handles registration and login
type AuthHandler struct {
	userRepository repositories.UserRepository
	schoolVerifier SchoolVerifier
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler. jwtSecret signs the issued tokens.
func NewAuthHandler(userRepo repositories.UserRepository, verifier SchoolVerifier, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		schoolVerifier: verifier,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/school-verify", h.SchoolVerify)
	g.POST("/check-register", h.CheckRegister)
	g.POST("/check-pw-register", h.CheckPasswordRegister)
	g.POST("/register", h.Register)
	g.POST("/signin", h.SignIn)
}

// SchoolVerify checks portal credentials and returns the student identity
// used to prefill the registration form. An account may exist at most once
// per student number.
func (h *AuthHandler) SchoolVerify(c echo.Context) error {
	var req struct {
		PortalID string `json:"portal_id" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.schoolVerifier.Verify(req.PortalID, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	count, err := h.userRepository.CountByStudentNumber(identity.StudentNumber)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if count > 0 {
		return echo.NewHTTPError(http.StatusConflict, "An account already exists for this student")
	}

	return c.JSON(http.StatusOK, identity)
}

// CheckRegister runs the live duplicate and format checks behind the
// registration form. Each field reports a boolean: true means the value is
// taken (or, for birth, well-formed).
func (h *AuthHandler) CheckRegister(c echo.Context) error {
	var req models.CheckRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	loginIDCount, err := h.userRepository.CountByLoginID(req.LoginID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	nicknameCount, err := h.userRepository.CountByNickname(req.Nickname)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"login_id": loginIDCount > 0,
		"nickname": nicknameCount > 0,
		"birth":    validBirth(req.Birth),
	})
}

// CheckPasswordRegister runs the live password check behind the registration
// form: `pw` reports whether the password is long enough, `pw_check` whether
// the confirmation does NOT match (true flags the mismatch the form must show).
func (h *AuthHandler) CheckPasswordRegister(c echo.Context) error {
	var req models.CheckPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"pw":       len(req.Password) >= 6,
		"pw_check": req.PasswordConfirm != req.Password,
	})
}

// Register creates the account after the portal verification step
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !validBirth(req.Birth) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid birth date")
	}

	if count, err := h.userRepository.CountByLoginID(req.LoginID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	} else if count > 0 {
		return echo.NewHTTPError(http.StatusConflict, "Login ID already taken")
	}

	if count, err := h.userRepository.CountByNickname(req.Nickname); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	} else if count > 0 {
		return echo.NewHTTPError(http.StatusConflict, "Nickname already taken")
	}

	if count, err := h.userRepository.CountByStudentNumber(req.StudentNumber); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	} else if count > 0 {
		return echo.NewHTTPError(http.StatusConflict, "An account already exists for this student")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		LoginID:       req.LoginID,
		Password:      string(hashedPassword),
		Name:          req.Name,
		StudentNumber: req.StudentNumber,
		Generation:    req.Generation,
		Nickname:      req.Nickname,
		Birth:         req.Birth,
		Role:          models.RoleStudent,
		Level:         1,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after registration")
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

// SignIn authenticates with login id and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByLoginID(req.LoginID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid login credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid login credentials")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Nickname: user.Nickname,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)), // Token expires in 72 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", err
	}
	return t, nil
}

// validBirth accepts YYYYMMDD dates that exist on the calendar
func validBirth(birth string) bool {
	if len(birth) != 8 {
		return false
	}
	_, err := time.Parse("20060102", birth)
	return err == nil
}
