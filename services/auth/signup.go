package auth

import (
	"time"

	"homeserve/models"
	"homeserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 24 * time.Hour

// RegisterClient validates the request, checks for duplicates, persists the
// client and returns a fresh auth token.
func (s *DefaultAuthService) RegisterClient(req ClientRegistration) (*AuthResponse, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return nil, utils.NewInvalidInput("first name, last name, email and password are required")
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Clients.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("RegisterClient: failed to check for existing client", zap.Error(err))
		return nil, utils.NewInternal("registration failed, please try again")
	}
	if existing != nil {
		return nil, utils.NewConflict("this email is already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("RegisterClient: failed to hash password", zap.Error(err))
		return nil, utils.NewInternal("registration failed, please try again")
	}

	client := models.Client{
		ID:           uuid.New().String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Phone:        req.Phone,
		Address:      req.Address,
	}

	principal := models.Principal{ID: client.ID, Role: models.RoleClient}
	token, err := utils.GenerateToken(principal, client.Email, tokenDuration)
	if err != nil {
		utils.GetLogger().Error("RegisterClient: failed to generate auth token", zap.Error(err))
		return nil, utils.NewInternal("registration failed, please try again")
	}
	client.TokenHash = utils.HashToken(token)

	if err := s.Clients.Create(&client); err != nil {
		utils.GetLogger().Error("RegisterClient: failed to create client", zap.Error(err))
		return nil, utils.NewInternal("registration failed, please try again")
	}

	return &AuthResponse{
		ID:        client.ID,
		Role:      models.RoleClient,
		Token:     token,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Email:     client.Email,
	}, nil
}

// RegisterProvider validates the request, checks for duplicates, persists the
// provider and returns a fresh auth token.
func (s *DefaultAuthService) RegisterProvider(req ProviderRegistration) (*AuthResponse, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return nil, utils.NewInvalidInput("first name, last name, email and password are required")
	}
	if !req.ServiceType.Valid() {
		return nil, utils.NewInvalidInput("invalid service type")
	}
	if req.HourlyRate <= 0 {
		return nil, utils.NewInvalidInput("hourly rate must be positive")
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Providers.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("RegisterProvider: failed to check for existing provider", zap.Error(err))
		return nil, utils.NewInternal("registration failed, please try again")
	}
	if existing != nil {
		return nil, utils.NewConflict("this email is already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("RegisterProvider: failed to hash password", zap.Error(err))
		return nil, utils.NewInternal("registration failed, please try again")
	}

	provider := models.Provider{
		ID:           uuid.New().String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		ServiceType:  req.ServiceType,
		HourlyRate:   req.HourlyRate,
		Description:  req.Description,
	}

	principal := models.Principal{ID: provider.ID, Role: models.RoleProvider}
	token, err := utils.GenerateToken(principal, provider.Email, tokenDuration)
	if err != nil {
		utils.GetLogger().Error("RegisterProvider: failed to generate auth token", zap.Error(err))
		return nil, utils.NewInternal("registration failed, please try again")
	}
	provider.TokenHash = utils.HashToken(token)

	if err := s.Providers.Create(&provider); err != nil {
		utils.GetLogger().Error("RegisterProvider: failed to create provider", zap.Error(err))
		return nil, utils.NewInternal("registration failed, please try again")
	}

	return &AuthResponse{
		ID:        provider.ID,
		Role:      models.RoleProvider,
		Token:     token,
		FirstName: provider.FirstName,
		LastName:  provider.LastName,
		Email:     provider.Email,
	}, nil
}

// VerifyPasswordComplexity enforces the minimum password policy.
func VerifyPasswordComplexity(password string) error {
	if len(password) < 8 {
		return utils.NewInvalidInput("password must be at least 8 characters long")
	}
	return nil
}
