package auth

import (
	clientRepo "homeserve/database/repository/client"
	providerRepo "homeserve/database/repository/provider"
	"homeserve/models"
)

// ClientRegistration carries the fields required to register a client.
type ClientRegistration struct {
	FirstName string         `json:"firstName" binding:"required"`
	LastName  string         `json:"lastName" binding:"required"`
	Email     string         `json:"email" binding:"required,email"`
	Password  string         `json:"password" binding:"required"`
	Phone     string         `json:"phone"`
	Address   models.Address `json:"address"`
}

// ProviderRegistration carries the fields required to register a provider.
type ProviderRegistration struct {
	FirstName   string             `json:"firstName" binding:"required"`
	LastName    string             `json:"lastName" binding:"required"`
	Email       string             `json:"email" binding:"required,email"`
	Password    string             `json:"password" binding:"required"`
	ServiceType models.ServiceType `json:"serviceType" binding:"required"`
	HourlyRate  float64            `json:"hourlyRate" binding:"required"`
	Description string             `json:"description"`
}

// AuthResponse contains the principal's ID, role and a fresh bearer token.
type AuthResponse struct {
	ID        string      `json:"id"`
	Role      models.Role `json:"role"`
	Token     string      `json:"token"`
	FirstName string      `json:"firstName,omitempty"`
	LastName  string      `json:"lastName,omitempty"`
	Email     string      `json:"email,omitempty"`
}

// AuthService handles registration and login for both principal kinds.
type AuthService interface {
	RegisterClient(req ClientRegistration) (*AuthResponse, error)
	RegisterProvider(req ProviderRegistration) (*AuthResponse, error)
	Login(email, password string, role models.Role) (*AuthResponse, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Clients   clientRepo.ClientRepository
	Providers providerRepo.ProviderRepository
}
