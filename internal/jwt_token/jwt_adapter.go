package jwttoken

import "looview/pkg/domain"

// IdentityValidator adapts JWTService to the middleware's token validator.
type IdentityValidator struct {
	service *JWTService
}

func NewIdentityValidator(service *JWTService) *IdentityValidator {
	return &IdentityValidator{service: service}
}

func (a *IdentityValidator) ValidateToken(tokenString string) (*domain.Identity, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	identity, err := claims.Identity()
	if err != nil {
		return nil, err
	}
	return &identity, nil
}
