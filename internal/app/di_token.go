package app

import (
	"fmt"

	tokenHTTP "github.com/clinichq/attend/internal/token/http"
	tokenRepository "github.com/clinichq/attend/internal/token/repository"
	tokenService "github.com/clinichq/attend/internal/token/service"
	tokenUseCase "github.com/clinichq/attend/internal/token/usecase"
)

// ValueGenerator returns the token value generator service.
func (c *Container) ValueGenerator() tokenService.ValueGenerator {
	c.valueGeneratorInit.Do(func() {
		c.valueGenerator = tokenService.NewValueGenerator()
	})
	return c.valueGenerator
}

// TokenRepository returns the token repository based on database driver.
func (c *Container) TokenRepository() (tokenUseCase.TokenRepository, error) {
	c.tokenRepositoryInit.Do(func() {
		repository, err := c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepository"] = err
			return
		}
		c.tokenRepository = repository
	})
	if storedErr, exists := c.initErrors["tokenRepository"]; exists {
		return nil, storedErr
	}
	return c.tokenRepository, nil
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (tokenUseCase.TokenUseCase, error) {
	c.tokenUseCaseInit.Do(func() {
		useCase, err := c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
			return
		}
		c.tokenUseCase = useCase
	})
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// TokenHandler returns the HTTP handler for token issuance operations.
func (c *Container) TokenHandler() (*tokenHTTP.TokenHandler, error) {
	c.tokenHandlerInit.Do(func() {
		handler, err := c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
			return
		}
		c.tokenHandler = handler
	})
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// initTokenRepository creates the token repository based on the database driver.
func (c *Container) initTokenRepository() (tokenUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return tokenRepository.NewPostgreSQLTokenRepository(db), nil
	case "mysql":
		return tokenRepository.NewMySQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (tokenUseCase.TokenUseCase, error) {
	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	dailyStatusRepo, err := c.DailyStatusRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get daily status repository for token use case: %w", err)
	}

	baseUseCase := tokenUseCase.NewTokenUseCase(
		c.config,
		tokenRepo,
		dailyStatusRepo,
		c.ValueGenerator(),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return tokenUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenHandler creates the token HTTP handler with all its dependencies.
func (c *Container) initTokenHandler() (*tokenHTTP.TokenHandler, error) {
	useCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	return tokenHTTP.NewTokenHandler(c.config, useCase, c.Logger()), nil
}
