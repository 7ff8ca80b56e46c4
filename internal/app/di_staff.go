package app

import (
	"fmt"

	staffHTTP "github.com/clinichq/attend/internal/staff/http"
	staffRepository "github.com/clinichq/attend/internal/staff/repository"
	staffUseCase "github.com/clinichq/attend/internal/staff/usecase"
)

// StaffRepository returns the staff repository based on database driver.
func (c *Container) StaffRepository() (staffUseCase.StaffRepository, error) {
	c.staffRepositoryInit.Do(func() {
		repository, err := c.initStaffRepository()
		if err != nil {
			c.initErrors["staffRepository"] = err
			return
		}
		c.staffRepository = repository
	})
	if storedErr, exists := c.initErrors["staffRepository"]; exists {
		return nil, storedErr
	}
	return c.staffRepository, nil
}

// StaffUseCase returns the staff use case.
func (c *Container) StaffUseCase() (staffUseCase.StaffUseCase, error) {
	c.staffUseCaseInit.Do(func() {
		useCase, err := c.initStaffUseCase()
		if err != nil {
			c.initErrors["staffUseCase"] = err
			return
		}
		c.staffUseCase = useCase
	})
	if storedErr, exists := c.initErrors["staffUseCase"]; exists {
		return nil, storedErr
	}
	return c.staffUseCase, nil
}

// StaffHandler returns the HTTP handler for staff management operations.
func (c *Container) StaffHandler() (*staffHTTP.StaffHandler, error) {
	c.staffHandlerInit.Do(func() {
		handler, err := c.initStaffHandler()
		if err != nil {
			c.initErrors["staffHandler"] = err
			return
		}
		c.staffHandler = handler
	})
	if storedErr, exists := c.initErrors["staffHandler"]; exists {
		return nil, storedErr
	}
	return c.staffHandler, nil
}

// initStaffRepository creates the staff repository based on the database driver.
func (c *Container) initStaffRepository() (staffUseCase.StaffRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for staff repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return staffRepository.NewPostgreSQLStaffRepository(db), nil
	case "mysql":
		return staffRepository.NewMySQLStaffRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initStaffUseCase creates the staff use case with all its dependencies.
// The token use case validates presented re-entry tokens and the attendance
// use case records the approved re-entry event.
func (c *Container) initStaffUseCase() (staffUseCase.StaffUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for staff use case: %w", err)
	}

	staffRepo, err := c.StaffRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get staff repository for staff use case: %w", err)
	}

	tokenValidator, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for staff use case: %w", err)
	}

	reentryRecorder, err := c.AttendanceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance use case for staff use case: %w", err)
	}

	baseUseCase := staffUseCase.NewStaffUseCase(
		c.config,
		txManager,
		staffRepo,
		tokenValidator,
		reentryRecorder,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for staff use case: %w", err)
		}
		return staffUseCase.NewStaffUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initStaffHandler creates the staff HTTP handler with all its dependencies.
func (c *Container) initStaffHandler() (*staffHTTP.StaffHandler, error) {
	useCase, err := c.StaffUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get staff use case for staff handler: %w", err)
	}

	return staffHTTP.NewStaffHandler(useCase, c.Logger()), nil
}
