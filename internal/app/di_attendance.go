package app

import (
	"fmt"

	attendanceHTTP "github.com/clinichq/attend/internal/attendance/http"
	attendanceRepository "github.com/clinichq/attend/internal/attendance/repository"
	attendanceUseCase "github.com/clinichq/attend/internal/attendance/usecase"
)

// EventRepository returns the attendance event repository based on database driver.
func (c *Container) EventRepository() (attendanceUseCase.EventRepository, error) {
	c.eventRepositoryInit.Do(func() {
		repository, err := c.initEventRepository()
		if err != nil {
			c.initErrors["eventRepository"] = err
			return
		}
		c.eventRepository = repository
	})
	if storedErr, exists := c.initErrors["eventRepository"]; exists {
		return nil, storedErr
	}
	return c.eventRepository, nil
}

// DailyStatusRepository returns the daily status repository based on database driver.
func (c *Container) DailyStatusRepository() (attendanceUseCase.DailyStatusRepository, error) {
	c.dailyStatusRepositoryInit.Do(func() {
		repository, err := c.initDailyStatusRepository()
		if err != nil {
			c.initErrors["dailyStatusRepository"] = err
			return
		}
		c.dailyStatusRepository = repository
	})
	if storedErr, exists := c.initErrors["dailyStatusRepository"]; exists {
		return nil, storedErr
	}
	return c.dailyStatusRepository, nil
}

// AttendanceUseCase returns the attendance use case.
func (c *Container) AttendanceUseCase() (attendanceUseCase.AttendanceUseCase, error) {
	c.attendanceUseCaseInit.Do(func() {
		useCase, err := c.initAttendanceUseCase()
		if err != nil {
			c.initErrors["attendanceUseCase"] = err
			return
		}
		c.attendanceUseCase = useCase
	})
	if storedErr, exists := c.initErrors["attendanceUseCase"]; exists {
		return nil, storedErr
	}
	return c.attendanceUseCase, nil
}

// CloseDayUseCase returns the close-day use case.
func (c *Container) CloseDayUseCase() (attendanceUseCase.CloseDayUseCase, error) {
	c.closeDayUseCaseInit.Do(func() {
		useCase, err := c.initCloseDayUseCase()
		if err != nil {
			c.initErrors["closeDayUseCase"] = err
			return
		}
		c.closeDayUseCase = useCase
	})
	if storedErr, exists := c.initErrors["closeDayUseCase"]; exists {
		return nil, storedErr
	}
	return c.closeDayUseCase, nil
}

// AttendanceHandler returns the HTTP handler for attendance operations.
func (c *Container) AttendanceHandler() (*attendanceHTTP.AttendanceHandler, error) {
	c.attendanceHandlerInit.Do(func() {
		handler, err := c.initAttendanceHandler()
		if err != nil {
			c.initErrors["attendanceHandler"] = err
			return
		}
		c.attendanceHandler = handler
	})
	if storedErr, exists := c.initErrors["attendanceHandler"]; exists {
		return nil, storedErr
	}
	return c.attendanceHandler, nil
}

// DayHandler returns the HTTP handler for day management operations.
func (c *Container) DayHandler() (*attendanceHTTP.DayHandler, error) {
	c.dayHandlerInit.Do(func() {
		handler, err := c.initDayHandler()
		if err != nil {
			c.initErrors["dayHandler"] = err
			return
		}
		c.dayHandler = handler
	})
	if storedErr, exists := c.initErrors["dayHandler"]; exists {
		return nil, storedErr
	}
	return c.dayHandler, nil
}

// initEventRepository creates the event repository based on the database driver.
func (c *Container) initEventRepository() (attendanceUseCase.EventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for event repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return attendanceRepository.NewPostgreSQLEventRepository(db), nil
	case "mysql":
		return attendanceRepository.NewMySQLEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDailyStatusRepository creates the daily status repository based on the database driver.
func (c *Container) initDailyStatusRepository() (attendanceUseCase.DailyStatusRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for daily status repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return attendanceRepository.NewPostgreSQLDailyStatusRepository(db), nil
	case "mysql":
		return attendanceRepository.NewMySQLDailyStatusRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAttendanceUseCase creates the attendance use case with all its dependencies.
// The token use case resolves and consumes presented tokens and the staff
// repository backs the staff directory lookups.
func (c *Container) initAttendanceUseCase() (attendanceUseCase.AttendanceUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for attendance use case: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for attendance use case: %w", err)
	}

	tokenResolver, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for attendance use case: %w", err)
	}

	staffRepo, err := c.StaffRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get staff repository for attendance use case: %w", err)
	}

	baseUseCase := attendanceUseCase.NewAttendanceUseCase(
		c.config,
		txManager,
		eventRepo,
		tokenResolver,
		staffRepo,
		attendanceUseCase.NewFraudGuard(eventRepo),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for attendance use case: %w", err)
		}
		return attendanceUseCase.NewAttendanceUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCloseDayUseCase creates the close-day use case with all its dependencies.
func (c *Container) initCloseDayUseCase() (attendanceUseCase.CloseDayUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for close day use case: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for close day use case: %w", err)
	}

	statusRepo, err := c.DailyStatusRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get daily status repository for close day use case: %w", err)
	}

	baseUseCase := attendanceUseCase.NewCloseDayUseCase(
		c.config,
		txManager,
		eventRepo,
		statusRepo,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for close day use case: %w", err)
		}
		return attendanceUseCase.NewCloseDayUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAttendanceHandler creates the attendance HTTP handler with all its dependencies.
func (c *Container) initAttendanceHandler() (*attendanceHTTP.AttendanceHandler, error) {
	useCase, err := c.AttendanceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance use case for attendance handler: %w", err)
	}

	return attendanceHTTP.NewAttendanceHandler(useCase, c.Logger()), nil
}

// initDayHandler creates the day HTTP handler with all its dependencies.
func (c *Container) initDayHandler() (*attendanceHTTP.DayHandler, error) {
	useCase, err := c.CloseDayUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get close day use case for day handler: %w", err)
	}

	return attendanceHTTP.NewDayHandler(useCase, c.Logger()), nil
}
