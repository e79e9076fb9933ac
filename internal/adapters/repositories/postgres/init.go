package postgres

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/iwtcode/machineMonitor/internal/adapters/repositories/postgres/machine"
	"github.com/iwtcode/machineMonitor/internal/adapters/repositories/postgres/machine_status"
	"github.com/iwtcode/machineMonitor/internal/config"
	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Repository struct {
	Machines interfaces.MachineRepository
	Statuses interfaces.MachineStatusRepository
}

// NewRepository подключается к БД, выполняет миграции и заполняет парк из YAML, если он задан
func NewRepository(cfg *config.AppConfig, appLogger *logging.Logger) (*Repository, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Database.Driver {
	case "sqlite":
		db, err = openSQLite(cfg, appLogger)
	case "postgres", "":
		db, err = openPostgres(cfg, appLogger)
	default:
		return nil, fmt.Errorf("неизвестный драйвер БД '%s'", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	repo, err := NewRepositoryFromDB(db)
	if err != nil {
		return nil, err
	}

	if cfg.Database.MachinesFile != "" {
		created, err := SeedMachines(repo.Machines, cfg.Database.MachinesFile)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки парка станков: %w", err)
		}
		appLogger.Info("Machines seeded", "file", cfg.Database.MachinesFile, "created", created)
	}

	return repo, nil
}

// NewRepositoryFromDB мигрирует схему на готовом подключении
func NewRepositoryFromDB(db *gorm.DB) (*Repository, error) {
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("ошибка выполнения автомиграций: %w", err)
	}
	return &Repository{
		Machines: machine.NewMachineRepository(db),
		Statuses: machine_status.NewMachineStatusRepository(db),
	}, nil
}

func openPostgres(cfg *config.AppConfig, appLogger *logging.Logger) (*gorm.DB, error) {
	// Шаг 1: Подключение к служебной БД 'postgres' для проверки и создания целевой БД
	dsnPostgres := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Port,
	)

	db, err := gorm.Open(postgres.Open(dsnPostgres), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к служебной БД 'postgres': %w", err)
	}

	// Шаг 2: Проверка существования нужной БД
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = ?)"
	if err := db.Raw(query, cfg.Database.DBName).Scan(&exists).Error; err != nil {
		return nil, fmt.Errorf("не удалось проверить существование БД '%s': %w", cfg.Database.DBName, err)
	}

	// Шаг 3: Если БД не существует, создаем ее
	if !exists {
		appLogger.Info("Database not found. Creating...", "db_name", cfg.Database.DBName)
		createDbQuery := fmt.Sprintf("CREATE DATABASE %s", cfg.Database.DBName)
		if err := db.Exec(createDbQuery).Error; err != nil {
			return nil, fmt.Errorf("не удалось создать БД '%s': %w", cfg.Database.DBName, err)
		}
		appLogger.Info("Database created successfully.", "db_name", cfg.Database.DBName)
	} else {
		appLogger.Info("Database already exists.", "db_name", cfg.Database.DBName)
	}

	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	// Шаг 4: Основное подключение к целевой базе данных
	dsnApp := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.Port,
	)

	appDb, err := gorm.Open(postgres.Open(dsnApp), &gorm.Config{Logger: gormLogger(), NowFunc: utcNow})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных '%s': %w", cfg.Database.DBName, err)
	}
	return appDb, nil
}

// openSQLite используется для локального запуска без Postgres
func openSQLite(cfg *config.AppConfig, appLogger *logging.Logger) (*gorm.DB, error) {
	db, err := OpenSQLite(cfg.Database.SQLitePath, gormLogger())
	if err != nil {
		return nil, err
	}
	appLogger.Info("Using SQLite database", "path", cfg.Database.SQLitePath)
	return db, nil
}

// OpenSQLite открывает файл SQLite с одним соединением: SQLite не допускает параллельных писателей
func OpenSQLite(path string, log logger.Interface) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию для SQLite: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: log, NowFunc: utcNow})
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия SQLite '%s': %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func gormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&entities.Machine{}, &entities.MachineStatus{})
}
