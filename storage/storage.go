package storage

import (
	"errors"

	"github.com/legendiguess/invest-trade-bot/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type databaseDSNStorage interface {
	GetDatabaseDSN() string
}

type storageLogger interface {
	Panicf(format string, args ...interface{})
}

// Storage persists the fill journal and telegram subscribers. None of the
// bot's trading state lives here; the ledger and position are rebuilt from
// the broker on every start.
type Storage struct {
	dataBase *gorm.DB
	logger   storageLogger
}

func New(databaseDSNStorage databaseDSNStorage, storageLogger storageLogger) *Storage {
	return newStorage(postgres.New(postgres.Config{
		DSN:                  databaseDSNStorage.GetDatabaseDSN(),
		PreferSimpleProtocol: true,
	}), storageLogger)
}

func newStorage(dialector gorm.Dialector, storageLogger storageLogger) *Storage {
	dataBase, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		storageLogger.Panicf("%v", err)
	}

	storage := Storage{dataBase: dataBase, logger: storageLogger}
	storage.dataBase.AutoMigrate(&domain.FillRecord{}, &domain.Subscriber{})

	return &storage
}

func (storage *Storage) NewFillRecord(record *domain.FillRecord) {
	result := storage.dataBase.Create(record)

	if result.Error != nil {
		storage.logger.Panicf("%v", result.Error)
	}
}

func (storage *Storage) GetFillRecords() []domain.FillRecord {
	var records []domain.FillRecord

	result := storage.dataBase.Order("filled_at").Find(&records)

	if result.Error != nil {
		storage.logger.Panicf("%v", result.Error)
	}

	return records
}

func (storage *Storage) NewSubscriber(subscriber *domain.Subscriber) {
	result := storage.dataBase.Create(subscriber)

	if result.Error != nil {
		storage.logger.Panicf("%v", result.Error)
	}
}

func (storage *Storage) FindSubscriber(findSubscriber *domain.Subscriber) (domain.Subscriber, bool) {
	var subscriber domain.Subscriber

	result := storage.dataBase.Where(findSubscriber).Take(&subscriber)

	isFound := !errors.Is(result.Error, gorm.ErrRecordNotFound)
	if isFound && result.Error != nil {
		storage.logger.Panicf("%v", result.Error)
	}

	return subscriber, isFound
}

func (storage *Storage) GetSubscribers() []domain.Subscriber {
	var subscribers []domain.Subscriber

	result := storage.dataBase.Find(&subscribers)

	if result.Error != nil {
		storage.logger.Panicf("%v", result.Error)
	}

	return subscribers
}
