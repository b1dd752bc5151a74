package storage

import "github.com/julianstephens/zenith/internal/models"

// Provider is durable storage for named records. Payloads are opaque bytes;
// the state package owns their encoding.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	// ReadRecord returns found=false with a nil error when no record exists.
	ReadRecord(name string) (data []byte, found bool, err error)
	WriteRecord(name string, data []byte) error
	DeleteRecord(name string) error
	ListRecords() ([]models.RecordInfo, error)

	// Utils
	GetConfigPath() string
}
