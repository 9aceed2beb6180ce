package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

const (
	keyLocalModified = "local_modified"
	keyBackupFileID  = "wanderlust_backup_file_id"
	keyClientID      = "wanderlust_google_client_id"
)

// putInt64 сохраняет число в metadata; вызывается внутри транзакции записи
func putInt64(tx *bbolt.Tx, key string, v int64) error {
	b, err := bucket(tx, bucketMetadata)
	if err != nil {
		return err
	}

	// Конвертируем int64 в bytes
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))

	if err := b.Put([]byte(key), buf); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// GetLocalModified returns the epoch ms of the last journal write, 0 if none
func (s *Storage) GetLocalModified(ctx context.Context) (int64, error) {
	var modified int64

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}

		data := b.Get([]byte(keyLocalModified))
		if data == nil {
			return nil
		}
		if len(data) != 8 {
			return fmt.Errorf("malformed %s value", keyLocalModified)
		}
		modified = int64(binary.BigEndian.Uint64(data))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get local modified time: %w", err)
	}

	return modified, nil
}

// SetLocalModified overrides the last journal write time
func (s *Storage) SetLocalModified(ctx context.Context, modified int64) error {
	return s.update(func(tx *bbolt.Tx) error {
		return putInt64(tx, keyLocalModified, modified)
	})
}

func (s *Storage) getString(key string) (string, error) {
	var v string
	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}
		v = string(b.Get([]byte(key)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, nil
}

func (s *Storage) putString(key, v string) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(key), []byte(v)); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		return nil
	})
}

// GetBackupFileID returns the cached backup artifact id, "" if unknown
func (s *Storage) GetBackupFileID(ctx context.Context) (string, error) {
	return s.getString(keyBackupFileID)
}

// SaveBackupFileID caches the backup artifact id
func (s *Storage) SaveBackupFileID(ctx context.Context, id string) error {
	return s.putString(keyBackupFileID, id)
}

// DeleteBackupFileID drops the cached backup artifact id
func (s *Storage) DeleteBackupFileID(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}
		return b.Delete([]byte(keyBackupFileID))
	})
}

// GetClientID returns the stored OAuth client id
func (s *Storage) GetClientID(ctx context.Context) (string, error) {
	return s.getString(keyClientID)
}

// SaveClientID stores the OAuth client id
func (s *Storage) SaveClientID(ctx context.Context, clientID string) error {
	return s.putString(keyClientID, clientID)
}
