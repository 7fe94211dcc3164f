package config

import (
	"strings"
	"testing"
	"time"

	"roomledger/pkg/logger"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default(logger.Discard())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should validate, got: %v", err)
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Default(logger.Discard())
	cfg.Port = "0"
	cfg.LockBackend = "etcd"
	cfg.BookingHoldTTL = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"Port", "LockBackend", "BookingHoldTTL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error should mention %s, got: %v", want, err)
		}
	}
}

func TestValidate_MongoLockNeedsMongoStorage(t *testing.T) {
	cfg := Default(logger.Discard())
	cfg.LockBackend = LockMongo

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for mongo lock on memory storage")
	}
}

func TestRedactMongoURI(t *testing.T) {
	got := redactMongoURI("mongodb://admin:s3cret@db:27017/roomledger")
	if strings.Contains(got, "s3cret") {
		t.Errorf("password not redacted: %s", got)
	}
	if got != "mongodb://***:***@db:27017/roomledger" {
		t.Errorf("unexpected redaction: %s", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv(EnvBookingHoldTTL, "20m")
	if got := getEnvDuration(EnvBookingHoldTTL, DefaultBookingHoldTTL); got != 20*time.Minute {
		t.Errorf("getEnvDuration = %s, want 20m", got)
	}

	t.Setenv(EnvBookingHoldTTL, "soon")
	if got := getEnvDuration(EnvBookingHoldTTL, DefaultBookingHoldTTL); got != DefaultBookingHoldTTL {
		t.Errorf("getEnvDuration with garbage = %s, want fallback", got)
	}
}
