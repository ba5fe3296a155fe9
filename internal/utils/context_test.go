package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestDeviceIDCtxKey(t *testing.T) {
	if DeviceIDCtxKey.String() != "deviceID" {
		t.Errorf("expected 'deviceID', got '%s'", DeviceIDCtxKey.String())
	}
	if UserIDCtxKey.String() != "userID" {
		t.Errorf("expected 'userID', got '%s'", UserIDCtxKey.String())
	}
}

func TestWithDeviceID_RoundTrip(t *testing.T) {
	ctx := WithDeviceID(context.Background(), "androidc123", "ann")

	deviceID, ok := GetDeviceIDFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if deviceID != "androidc123" {
		t.Errorf("expected deviceID='androidc123', got '%s'", deviceID)
	}

	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if userID != "ann" {
		t.Errorf("expected userID='ann', got '%s'", userID)
	}
}

func TestGetDeviceIDFromContext_Missing(t *testing.T) {
	deviceID, ok := GetDeviceIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if deviceID != "" {
		t.Errorf("expected empty deviceID, got '%s'", deviceID)
	}
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, 42)

	userID, ok := GetUserIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
	if userID != "" {
		t.Errorf("expected empty userID, got '%s'", userID)
	}
}

func TestGetUserIDFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, "bob")

	userID, ok := GetUserIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for different key, got true")
	}
	if userID != "" {
		t.Errorf("expected empty userID, got '%s'", userID)
	}
}
