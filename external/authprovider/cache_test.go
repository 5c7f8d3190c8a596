package authprovider

import (
	"testing"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/domain/tenant"
)

func TestPrincipalCache_SetGet(t *testing.T) {
	t.Parallel()

	cache := NewPrincipalCache(200*time.Millisecond, 10)
	cache.Set("k1", tenant.Principal{TenantID: "t-1", UserID: "u-1"})

	principal, ok := cache.Get("k1")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if principal.UserID != "u-1" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
}

func TestPrincipalCache_Expired(t *testing.T) {
	t.Parallel()

	cache := NewPrincipalCache(20*time.Millisecond, 10)
	cache.Set("k1", tenant.Principal{TenantID: "t-1", UserID: "u-1"})
	time.Sleep(40 * time.Millisecond)

	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("expected cache miss after expiry")
	}
}
