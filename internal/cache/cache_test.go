package cache

import (
	"testing"
	"time"

	"github.com/zxkane/aws-skills/internal/models"
)

func newTestCache(t *testing.T) *FileCache {
	t.Helper()
	return NewFileCache(t.TempDir())
}

func TestFileCache_Gateways(t *testing.T) {
	fc := newTestCache(t)

	gateways := []models.Gateway{
		{ID: "gw-1", Name: "first", Status: models.GatewayStatusReady},
		{ID: "gw-2", Name: "second", Status: models.GatewayStatusCreating},
	}

	if err := fc.SetGateways(gateways, 1800); err != nil {
		t.Fatalf("SetGateways() error = %v", err)
	}

	cached, err := fc.GetGateways()
	if err != nil {
		t.Fatalf("GetGateways() error = %v", err)
	}
	if len(cached.Gateways) != 2 {
		t.Errorf("expected 2 gateways, got %d", len(cached.Gateways))
	}
	if cached.Gateways[0].ID != "gw-1" {
		t.Errorf("expected gw-1, got %s", cached.Gateways[0].ID)
	}
	if cached.TTL != 1800 {
		t.Errorf("expected TTL 1800, got %d", cached.TTL)
	}
}

func TestFileCache_GatewaysExpired(t *testing.T) {
	fc := newTestCache(t)

	if err := fc.SetGateways([]models.Gateway{{ID: "gw-1"}}, 0); err != nil {
		t.Fatalf("SetGateways() error = %v", err)
	}

	// TTL of zero expires immediately
	time.Sleep(10 * time.Millisecond)
	if _, err := fc.GetGateways(); err == nil {
		t.Error("expected expired cache error, got nil")
	}
}

func TestFileCache_GatewaysMiss(t *testing.T) {
	fc := newTestCache(t)

	if _, err := fc.GetGateways(); err == nil {
		t.Error("expected cache miss error, got nil")
	}
}

func TestFileCache_Targets(t *testing.T) {
	fc := newTestCache(t)

	targets := []models.Target{
		{ID: "tgt-1", GatewayID: "gw-1", Status: models.TargetStatusReady},
	}

	if err := fc.SetTargets("gw-1", targets, 900); err != nil {
		t.Fatalf("SetTargets() error = %v", err)
	}

	cached, err := fc.GetTargets("gw-1")
	if err != nil {
		t.Fatalf("GetTargets() error = %v", err)
	}
	if cached.GatewayID != "gw-1" {
		t.Errorf("expected gateway gw-1, got %s", cached.GatewayID)
	}
	if len(cached.Targets) != 1 || cached.Targets[0].ID != "tgt-1" {
		t.Errorf("unexpected targets %v", cached.Targets)
	}

	// Different gateway is a miss
	if _, err := fc.GetTargets("gw-2"); err == nil {
		t.Error("expected cache miss for unknown gateway")
	}
}

func TestFileCache_Stack(t *testing.T) {
	fc := newTestCache(t)

	stack := &models.Stack{Name: "agentcore-gateway-demo", Status: "CREATE_COMPLETE"}
	if err := fc.SetStack(stack.Name, stack, 300); err != nil {
		t.Fatalf("SetStack() error = %v", err)
	}

	cached, err := fc.GetStack(stack.Name)
	if err != nil {
		t.Fatalf("GetStack() error = %v", err)
	}
	if cached.Stack == nil || cached.Stack.Name != stack.Name {
		t.Errorf("unexpected stack %+v", cached.Stack)
	}
}

func TestFileCache_StackAbsenceCached(t *testing.T) {
	fc := newTestCache(t)

	// A nil stack records a negative lookup
	if err := fc.SetStack("missing-stack", nil, 300); err != nil {
		t.Fatalf("SetStack() error = %v", err)
	}

	cached, err := fc.GetStack("missing-stack")
	if err != nil {
		t.Fatalf("GetStack() error = %v", err)
	}
	if cached.Stack != nil {
		t.Errorf("expected nil stack, got %+v", cached.Stack)
	}
}

func TestFileCache_DeleteGatewayCache(t *testing.T) {
	fc := newTestCache(t)

	gateways := []models.Gateway{{ID: "gw-1"}, {ID: "gw-2"}}
	if err := fc.SetGateways(gateways, 1800); err != nil {
		t.Fatalf("SetGateways() error = %v", err)
	}
	if err := fc.SetTargets("gw-1", []models.Target{{ID: "tgt-1"}}, 900); err != nil {
		t.Fatalf("SetTargets() error = %v", err)
	}

	if err := fc.DeleteGatewayCache("gw-1"); err != nil {
		t.Fatalf("DeleteGatewayCache() error = %v", err)
	}

	if _, err := fc.GetTargets("gw-1"); err == nil {
		t.Error("expected target cache to be removed")
	}

	cached, err := fc.GetGateways()
	if err != nil {
		t.Fatalf("GetGateways() error = %v", err)
	}
	if len(cached.Gateways) != 1 || cached.Gateways[0].ID != "gw-2" {
		t.Errorf("expected only gw-2 to remain, got %v", cached.Gateways)
	}
}

func TestFileCache_ClearCache(t *testing.T) {
	fc := newTestCache(t)

	if err := fc.SetGateways([]models.Gateway{{ID: "gw-1"}}, 1800); err != nil {
		t.Fatalf("SetGateways() error = %v", err)
	}
	if err := fc.SetTargets("gw-1", []models.Target{{ID: "tgt-1"}}, 900); err != nil {
		t.Fatalf("SetTargets() error = %v", err)
	}

	if err := fc.ClearCache(); err != nil {
		t.Fatalf("ClearCache() error = %v", err)
	}

	if _, err := fc.GetGateways(); err == nil {
		t.Error("expected gateway cache to be cleared")
	}
	if _, err := fc.GetTargets("gw-1"); err == nil {
		t.Error("expected target cache to be cleared")
	}
}

func TestFileCache_ClearCacheMissingDir(t *testing.T) {
	fc := NewFileCache("/nonexistent/cache/dir/for/test")
	if err := fc.ClearCache(); err != nil {
		t.Errorf("ClearCache() on missing directory should be a no-op, got %v", err)
	}
}

func TestFileCache_GenericOperations(t *testing.T) {
	fc := newTestCache(t)

	type payload struct {
		Value string `json:"value"`
	}

	if err := fc.Set("generic.json", payload{Value: "hello"}, 60); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if !fc.Exists("generic.json") {
		t.Error("expected generic.json to exist")
	}

	var item CacheItem
	if err := fc.Get("generic.json", &item); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if item.IsExpired() {
		t.Error("expected fresh item")
	}

	if err := fc.Delete("generic.json"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if fc.Exists("generic.json") {
		t.Error("expected generic.json to be deleted")
	}

	// Deleting a missing key is not an error
	if err := fc.Delete("generic.json"); err != nil {
		t.Errorf("Delete() on missing key should be a no-op, got %v", err)
	}
}

func TestFileCache_ContextIsolation(t *testing.T) {
	baseDir := t.TempDir()

	first := NewFileCacheWithContext(baseDir, NewAWSContext("us-east-1", "dev"))
	second := NewFileCacheWithContext(baseDir, NewAWSContext("us-west-2", "dev"))

	if err := first.SetGateways([]models.Gateway{{ID: "gw-east"}}, 1800); err != nil {
		t.Fatalf("SetGateways() error = %v", err)
	}

	// Data cached for one region must not leak into another
	if _, err := second.GetGateways(); err == nil {
		t.Error("expected cache miss for different AWS context")
	}

	if first.GetCacheDir() == second.GetCacheDir() {
		t.Error("expected distinct cache directories per AWS context")
	}
}
