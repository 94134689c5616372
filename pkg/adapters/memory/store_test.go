package memory_test

import (
	"testing"

	"github.com/nutrigraph/nutrigraph/pkg/adapters/memory"
	"github.com/nutrigraph/nutrigraph/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunRunStoreContract(t, memory.NewStore())
}
